package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"

	"patchsheet/app/patch"
	"patchsheet/app/sccapi"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Query scope
	ProductNames         string `long:"product-names" env:"PRODUCT_NAMES" default:"SUSE Linux Enterprise Server LTSS" description:"Product name (e.g. 'SUSE Linux Enterprise Server LTSS')"`
	ProductVersions      string `long:"product-versions" env:"PRODUCT_VERSIONS" default:"12 SP5" description:"Product version (e.g. '12 SP5')"`
	ProductArchitectures string `long:"product-architectures" env:"PRODUCT_ARCHITECTURES" default:"x86_64" description:"Architecture (default x86_64)"`
	QueriesFile          string `long:"queries" env:"QUERIES_FILE" description:"YAML file with product query sets, replacing the single flag-provided query"`

	// Filtering and output
	Since  string `long:"since" env:"SINCE" description:"Keep only patches issued at or after this time. Accepts YYYY-MM-DD, YYYY/MM/DD or ISO8601 (e.g. 2025-09-10T12:00:00Z)"`
	Output string `short:"o" long:"output" env:"OUTPUT" default:"suse_patches.xlsx" description:"Output XLSX file name"`

	// Application metadata
	BaseURL   string `long:"base-url" env:"BASE_URL" description:"Patch finder API base URL"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

type Cfg struct {
	ProductNames         string
	ProductVersions      string
	ProductArchitectures string
	QueriesFile          string

	// Since is the parsed inclusive threshold; nil means no filtering.
	Since  *time.Time
	Output string

	BaseURL   string
	UserAgent string
	Debug     bool
	Version   string
}

// Load parses command-line flags and environment variables. A malformed
// --since is rejected here, before any network activity. Returns
// (nil, nil) when help was requested.
func Load() (*Cfg, error) {
	return load(nil)
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	since, err := patch.ParseUserThreshold(raw.Since)
	if err != nil {
		return nil, fmt.Errorf("invalid --since value: %w", err)
	}

	cfg := &Cfg{
		ProductNames:         raw.ProductNames,
		ProductVersions:      raw.ProductVersions,
		ProductArchitectures: raw.ProductArchitectures,
		QueriesFile:          raw.QueriesFile,
		Since:                since,
		Output:               raw.Output,
		BaseURL:              cmp.Or(raw.BaseURL, sccapi.DefaultBaseURL),
		UserAgent:            cmp.Or(raw.UserAgent, defaultUserAgent()),
		Debug:                raw.Debug,
		Version:              GetVersion(),
	}

	return cfg, nil
}

func defaultUserAgent() string {
	return fmt.Sprintf("patchsheet/%s (+https://example.local)", GetVersion())
}
