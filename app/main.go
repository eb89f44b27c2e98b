package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"patchsheet/app/cfg"
	"patchsheet/app/export"
	"patchsheet/app/pipeline"
	"patchsheet/app/queries"
	"patchsheet/app/sccapi"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional; real environment and flags take precedence
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting patchsheet %s...", appCfg.Version)

	if appCfg.Since != nil {
		log.Printf("Filtering: issued_at >= %s (UTC)", appCfg.Since.UTC().Format(time.RFC3339))
	}

	querySets := []sccapi.Query{{
		ProductNames:         appCfg.ProductNames,
		ProductVersions:      appCfg.ProductVersions,
		ProductArchitectures: appCfg.ProductArchitectures,
	}}

	if appCfg.QueriesFile != "" {
		sets, err := queries.NewLoader(appCfg.QueriesFile).Load()
		if err != nil {
			log.Fatalf("Failed to load query sets: %v", err)
		}
		querySets = querySets[:0]
		for _, set := range sets {
			querySets = append(querySets, sccapi.Query{
				ProductNames:         set.ProductNames,
				ProductVersions:      set.ProductVersions,
				ProductArchitectures: set.ProductArchitectures,
			})
		}
		log.Printf("Loaded %d query sets from %s", len(sets), appCfg.QueriesFile)
	}

	client := sccapi.NewClient(appCfg.BaseURL, appCfg.UserAgent)

	rows, err := pipeline.New(client, appCfg.Since).Run(context.Background(), querySets)
	if err != nil {
		log.Fatalf("Failed to collect patches: %v", err)
	}

	if err := export.NewWriter(appCfg.Output).Run(rows); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	log.Printf("Written: %s (%d rows)", appCfg.Output, len(rows))
}
