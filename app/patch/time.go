package patch

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts accepted from the listing API and from --since.
// Offset-less layouts parse as UTC.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseIssuedAt converts an issued_at value into a UTC instant. Empty
// or malformed input yields the zero time, which sorts as the oldest
// possible instant and never passes a threshold filter. Malformed
// timestamps must never abort the run.
func ParseIssuedAt(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := parseISO(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseUserThreshold interprets a --since value. Accepts a 10-character
// date ("2025-09-10" or "2025/09/10", taken as UTC midnight) or a full
// ISO 8601 timestamp with the same Z normalization as ParseIssuedAt.
// Empty input means no threshold. Anything else is a configuration
// error; unlike record timestamps, operator intent is never guessed.
func ParseUserThreshold(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if len(raw) == 10 && (raw[4] == '-' || raw[4] == '/') && (raw[7] == '-' || raw[7] == '/') {
		day := strings.ReplaceAll(raw, "/", "-")
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, thresholdError(raw)
		}
		return &t, nil
	}

	t, err := parseISO(raw)
	if err != nil {
		return nil, thresholdError(raw)
	}
	return &t, nil
}

func thresholdError(raw string) error {
	return fmt.Errorf("cannot parse %q: use YYYY-MM-DD, YYYY/MM/DD or ISO8601 (e.g. 2025-09-10T12:00:00Z)", raw)
}

// FormatReleaseDate reformats the date portion of an ISO timestamp to
// YYYY/MM/DD. Only the first 10 characters are used, deliberately
// without timezone conversion so the displayed calendar date cannot
// shift across a day boundary. Input shorter than a full date yields "".
func FormatReleaseDate(raw string) string {
	if len(raw) < 10 {
		return ""
	}
	return strings.ReplaceAll(raw[:10], "-", "/")
}

func parseISO(raw string) (time.Time, error) {
	// A trailing Z is the same as an explicit +00:00 offset.
	if strings.HasSuffix(raw, "Z") {
		raw = strings.TrimSuffix(raw, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", raw)
}
