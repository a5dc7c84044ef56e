package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns the default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// DayKey truncates a timestamp to its UTC calendar day, formatted YYYY-MM-DD.
// Used to bucket wellness entries for trend charting.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
