package server

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// NewLogger builds the diagnostic sink handed to the server
func NewLogger(w io.Writer, format, level string) (zerolog.Logger, error) {
	if level == "" {
		level = zerolog.LevelInfoValue
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	var out io.Writer
	switch format {
	case LogFormatConsole, "":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05.000", NoColor: true}
	case LogFormatJSON:
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// truncate keeps raw request text in logs bounded
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...[truncated]"
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
