package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	jsonFormat := os.Getenv("NOUNS_JSON_LOG") == "1"

	if !jsonFormat {
		output = NewPrefixWriter("⌐◨-◨ ", output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv("NOUNS_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return level
}

// ResolveLevel picks the first non-empty level: explicit flag, environment,
// then the configured fallback.
func ResolveLevel(flagLevel, configLevel string) string {
	if flagLevel != "" {
		return flagLevel
	}
	if env := os.Getenv("NOUNS_LOG_LEVEL"); env != "" {
		return env
	}
	if configLevel != "" {
		return configLevel
	}
	return GetLogLevel()
}
