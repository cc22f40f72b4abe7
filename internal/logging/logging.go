package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New constructs a zerolog logger from level/format settings.
// Defaults to JSON at info level on stdout when fields are empty.
func New(level, format, env string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && level != "" {
		lvl = parsed
	}

	var out = zerolog.New(os.Stdout)
	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := out.
		Level(lvl).
		With().
		Timestamp().
		Str("env", env).
		Logger()

	// Code that logs through the zerolog/log global (the response translator)
	// must see the same level and output as injected loggers.
	log.Logger = logger

	return logger
}
