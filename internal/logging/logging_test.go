package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestNewAppliesLevel(t *testing.T) {
	logger := New("warn", "json", "test")
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewDefaultsToInfo(t *testing.T) {
	logger := New("", "json", "test")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger = New("nonsense", "json", "test")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewWiresGlobalLogger(t *testing.T) {
	New("error", "json", "test")
	assert.Equal(t, zerolog.ErrorLevel, log.Logger.GetLevel(),
		"the zerolog/log global follows the configured logger")
}
