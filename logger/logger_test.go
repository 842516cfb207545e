package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"agent-server/config"
)

func TestNewParsesLevel(t *testing.T) {
	l := New(config.LogConfig{Level: "debug", Format: "json", Output: "stdout"})
	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
}

func TestNewFallsBackToInfo(t *testing.T) {
	l := New(config.LogConfig{Level: "not-a-level", Format: "console", Output: "stderr"})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
