package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = zerolog.New(&buf)
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func TestScopedLoggers(t *testing.T) {
	tests := []struct {
		name  string
		log   func() zerolog.Logger
		field string
		value string
	}{
		{"component", func() zerolog.Logger { return WithComponent("pipeline") }, "component", "pipeline"},
		{"business", func() zerolog.Logger { return WithBusiness("biz-1") }, "business_id", "biz-1"},
		{"request", func() zerolog.Logger { return WithRequestID("req-1") }, "request_id", "req-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t)
			log := tt.log()
			log.Info().Msg("hello")
			assert.Contains(t, buf.String(), `"`+tt.field+`":"`+tt.value+`"`)
		})
	}
}

func TestInitFallsBackToInfoOnBadLevel(t *testing.T) {
	Init("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
