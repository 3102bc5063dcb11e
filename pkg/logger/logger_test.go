package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestLogger_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{App: "factonet-api", Env: "production", Level: "info", Out: &buf}).Component("pdf")

	log.Debug().Msg("oculto")
	log.Warn().Str("path", "logo.png").Msg("logo no disponible")

	entry := decode(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "factonet-api", entry["app"])
	assert.Equal(t, "pdf", entry["component"])
	assert.Equal(t, "logo.png", entry["path"])
}

func TestLogger_Document(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Env: "production", Out: &buf})

	base.Document(logger.KindInvoice, "inv-1", "FAC-001").Info().Msg("factura")
	entry := decode(t, &buf)
	assert.Equal(t, "invoice", entry["document"])
	assert.Equal(t, "inv-1", entry["document_id"])
	assert.Equal(t, "FAC-001", entry["document_code"])
	assert.NotContains(t, entry, "app")

	buf.Reset()
	base.Document(logger.KindContract, "ct-1", "").Info().Msg("contrato")
	entry = decode(t, &buf)
	assert.Equal(t, "contract", entry["document"])
	assert.NotContains(t, entry, "document_code")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" DEBUG ", zerolog.DebugLevel},
		{"trace", zerolog.TraceLevel},
		{"warning", zerolog.WarnLevel},
		{"Warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verboso", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_ConsolaSinColores(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.Config{Env: "development", Level: "debug", Out: &buf}).Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestLogger_Nop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("nada") })
}
