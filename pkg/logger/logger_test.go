package logger_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Nivel configurado
// ──────────────────────────────────────────────────────────────────────────────

func TestNew_RespetaElNivelConfigurado(t *testing.T) {
	casos := []struct {
		nivel    string
		esperado zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
	}
	for _, c := range casos {
		t.Run(c.nivel, func(t *testing.T) {
			l := logger.New(logger.Config{Env: "production", Level: c.nivel})
			assert.Equal(t, c.esperado, l.Zerolog().GetLevel())
		})
	}
}

func TestNew_NivelDesconocido_CaeEnInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "verbose"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())

	l = logger.New(logger.Config{Env: "production"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

// ──────────────────────────────────────────────────────────────────────────────
// Campo service
// ──────────────────────────────────────────────────────────────────────────────

func TestNew_EstampaElCampoService(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "pos-backend"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("arranque")

	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"service":"pos-backend"`)
	assert.Contains(t, buf.String(), `"message":"arranque"`)
}

func TestNew_SinService_NoEstampaElCampo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "info"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("arranque")

	assert.NotContains(t, buf.String(), `"service"`)
}
