package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/pkg/logger"
)

func TestNew_JSONOutputWithService(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "buen-sabor", Output: &buf})

	l.Debug().Str("pedido_id", "p-1").Msg("pedido creado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "buen-sabor", line["service"])
	assert.Equal(t, "p-1", line["pedido_id"])
	assert.Equal(t, "pedido creado", line["message"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})

	l.Debug().Msg("oculto")
	assert.Empty(t, buf.String())

	l.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
