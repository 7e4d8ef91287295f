package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruido"))
}

func TestNew_EscribeEnArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.log")
	l := New(Config{Env: "production", Level: "info", File: path})
	l.Info().Str("modulo", "ventas").Msg("venta registrada")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"modulo":"ventas"`)
	assert.Contains(t, string(data), "venta registrada")
}

func TestNewNop_NoFalla(t *testing.T) {
	l := NewNop()
	l.Error().Msg("descartado")
	assert.NoError(t, l.Close())
}
