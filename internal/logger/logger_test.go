package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_FiltraNivel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "warn"}, &buf)

	log.Info().Msg("não aparece")
	log.Warn().Uint("venda", 3).Msg("venda sem data")

	linhas := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, linhas, 1)

	var ev map[string]any
	require.NoError(t, json.Unmarshal(linhas[0], &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, "venda sem data", ev["message"])
	assert.Equal(t, "motor-comissao", ev["service"])
	assert.EqualValues(t, 3, ev["venda"])
}

func TestNewWithWriter_NivelInvalidoViraInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "barulhento"}, &buf)

	log.Debug().Msg("debug")
	log.Info().Msg("info")

	assert.NotContains(t, buf.String(), `"debug"`)
	assert.Contains(t, buf.String(), `"info"`)
}
