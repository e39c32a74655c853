package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "WARN", false)
	require.NoError(t, err)

	l := For(logger, "Receiver")
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "Receiver", line[LogKey.Module])
	assert.Equal(t, "warn", line["level"])
}

func TestNewDefaultsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", true)
	require.NoError(t, err)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = New(&buf, "loud", false)
	assert.Error(t, err)
}
