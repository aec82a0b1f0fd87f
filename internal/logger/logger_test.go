package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	t.Run("default level hides debug", func(t *testing.T) {
		buf.Reset()
		Setup(false, false, false)
		Debugf("hidden")
		Infof("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		buf.Reset()
		Setup(true, false, false)
		Debugf("now visible")
		assert.Contains(t, buf.String(), "now visible")
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		buf.Reset()
		Setup(false, false, true)
		Infof("muted")
		Errorf("still loud")
		assert.NotContains(t, buf.String(), "muted")
		assert.Contains(t, buf.String(), "still loud")
	})

	t.Run("json output is parseable and keeps fields", func(t *testing.T) {
		buf.Reset()
		Setup(false, true, false)
		WithFields(map[string]any{"jobs": 3}).Info("running")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "running", entry["msg"])
		assert.Equal(t, float64(3), entry["jobs"])
	})
}
