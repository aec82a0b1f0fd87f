package batchfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxkimambo/fanout/internal/dispatch"
	"github.com/maxkimambo/fanout/internal/registry"
)

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const goodBatch = `
[[job]]
name = "arithmetic"

[[job.task]]
action = "add"
args = [1, 1]

[[job.task]]
action = "mul"
args = [2, 3]

[[job]]
name = "forgiven"
catch = ["divide_by_zero"]

[[job.task]]
action = "div"
args = [1, 0]

[[job.forgive]]
action = "emit"
args = ["Oops, sorry!"]
`

func TestLoad(t *testing.T) {
	batch, err := Load(writeBatch(t, goodBatch), registry.Builtins())
	require.NoError(t, err)
	require.Equal(t, 2, batch.Len())
	assert.Equal(t, "arithmetic", batch.Name(0))
	assert.Equal(t, "forgiven", batch.Name(1))

	src := batch.Source()
	first, ok := src.Next()
	require.True(t, ok)
	assert.Len(t, first.NormalTasks(), 2)
	assert.Empty(t, first.Catchables())

	second, ok := src.Next()
	require.True(t, ok)
	assert.Len(t, second.Catchables(), 1)
	assert.Len(t, second.ForgivenessTasks(), 1)

	_, ok = src.Next()
	assert.False(t, ok)
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"task without action",
			"[[job]]\n[[job.task]]\nargs = [1]\n",
		},
		{
			"job without tasks",
			"[[job]]\nname = \"empty\"\n",
		},
		{
			"no jobs at all",
			"# empty file\n",
		},
		{
			"unknown top-level key",
			"answer = 42\n[[job]]\n[[job.task]]\naction = \"add\"\n",
		},
		{
			"unknown action",
			"[[job]]\n[[job.task]]\naction = \"frobnicate\"\n",
		},
		{
			"unknown failure kind",
			"[[job]]\ncatch = [\"gremlins\"]\n[[job.task]]\naction = \"add\"\n",
		},
		{
			"malformed toml",
			"[[job\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeBatch(t, tt.content), registry.Builtins())
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), registry.Builtins())
		assert.Error(t, err)
	})
}

func TestLoad_EndToEnd(t *testing.T) {
	// A loaded batch is fully addressable, so it must run identically in
	// both execution modes.
	run := func(t *testing.T, parallel bool) []dispatch.Outcome {
		batch, err := Load(writeBatch(t, goodBatch), registry.Builtins())
		require.NoError(t, err)
		d, err := dispatch.NewDispatcher(batch.Source(), nil, parallel, 2)
		require.NoError(t, err)
		outcomes, err := d.Run(context.Background())
		require.NoError(t, err)
		return outcomes
	}

	sequential := run(t, false)
	parallelOut := run(t, true)
	assert.Equal(t, sequential, parallelOut)

	require.Len(t, sequential, 2)
	assert.Equal(t, dispatch.NoResult, sequential[0].Value)
	assert.Equal(t, dispatch.StringResult("Oops, sorry!"), sequential[1].Value)
}
