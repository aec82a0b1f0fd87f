package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Run("valid action", func(t *testing.T) {
		task, err := NewTask(func(args ...any) (any, error) { return nil, nil }, 1, "two")
		require.NoError(t, err)
		assert.Equal(t, []any{1, "two"}, task.Args())
		assert.Empty(t, task.ActionName())
		assert.False(t, task.Ran())
	})

	t.Run("nil action rejected at construction", func(t *testing.T) {
		task, err := NewTask(nil)
		assert.Error(t, err)
		assert.Nil(t, task)
	})

	t.Run("arguments are copied", func(t *testing.T) {
		args := []any{1, 2}
		task, err := NewTask(func(args ...any) (any, error) { return nil, nil }, args...)
		require.NoError(t, err)
		args[0] = 99
		assert.Equal(t, []any{1, 2}, task.Args())
	})
}

func TestNewNamedTask(t *testing.T) {
	t.Run("carries the action name", func(t *testing.T) {
		task, err := NewNamedTask("noop", func(args ...any) (any, error) { return nil, nil })
		require.NoError(t, err)
		assert.Equal(t, "noop", task.ActionName())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewNamedTask("", func(args ...any) (any, error) { return nil, nil })
		assert.Error(t, err)
	})

	t.Run("nil action rejected", func(t *testing.T) {
		_, err := NewNamedTask("noop", nil)
		assert.Error(t, err)
	})
}

func TestTask_SetFailure(t *testing.T) {
	task, err := NewTask(func(args ...any) (any, error) { return nil, nil })
	require.NoError(t, err)

	t.Run("stores a real failure", func(t *testing.T) {
		boom := errors.New("boom")
		task.SetFailure(boom)
		assert.Equal(t, boom, task.Failure())
	})

	t.Run("panics on nil failure", func(t *testing.T) {
		assert.Panics(t, func() {
			task.SetFailure(nil)
		})
	})
}

func TestTask_String(t *testing.T) {
	named, err := NewNamedTask("add", func(args ...any) (any, error) { return nil, nil }, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Task(add, [1 2])", named.String())

	anon, err := NewTask(func(args ...any) (any, error) { return nil, nil })
	require.NoError(t, err)
	assert.Contains(t, anon.String(), "<closure>")
}
