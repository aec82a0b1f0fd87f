package dispatch

import (
	"fmt"
	"slices"
)

// ActionFunc is the function signature for a task's deferred computation.
// A non-nil returned error is the task's failure.
type ActionFunc func(args ...any) (any, error)

// Task holds a single deferred call: an action, its bound arguments, and
// the outcome slots populated when the task runs.
type Task struct {
	action     ActionFunc
	actionName string
	args       []any
	result     any
	failure    error
	ran        bool
}

// NewTask creates a task from an action and its fixed arguments. The
// action is validated here, not at execution time.
func NewTask(action ActionFunc, args ...any) (*Task, error) {
	if action == nil {
		return nil, fmt.Errorf("task action must not be nil")
	}
	return &Task{
		action: action,
		args:   slices.Clone(args),
	}, nil
}

// NewNamedTask creates a task whose action is addressable by name. Only
// named tasks may cross the worker boundary in parallel mode.
func NewNamedTask(name string, action ActionFunc, args ...any) (*Task, error) {
	if name == "" {
		return nil, fmt.Errorf("task action name must not be empty")
	}
	t, err := NewTask(action, args...)
	if err != nil {
		return nil, err
	}
	t.actionName = name
	return t, nil
}

// ActionName returns the registered name of the action, or an empty
// string for tasks built from bare closures.
func (t *Task) ActionName() string {
	return t.actionName
}

// Args returns a copy of the task's bound arguments.
func (t *Task) Args() []any {
	return slices.Clone(t.args)
}

// Result returns the value stored after the task ran, or nil.
func (t *Task) Result() any {
	return t.result
}

// Failure returns the failure recorded against this task, or nil.
func (t *Task) Failure() error {
	return t.failure
}

// Ran reports whether the task's action ran to completion and stored a
// result during the current execution pass.
func (t *Task) Ran() bool {
	return t.ran
}

// SetFailure records a failure against the task. Storing a nil failure
// is a programming error and panics rather than silently storing a
// malformed value.
func (t *Task) SetFailure(err error) {
	if err == nil {
		panic("dispatch: SetFailure called with a nil error")
	}
	t.failure = err
}

// invoke runs the action with the bound arguments.
func (t *Task) invoke() (any, error) {
	return t.action(t.args...)
}

// setResult stores the action's return value and marks the task as ran.
func (t *Task) setResult(v any) {
	t.result = v
	t.ran = true
}

func (t *Task) String() string {
	if t.actionName != "" {
		return fmt.Sprintf("Task(%s, %v)", t.actionName, t.args)
	}
	return fmt.Sprintf("Task(<closure>, %v)", t.args)
}
