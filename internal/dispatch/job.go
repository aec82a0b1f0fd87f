package dispatch

import (
	"errors"
	"fmt"
	"slices"
)

// Job is an ordered batch of tasks plus a declared set of recoverable
// failure kinds and a fallback (forgiveness) task batch. The normal list
// runs first; if a declared failure interrupts it, the forgiveness list
// runs instead of the remaining normal tasks.
//
// A job is not safe to run a second time without caller awareness:
// running again overwrites result and failure slots and can re-trigger
// forgiveness.
type Job struct {
	normal  []*Task
	forgive []*Task
	catch   []error
}

// NewJob creates an empty job.
func NewJob() *Job {
	return &Job{}
}

// AppendNormal builds a task from the action and arguments and appends
// it to the normal list.
func (j *Job) AppendNormal(action ActionFunc, args ...any) error {
	t, err := NewTask(action, args...)
	if err != nil {
		return err
	}
	j.normal = append(j.normal, t)
	return nil
}

// AppendNormalTask appends an already-built task to the normal list.
func (j *Job) AppendNormalTask(t *Task) error {
	if t == nil {
		return fmt.Errorf("task must not be nil")
	}
	j.normal = append(j.normal, t)
	return nil
}

// ClearNormal drops all normal tasks.
func (j *Job) ClearNormal() {
	j.normal = nil
}

// AppendForgiveness builds a task from the action and arguments and
// appends it to the forgiveness list.
func (j *Job) AppendForgiveness(action ActionFunc, args ...any) error {
	t, err := NewTask(action, args...)
	if err != nil {
		return err
	}
	j.forgive = append(j.forgive, t)
	return nil
}

// AppendForgivenessTask appends an already-built task to the forgiveness
// list.
func (j *Job) AppendForgivenessTask(t *Task) error {
	if t == nil {
		return fmt.Errorf("task must not be nil")
	}
	j.forgive = append(j.forgive, t)
	return nil
}

// ClearForgiveness drops all forgiveness tasks.
func (j *Job) ClearForgiveness() {
	j.forgive = nil
}

// Catch declares a failure kind as recoverable for this job. Kinds are
// sentinel errors matched with errors.Is. A nil target is rejected.
func (j *Job) Catch(targets ...error) error {
	for _, target := range targets {
		if target == nil {
			return fmt.Errorf("catchable failure kind must not be nil")
		}
	}
	j.catch = append(j.catch, targets...)
	return nil
}

// ClearCatch drops all declared failure kinds, restoring catch-all
// behavior.
func (j *Job) ClearCatch() {
	j.catch = nil
}

// NormalTasks returns the normal task list in order.
func (j *Job) NormalTasks() []*Task {
	return slices.Clone(j.normal)
}

// ForgivenessTasks returns the forgiveness task list in order.
func (j *Job) ForgivenessTasks() []*Task {
	return slices.Clone(j.forgive)
}

// Catchables returns the declared failure kinds. An empty return means
// the job catches everything.
func (j *Job) Catchables() []error {
	return slices.Clone(j.catch)
}

// Catches reports whether the failure is recoverable for this job: true
// when no kinds were declared (catch-all), or when any declared kind
// matches.
func (j *Job) Catches(err error) bool {
	if len(j.catch) == 0 {
		return true
	}
	for _, target := range j.catch {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Run executes the normal tasks in order, storing each return value on
// its task. Run performs no failure handling itself: the first task
// error stops the pass immediately, leaving later tasks un-run, and is
// returned together with the index of the failed task. On a clean pass
// Run returns (-1, nil).
func (j *Job) Run() (int, error) {
	for i, t := range j.normal {
		v, err := t.invoke()
		if err != nil {
			return i, err
		}
		t.setResult(v)
	}
	return -1, nil
}

// AskForgiveness records the failure against the normal task at
// taskIndex, then runs the forgiveness tasks in order exactly like a
// second, independent pass. Nothing catches failures here: the first
// forgiveness task error propagates to the caller.
func (j *Job) AskForgiveness(taskIndex int, failure error) error {
	if taskIndex < 0 || taskIndex >= len(j.normal) {
		return fmt.Errorf("no normal task at index %d", taskIndex)
	}
	j.normal[taskIndex].SetFailure(failure)
	for _, t := range j.forgive {
		v, err := t.invoke()
		if err != nil {
			return err
		}
		t.setResult(v)
	}
	return nil
}
