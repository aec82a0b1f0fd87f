package dispatch

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Parallel mode hands jobs to isolated workers, so everything a job
// carries must be representable without live references into the
// submitting context: actions must be addressable by registered name and
// arguments must survive serialization. Sequential mode runs in the
// caller's own context and has no such constraint.

// ensureTransferable verifies that every task of the job can cross the
// worker boundary. It is called before any job runs in parallel mode.
func ensureTransferable(jobIndex int, j *Job) error {
	if err := tasksTransferable(j.NormalTasks()); err != nil {
		return &JobError{JobIndex: jobIndex, Err: err}
	}
	if err := tasksTransferable(j.ForgivenessTasks()); err != nil {
		return &JobError{JobIndex: jobIndex, Err: err}
	}
	return nil
}

func tasksTransferable(tasks []*Task) error {
	for i, t := range tasks {
		if t.ActionName() == "" {
			return fmt.Errorf("task %d: %w: action is an unaddressable closure, register it by name", i, ErrNotTransferable)
		}
		for n, arg := range t.Args() {
			if arg == nil {
				continue
			}
			if err := gob.NewEncoder(io.Discard).Encode(arg); err != nil {
				return fmt.Errorf("task %d (%s): argument %d: %w: %v", i, t.ActionName(), n, ErrNotTransferable, err)
			}
		}
	}
	return nil
}
