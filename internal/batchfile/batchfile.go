// Package batchfile loads TOML batch descriptors and turns them into
// runnable jobs. Descriptors reference actions and failure kinds by
// registered name, which keeps every task addressable and transferable.
package batchfile

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/maxkimambo/fanout/internal/dispatch"
	"github.com/maxkimambo/fanout/internal/registry"
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("batch.schema.json", schemaJSON)

// TaskSpec describes one task of a descriptor: a registered action name
// and its bound arguments.
type TaskSpec struct {
	Action string `toml:"action"`
	Args   []any  `toml:"args"`
}

// JobSpec describes one job of a descriptor.
type JobSpec struct {
	Name    string     `toml:"name"`
	Catch   []string   `toml:"catch"`
	Tasks   []TaskSpec `toml:"task"`
	Forgive []TaskSpec `toml:"forgive"`
}

// File is the top-level shape of a batch descriptor.
type File struct {
	Jobs []JobSpec `toml:"job"`
}

// Batch holds the jobs built from a descriptor, in file order.
type Batch struct {
	jobs  []*dispatch.Job
	names []string
}

// Len returns the number of jobs in the batch.
func (b *Batch) Len() int {
	return len(b.jobs)
}

// Name returns the descriptor name of the job at index i, or its
// ordinal when the descriptor gave it none.
func (b *Batch) Name(i int) string {
	if i < 0 || i >= len(b.names) {
		return ""
	}
	if b.names[i] == "" {
		return fmt.Sprintf("job-%d", i)
	}
	return b.names[i]
}

// Source returns a one-shot job source traversing the batch in file
// order.
func (b *Batch) Source() dispatch.JobSource {
	return dispatch.SliceSource(b.jobs)
}

// Load reads, validates and resolves a batch descriptor. Actions and
// catchable failure kinds are resolved against reg; unknown names are
// load errors.
func Load(path string, reg *registry.Registry) (*Batch, error) {
	if err := validateFile(path); err != nil {
		return nil, err
	}

	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	batch := &Batch{}
	for i, spec := range file.Jobs {
		job, err := buildJob(spec, reg)
		if err != nil {
			return nil, fmt.Errorf("%s: job %d: %w", path, i, err)
		}
		batch.jobs = append(batch.jobs, job)
		batch.names = append(batch.names, spec.Name)
	}
	return batch, nil
}

// validateFile checks the raw descriptor against the embedded JSON
// schema. The TOML document is normalized through JSON first so the
// schema sees canonical types.
func validateFile(path string) error {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalizing %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return fmt.Errorf("normalizing %s: %w", path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func buildJob(spec JobSpec, reg *registry.Registry) (*dispatch.Job, error) {
	job := dispatch.NewJob()
	for _, name := range spec.Catch {
		kind, ok := reg.LookupCatchable(name)
		if !ok {
			return nil, fmt.Errorf("unknown failure kind %q", name)
		}
		if err := job.Catch(kind); err != nil {
			return nil, err
		}
	}
	for i, ts := range spec.Tasks {
		task, err := reg.Bind(ts.Action, ts.Args...)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if err := job.AppendNormalTask(task); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
	}
	for i, ts := range spec.Forgive {
		task, err := reg.Bind(ts.Action, ts.Args...)
		if err != nil {
			return nil, fmt.Errorf("forgiveness task %d: %w", i, err)
		}
		if err := job.AppendForgivenessTask(task); err != nil {
			return nil, fmt.Errorf("forgiveness task %d: %w", i, err)
		}
	}
	return job, nil
}
