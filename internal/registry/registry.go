// Package registry maps names to actions so tasks can be described as
// addressable work descriptors instead of closures over live state.
// Parallel execution requires every task action to be registered here.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/maxkimambo/fanout/internal/dispatch"
)

// Registry holds named actions and named catchable failure kinds. It is
// safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	actions    map[string]dispatch.ActionFunc
	catchables map[string]error
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		actions:    make(map[string]dispatch.ActionFunc),
		catchables: make(map[string]error),
	}
}

// Register binds an action to a name. Empty names, nil actions and
// duplicate names are rejected.
func (r *Registry) Register(name string, action dispatch.ActionFunc) error {
	if name == "" {
		return fmt.Errorf("action name must not be empty")
	}
	if action == nil {
		return fmt.Errorf("action %q must not be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("action %q already registered", name)
	}
	r.actions[name] = action
	return nil
}

// Lookup returns the action bound to name.
func (r *Registry) Lookup(name string) (dispatch.ActionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	action, ok := r.actions[name]
	return action, ok
}

// Bind builds a named task from a registered action and its arguments.
func (r *Registry) Bind(name string, args ...any) (*dispatch.Task, error) {
	action, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown action %q", name)
	}
	return dispatch.NewNamedTask(name, action, args...)
}

// Names returns all registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterCatchable binds a failure kind (a sentinel error) to a name so
// batch descriptors can declare it in a job's catch set.
func (r *Registry) RegisterCatchable(name string, kind error) error {
	if name == "" {
		return fmt.Errorf("failure kind name must not be empty")
	}
	if kind == nil {
		return fmt.Errorf("failure kind %q must not be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.catchables[name]; exists {
		return fmt.Errorf("failure kind %q already registered", name)
	}
	r.catchables[name] = kind
	return nil
}

// LookupCatchable returns the failure kind bound to name.
func (r *Registry) LookupCatchable(name string) (error, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kind, ok := r.catchables[name]
	return kind, ok
}
