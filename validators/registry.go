package validators

import "sync"

// Registry maps step ids to validator overrides. A registered override fully
// replaces the default pipeline for that id. Registration is expected at
// setup time but lookups are thread-safe regardless.
type Registry struct {
	overrides map[string]StepValidator
	mu        sync.RWMutex
}

// NewRegistry creates an empty override registry.
func NewRegistry() *Registry {
	return &Registry{
		overrides: make(map[string]StepValidator),
	}
}

// Register installs an override for the given step id, replacing any
// existing one.
func (r *Registry) Register(stepID string, v StepValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[stepID] = v
}

// RegisterFunc installs a function override for the given step id.
func (r *Registry) RegisterFunc(stepID string, fn StepValidatorFunc) {
	r.Register(stepID, fn)
}

// Get retrieves the override for a step id, if any.
func (r *Registry) Get(stepID string) (StepValidator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.overrides[stepID]
	return v, ok
}

// Unregister removes the override for a step id, restoring the default
// pipeline.
func (r *Registry) Unregister(stepID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.overrides, stepID)
}
