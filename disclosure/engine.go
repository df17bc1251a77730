package disclosure

import (
	"sync"
	"time"

	"github.com/ventuslabs/siteflow/workflow"
)

// Evaluate runs the disclosure rules against a state snapshot. It is pure:
// identical inputs produce structurally equal Decisions, and neither cfg nor
// state is mutated.
//
// existingAchievements is the set of achievement ids the caller has already
// committed; only achievements outside that set are returned. now stamps any
// newly unlocked achievements.
func Evaluate(cfg Config, state *workflow.State, existingAchievements []string, now time.Time) Decision {
	d := Decision{
		NewFeatures:  evaluateTriggers(cfg.Triggers, state),
		Achievements: evaluateAchievements(state, existingAchievements, now),
	}

	if next, offered := evaluateGate(&cfg, state); offered {
		d.ComplexityUpgrade = &next
	}

	if cfg.AdaptiveGuidance && state.Preferences.AdaptiveGuidance {
		d.Recommendations = evaluateRecommendations(state)
	}

	return d
}

// evaluateGate checks the gate for the level directly above the current one.
// Upgrades never skip a level and never go below the current one.
func evaluateGate(cfg *Config, state *workflow.State) (workflow.ComplexityLevel, bool) {
	next, ok := state.Progress.ComplexityLevel.Next()
	if !ok {
		return "", false // already at the top tier
	}
	gate, ok := cfg.GateFor(next)
	if !ok {
		return "", false
	}

	for _, id := range gate.Criteria.RequiredSteps {
		if !state.HasCompleted(id) {
			return "", false
		}
	}
	if state.Progress.TimeSpentMinutes < gate.Criteria.MinTimeSpentMinutes {
		return "", false
	}
	if successRate(state) < gate.Criteria.MinSuccessRate {
		return "", false
	}
	if gate.Criteria.RequiresExplicitRequest {
		if v, ok := state.SharedData[ExplicitRequestKey].(bool); !ok || !v {
			return "", false
		}
	}
	return next, true
}

// successRate is a placeholder: no per-step failure history feeds the gate
// criteria yet, so any completed step counts as a perfect rate.
// TODO: derive the rate from StepResults[*].Success once the orchestrator
// records failed runs.
func successRate(state *workflow.State) float64 {
	if len(state.CompletedSteps) > 0 {
		return 1.0
	}
	return 0.0
}

// Engine wraps a Config behind a lock for callers that want the mutable,
// process-wide configuration surface. The configuration is shared by every
// session that evaluates through the same Engine; serialize configuration
// writes externally (admin-initiated updates only, never per end-user
// request). Concurrent-safe callers should prefer the package-level Evaluate
// with an explicit Config value.
type Engine struct {
	mu  sync.RWMutex
	cfg Config
	now func() time.Time
}

// NewEngine creates an Engine with the built-in default configuration.
func NewEngine() *Engine {
	return NewEngineWith(DefaultConfig())
}

// NewEngineWith creates an Engine with an explicit starting configuration,
// typically from a loaded analysis pack.
func NewEngineWith(cfg Config) *Engine {
	return &Engine{
		cfg: cfg.Clone(),
		now: time.Now,
	}
}

// WithTimeFunc sets a custom clock for deterministic tests.
func (e *Engine) WithTimeFunc(fn func() time.Time) *Engine {
	e.now = fn
	return e
}

// Evaluate snapshots the current configuration and runs the pure evaluation.
func (e *Engine) Evaluate(state *workflow.State, existingAchievements []string) Decision {
	e.mu.RLock()
	cfg := e.cfg.Clone()
	e.mu.RUnlock()
	return Evaluate(cfg, state, existingAchievements, e.now())
}

// ConfigUpdate is a shallow-merge patch for UpdateConfig. Nil fields leave
// the current value untouched.
type ConfigUpdate struct {
	Gates            []Gate
	Triggers         []Trigger
	AdaptiveGuidance *bool
}

// UpdateConfig applies a shallow merge to the engine configuration.
func (e *Engine) UpdateConfig(update ConfigUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if update.Gates != nil {
		e.cfg.Gates = update.Gates
	}
	if update.Triggers != nil {
		e.cfg.Triggers = update.Triggers
	}
	if update.AdaptiveGuidance != nil {
		e.cfg.AdaptiveGuidance = *update.AdaptiveGuidance
	}
}

// ResetConfig restores the built-in default gates and triggers.
func (e *Engine) ResetConfig() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = DefaultConfig()
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}
