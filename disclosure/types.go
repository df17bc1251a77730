// Package disclosure implements the progressive-disclosure rule engine: which
// features unlock, when the next complexity tier is offered, which
// achievements fire, and what adaptive guidance to show for a given session
// state snapshot.
//
// Evaluation is a pure function of (Config, State, existing achievement ids):
// it never mutates the snapshot, never records its own output, and returns
// structurally equal results for identical inputs. The orchestrator commits
// whatever parts of the Decision it accepts.
package disclosure

import (
	"slices"

	"github.com/ventuslabs/siteflow/workflow"
)

// TriggerType labels what kind of event a reveal trigger reacts to. The type
// is descriptive; all sub-conditions present on the trigger are ANDed
// regardless.
type TriggerType string

// Trigger types.
const (
	TriggerStepCompletion TriggerType = "step_completion"
	TriggerUserAction     TriggerType = "user_action"
	TriggerDataThreshold  TriggerType = "data_threshold"
	TriggerTimeBased      TriggerType = "time_based"
)

// Condition is the reveal condition for a trigger. Every field that is set
// must hold for the trigger to fire.
type Condition struct {
	// RequiredSteps must all be present in CompletedSteps.
	RequiredSteps []string `json:"required_steps,omitempty" yaml:"required_steps,omitempty"`

	// TimeThresholdMinutes requires Progress.TimeSpentMinutes to reach it.
	TimeThresholdMinutes int `json:"time_threshold_minutes,omitempty" yaml:"time_threshold_minutes,omitempty"`

	// ComplexityLevel requires the user's level to be at or above it.
	ComplexityLevel workflow.ComplexityLevel `json:"complexity_level,omitempty" yaml:"complexity_level,omitempty"`

	// Expression is a JMESPath expression evaluated against the JSON form of
	// the state snapshot; it must yield a truthy result. Invalid expressions
	// are logged and treated as not matching.
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`

	// Custom is a programmatic predicate over the snapshot. Not expressible
	// in pack manifests; set it when building a Config in code.
	Custom func(*workflow.State) bool `json:"-" yaml:"-"`
}

// Trigger exposes feature or step ids once its condition holds.
type Trigger struct {
	ID        string      `json:"id" yaml:"id"`
	Type      TriggerType `json:"type" yaml:"type"`
	Condition Condition   `json:"condition" yaml:"condition"`

	// Reveals lists the feature/step ids exposed when the trigger fires.
	Reveals []string `json:"reveals" yaml:"reveals"`

	// Priority is an ordering hint for the revealed ids, not exclusivity:
	// higher-priority triggers contribute their reveals first.
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// UnlockCriteria is the rule permitting advancement to a complexity level.
type UnlockCriteria struct {
	RequiredSteps []string `json:"required_steps,omitempty" yaml:"required_steps,omitempty"`

	// MinSuccessRate is compared against the session success rate.
	MinSuccessRate float64 `json:"min_success_rate,omitempty" yaml:"min_success_rate,omitempty"`

	MinTimeSpentMinutes int `json:"min_time_spent_minutes,omitempty" yaml:"min_time_spent_minutes,omitempty"`

	// RequiresExplicitRequest holds the gate back until the session's shared
	// data carries ExplicitRequestKey.
	RequiresExplicitRequest bool `json:"requires_explicit_request,omitempty" yaml:"requires_explicit_request,omitempty"`
}

// ExplicitRequestKey is the shared-data key a caller sets when the user
// explicitly asks for the next complexity tier.
const ExplicitRequestKey = "complexity_upgrade_requested"

// Gate is the unlock rule for one complexity level.
type Gate struct {
	Level            workflow.ComplexityLevel `json:"level" yaml:"level"`
	UnlockedFeatures []string                 `json:"unlocked_features,omitempty" yaml:"unlocked_features,omitempty"`
	Criteria         UnlockCriteria           `json:"criteria" yaml:"criteria"`
	Description      string                   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Config is the engine's rule configuration. Treat it as an immutable value:
// pass it to Evaluate per call rather than sharing a mutable instance across
// sessions.
type Config struct {
	Gates            []Gate    `json:"gates" yaml:"gates"`
	Triggers         []Trigger `json:"triggers" yaml:"triggers"`
	AdaptiveGuidance bool      `json:"adaptive_guidance" yaml:"adaptive_guidance"`
}

// GateFor returns the gate targeting the given level, if configured.
func (c *Config) GateFor(level workflow.ComplexityLevel) (*Gate, bool) {
	for i := range c.Gates {
		if c.Gates[i].Level == level {
			return &c.Gates[i], true
		}
	}
	return nil, false
}

// Clone returns a copy of the Config with its own slices. Condition.Custom
// function values are shared; they are expected to be stateless.
func (c *Config) Clone() Config {
	out := Config{AdaptiveGuidance: c.AdaptiveGuidance}
	out.Gates = make([]Gate, len(c.Gates))
	for i, g := range c.Gates {
		g.UnlockedFeatures = slices.Clone(g.UnlockedFeatures)
		g.Criteria.RequiredSteps = slices.Clone(g.Criteria.RequiredSteps)
		out.Gates[i] = g
	}
	out.Triggers = make([]Trigger, len(c.Triggers))
	for i, tr := range c.Triggers {
		tr.Reveals = slices.Clone(tr.Reveals)
		tr.Condition.RequiredSteps = slices.Clone(tr.Condition.RequiredSteps)
		out.Triggers[i] = tr
	}
	return out
}

// Decision is the disclosure evaluation output. The engine only suggests;
// the caller commits what it accepts.
type Decision struct {
	// NewFeatures is the deduplicated union of reveals from all firing
	// triggers, ordered by trigger priority.
	NewFeatures []string `json:"new_features,omitempty"`

	// ComplexityUpgrade is the offered level, always exactly one above the
	// current one, or nil when no upgrade is offered.
	ComplexityUpgrade *workflow.ComplexityLevel `json:"complexity_upgrade,omitempty"`

	// Achievements holds newly unlocked achievements only: ids already in
	// the caller-supplied existing set are never re-emitted.
	Achievements []workflow.Achievement `json:"achievements,omitempty"`

	Recommendations []string `json:"recommendations,omitempty"`
}
