package workflow

import (
	"maps"
	"slices"
	"time"
)

// State is the per-session progress snapshot. It is owned and mutated only by
// the orchestrator; the validator, disclosure engine, and CTA generator read
// it for the duration of a call and never retain it.
type State struct {
	SessionID     string `json:"session_id"`
	CurrentStepID string `json:"current_step_id"`

	// CompletedSteps is ordered, duplicate-free, and a subset of the graph's
	// step ids. MarkCompleted preserves both properties.
	CompletedSteps []string `json:"completed_steps"`

	// AvailableSteps is the set of step ids the user may enter next, as last
	// computed by the validator.
	AvailableSteps []string `json:"available_steps,omitempty"`

	StepResults map[string]*StepResult `json:"step_results,omitempty"`
	Progress    Progress               `json:"progress"`

	// SharedData holds session-scoped analysis data keyed by well-known names
	// ("coordinates", "terrain_constraints", "wind_data", ...). Soft
	// validation checks inspect it without blocking.
	SharedData map[string]any `json:"shared_data,omitempty"`

	Preferences Preferences `json:"preferences"`
}

// Progress tracks cumulative per-session user progress.
type Progress struct {
	TotalSteps       int             `json:"total_steps"`
	CompletedCount   int             `json:"completed_count"`
	ComplexityLevel  ComplexityLevel `json:"complexity_level"`
	UnlockedFeatures []string        `json:"unlocked_features,omitempty"`

	// Achievements is append-only: its length never decreases and ids never
	// repeat within a session.
	Achievements []Achievement `json:"achievements,omitempty"`

	TimeSpentMinutes int       `json:"time_spent_minutes"`
	LastActiveStep   string    `json:"last_active_step,omitempty"`
	LastActiveAt     time.Time `json:"last_active_at,omitempty"`
}

// Preferences holds user-facing guidance switches.
type Preferences struct {
	// AdaptiveGuidance enables the disclosure engine's recommendation rules.
	AdaptiveGuidance bool `json:"adaptive_guidance"`

	// GuidedMode requests step-by-step hand-holding in the UI.
	GuidedMode bool `json:"guided_mode"`
}

// StepResult is the opaque outcome of a completed step.
type StepResult struct {
	StepID   string         `json:"step_id"`
	Success  bool           `json:"success"`
	Data     map[string]any `json:"data,omitempty"`
	Artifacts []Artifact    `json:"artifacts,omitempty"`

	// RecommendedNext optionally names the step the producing calculation
	// suggests entering next.
	RecommendedNext string `json:"recommended_next,omitempty"`
}

// Artifact is a rendered output attached to a step result (a map, chart, or
// report produced by an external calculator).
type Artifact struct {
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// NewState creates an empty session snapshot starting at the given step and
// complexity level.
func NewState(sessionID, entryStepID string, totalSteps int) *State {
	return &State{
		SessionID:     sessionID,
		CurrentStepID: entryStepID,
		CompletedSteps: []string{},
		StepResults:   map[string]*StepResult{},
		SharedData:    map[string]any{},
		Progress: Progress{
			TotalSteps:      totalSteps,
			ComplexityLevel: LevelBasic,
		},
		Preferences: Preferences{AdaptiveGuidance: true},
	}
}

// HasCompleted reports whether the step id is in CompletedSteps.
func (s *State) HasCompleted(stepID string) bool {
	return slices.Contains(s.CompletedSteps, stepID)
}

// MarkCompleted appends stepID to CompletedSteps, preserving order and
// uniqueness. Returns false when the step was already completed.
func (s *State) MarkCompleted(stepID string) bool {
	if s.HasCompleted(stepID) {
		return false
	}
	s.CompletedSteps = append(s.CompletedSteps, stepID)
	s.Progress.CompletedCount = len(s.CompletedSteps)
	return true
}

// HasAchievement reports whether the achievement id was already unlocked.
func (s *State) HasAchievement(id string) bool {
	for i := range s.Progress.Achievements {
		if s.Progress.Achievements[i].ID == id {
			return true
		}
	}
	return false
}

// AchievementIDs returns the ids of all unlocked achievements, in unlock order.
func (s *State) AchievementIDs() []string {
	ids := make([]string, 0, len(s.Progress.Achievements))
	for i := range s.Progress.Achievements {
		ids = append(ids, s.Progress.Achievements[i].ID)
	}
	return ids
}

// Clone returns a deep copy of the State. Stores hand out clones so no caller
// aliases the stored snapshot.
func (s *State) Clone() *State {
	c := &State{
		SessionID:     s.SessionID,
		CurrentStepID: s.CurrentStepID,
		Progress:      s.Progress,
		Preferences:   s.Preferences,
	}
	c.CompletedSteps = slices.Clone(s.CompletedSteps)
	c.AvailableSteps = slices.Clone(s.AvailableSteps)
	c.Progress.UnlockedFeatures = slices.Clone(s.Progress.UnlockedFeatures)
	c.Progress.Achievements = slices.Clone(s.Progress.Achievements)
	if s.StepResults != nil {
		c.StepResults = make(map[string]*StepResult, len(s.StepResults))
		for id, r := range s.StepResults {
			rc := *r
			rc.Artifacts = slices.Clone(r.Artifacts)
			if r.Data != nil {
				rc.Data = make(map[string]any, len(r.Data))
				maps.Copy(rc.Data, r.Data)
			}
			c.StepResults[id] = &rc
		}
	}
	if s.SharedData != nil {
		c.SharedData = make(map[string]any, len(s.SharedData))
		maps.Copy(c.SharedData, s.SharedData)
	}
	return c
}
