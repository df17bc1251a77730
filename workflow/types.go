// Package workflow defines the static step graph and shared state types for
// the progressive-disclosure analysis workflow.
//
// A workflow is a directed graph of analysis steps (site selection, terrain,
// wind resource, layout, performance, reporting). Step definitions are
// immutable and loaded once; per-session state is a mutable snapshot owned by
// the orchestrator and read-only to every rule component.
package workflow

import "time"

// Category classifies a step by analysis discipline.
type Category string

// Category values, in pipeline order.
const (
	CategorySiteSelection Category = "site_selection"
	CategoryTerrain       Category = "terrain"
	CategoryWind          Category = "wind"
	CategoryLayout        Category = "layout"
	CategoryPerformance   Category = "performance"
	CategoryReporting     Category = "reporting"
)

// categoryRank is the fixed pipeline order used for recommendation ordering.
var categoryRank = map[Category]int{
	CategorySiteSelection: 0,
	CategoryTerrain:       1,
	CategoryWind:          2,
	CategoryLayout:        3,
	CategoryPerformance:   4,
	CategoryReporting:     5,
}

// Rank returns the category's position in the analysis pipeline.
// Unknown categories sort last.
func (c Category) Rank() int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return len(categoryRank)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryRank[c]
	return ok
}

// ComplexityLevel is one of four ordered tiers gating feature and step
// exposure.
type ComplexityLevel string

// Complexity levels, lowest to highest.
const (
	LevelBasic        ComplexityLevel = "basic"
	LevelIntermediate ComplexityLevel = "intermediate"
	LevelAdvanced     ComplexityLevel = "advanced"
	LevelExpert       ComplexityLevel = "expert"
)

// levelOrdinal is the explicit total order basic < intermediate < advanced < expert.
var levelOrdinal = map[ComplexityLevel]int{
	LevelBasic:        0,
	LevelIntermediate: 1,
	LevelAdvanced:     2,
	LevelExpert:       3,
}

// levelAbove maps each level to the one directly above it.
var levelAbove = map[ComplexityLevel]ComplexityLevel{
	LevelBasic:        LevelIntermediate,
	LevelIntermediate: LevelAdvanced,
	LevelAdvanced:     LevelExpert,
}

// Ordinal returns the level's position in the total order.
// Unknown levels map to 0 (basic) so a malformed snapshot degrades rather
// than panics.
func (l ComplexityLevel) Ordinal() int {
	return levelOrdinal[l]
}

// Valid reports whether l is a known complexity level.
func (l ComplexityLevel) Valid() bool {
	_, ok := levelOrdinal[l]
	return ok
}

// Next returns the level immediately above l, or false when l is already the
// top tier. Upgrades never skip a level.
func (l ComplexityLevel) Next() (ComplexityLevel, bool) {
	next, ok := levelAbove[l]
	return next, ok
}

// StepDefinition is a single immutable entry in the workflow graph.
type StepDefinition struct {
	// ID is the stable step identifier (e.g. "terrain_analysis").
	ID string `json:"id" yaml:"id"`

	// Title is the human-readable step name.
	Title string `json:"title" yaml:"title"`

	Category   Category        `json:"category" yaml:"category"`
	Complexity ComplexityLevel `json:"complexity" yaml:"complexity"`

	// Prerequisites lists step ids that must be completed before this step
	// may be entered. Order is preserved in validation output.
	Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`

	// NextSteps lists suggested follow-up steps, in preference order.
	// Dangling references warn at load time but do not block.
	NextSteps []string `json:"next_steps,omitempty" yaml:"next_steps,omitempty"`

	// EstimatedDuration is the expected working time in minutes.
	EstimatedDuration int `json:"estimated_duration" yaml:"estimated_duration"`

	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`

	// Requirements are data tags ("coordinates", "terrain", "wind", ...)
	// checked against session shared data as soft warnings.
	Requirements []string `json:"requirements,omitempty" yaml:"requirements,omitempty"`

	// SuccessCriteria are the tags a StepResult must satisfy for the step to
	// count as complete ("visualization", "data", "analysis").
	SuccessCriteria []string `json:"success_criteria,omitempty" yaml:"success_criteria,omitempty"`
}

// Achievement is a one-time progress badge. An id appears at most once in
// Progress.Achievements; the disclosure engine returns only newly unlocked
// achievements and the orchestrator appends them once.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
