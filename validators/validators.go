// Package validators decides whether a workflow step may be entered or
// counted as complete, given a session state snapshot.
//
// Validation never throws in steady state: every finding is data. Missing
// prerequisites make a step invalid; complexity mismatches, absent session
// data, and unmet requirement tags only produce warnings and recommendations
// so the caller can always render a degraded-but-functional UI.
//
// The default pipeline can be replaced per step id through the Registry
// (strategy dispatch by identity, not type hierarchy).
package validators

import (
	"fmt"

	"github.com/ventuslabs/siteflow/workflow"
)

// Result holds the outcome of a single validation call. It is computed per
// call and never stored.
type Result struct {
	// Valid is false iff MissingPrerequisites is non-empty. Soft findings
	// never flip it on their own.
	Valid                bool     `json:"valid"`
	MissingPrerequisites []string `json:"missing_prerequisites,omitempty"`
	Warnings             []string `json:"warnings,omitempty"`
	Recommendations      []string `json:"recommendations,omitempty"`
}

// StepValidator validates entry into a single step. Implementations must be
// pure: read the snapshot, return findings, mutate nothing.
type StepValidator interface {
	Validate(step *workflow.StepDefinition, state *workflow.State) Result
}

// StepValidatorFunc adapts a function to the StepValidator interface.
type StepValidatorFunc func(step *workflow.StepDefinition, state *workflow.State) Result

// Validate calls f.
func (f StepValidatorFunc) Validate(step *workflow.StepDefinition, state *workflow.State) Result {
	return f(step, state)
}

// Validator runs the default validation pipeline against a graph, with
// per-step overrides from its Registry.
type Validator struct {
	graph    *workflow.Graph
	registry *Registry
}

// New creates a Validator for the given graph with an empty override registry.
func New(graph *workflow.Graph) *Validator {
	return &Validator{
		graph:    graph,
		registry: NewRegistry(),
	}
}

// Registry returns the per-step override registry.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// Graph returns the graph this validator is bound to.
func (v *Validator) Graph() *workflow.Graph {
	return v.graph
}

// Validate checks whether the step may be entered given the state snapshot.
// A registered override fully replaces the default pipeline for its step id.
func (v *Validator) Validate(step *workflow.StepDefinition, state *workflow.State) Result {
	if override, ok := v.registry.Get(step.ID); ok {
		return override.Validate(step, state)
	}
	return defaultPipeline(step, state)
}

// defaultPipeline is the shared validation strategy: prerequisites, then
// complexity, then category soft checks, then requirement tags.
func defaultPipeline(step *workflow.StepDefinition, state *workflow.State) Result {
	r := Result{Valid: true}

	for _, pre := range step.Prerequisites {
		if !state.HasCompleted(pre) {
			r.MissingPrerequisites = append(r.MissingPrerequisites, pre)
		}
	}
	if len(r.MissingPrerequisites) > 0 {
		r.Valid = false
		r.Recommendations = append(r.Recommendations, fmt.Sprintf(
			"Complete %v before starting %s", r.MissingPrerequisites, step.Title))
	}

	checkComplexity(step, state, &r)
	checkCategoryData(step, state, &r)
	checkRequirements(step, state, &r)

	return r
}

// checkComplexity compares the step's tier to the user's. A mismatch warns
// and recommends but never blocks.
func checkComplexity(step *workflow.StepDefinition, state *workflow.State, r *Result) {
	stepOrd := step.Complexity.Ordinal()
	userOrd := state.Progress.ComplexityLevel.Ordinal()
	if stepOrd > userOrd {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"%s is a %s-level step; your current level is %s",
			step.Title, step.Complexity, state.Progress.ComplexityLevel))
		r.Recommendations = append(r.Recommendations,
			"Consider completing more basic steps first, or enable guided mode")
	}
}

// categoryChecks holds one soft check per category, inspecting session
// shared data for the inputs that category typically needs.
var categoryChecks = map[workflow.Category]func(state *workflow.State, r *Result){
	workflow.CategorySiteSelection: func(state *workflow.State, r *Result) {
		if _, ok := state.SharedData["coordinates"]; !ok {
			r.Warnings = append(r.Warnings, "no site coordinates in session data")
			r.Recommendations = append(r.Recommendations, "Pick a location on the map to set coordinates")
		}
	},
	workflow.CategoryTerrain: func(state *workflow.State, r *Result) {
		if _, ok := state.SharedData["coordinates"]; !ok {
			r.Warnings = append(r.Warnings, "terrain analysis works best with site coordinates present")
		}
	},
	workflow.CategoryWind: func(state *workflow.State, r *Result) {
		if _, ok := state.SharedData["coordinates"]; !ok {
			r.Warnings = append(r.Warnings, "wind resource lookup needs site coordinates")
		}
	},
	workflow.CategoryLayout: func(state *workflow.State, r *Result) {
		if _, ok := state.SharedData["terrain_constraints"]; !ok {
			r.Warnings = append(r.Warnings, "no terrain constraints in session data; layout may ignore exclusion zones")
			r.Recommendations = append(r.Recommendations, "Run terrain analysis to derive buildable area")
		}
	},
	workflow.CategoryPerformance: func(state *workflow.State, r *Result) {
		if _, ok := state.SharedData["layout_geometry"]; !ok {
			r.Warnings = append(r.Warnings, "no turbine layout in session data")
		}
	},
	workflow.CategoryReporting: func(state *workflow.State, r *Result) {
		if _, ok := state.SharedData["performance_results"]; !ok {
			r.Warnings = append(r.Warnings, "no performance results to report on yet")
		}
	},
}

func checkCategoryData(step *workflow.StepDefinition, state *workflow.State, r *Result) {
	if check, ok := categoryChecks[step.Category]; ok {
		check(state, r)
	}
}

// requirementKeys maps requirement tags to the session shared-data keys that
// satisfy them. Tags without an entry are looked up in shared data verbatim.
var requirementKeys = map[string]string{
	"coordinates": "coordinates",
	"terrain":     "terrain_constraints",
	"wind":        "wind_data",
	"layout":      "layout_geometry",
	"performance": "performance_results",
}

func checkRequirements(step *workflow.StepDefinition, state *workflow.State, r *Result) {
	for _, tag := range step.Requirements {
		key, ok := requirementKeys[tag]
		if !ok {
			key = tag
		}
		if _, present := state.SharedData[key]; !present {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"required data %q not available yet", tag))
		}
	}
}
