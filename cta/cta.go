// Package cta derives the call-to-action surface for the current workflow
// step: which buttons to render, what guidance to show, how urgent the step
// is, and which help links apply.
//
// Everything here is a pure function over closed lookup tables; button
// actions are forwarded back to the orchestrator either as a "complete
// current step" event or as a literal next-step navigation id.
package cta

import (
	"fmt"

	"github.com/ventuslabs/siteflow/workflow"
)

// Action identifies what pressing a button means to the orchestrator.
type Action string

// Button actions.
const (
	ActionCompleteStep    Action = "complete_step"
	ActionGetHelp         Action = "get_help"
	ActionNavigateStep    Action = "navigate_step"
	ActionExportResults   Action = "export_results"
	ActionAdvancedOptions Action = "advanced_options"
)

// Variant is the rendering emphasis of a button.
type Variant string

// Button variants.
const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantTertiary  Variant = "tertiary"
)

// Priority classifies how urgent the current step is for the overall
// analysis.
type Priority string

// Priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Button is a single rendered call-to-action.
type Button struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Action  Action  `json:"action"`
	Variant Variant `json:"variant"`

	// TargetStepID is set for navigate actions only.
	TargetStepID string `json:"target_step_id,omitempty"`
}

// HelpLink is a contextual help reference.
type HelpLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Plan is the full call-to-action bundle for one step and state.
type Plan struct {
	Buttons        []Button   `json:"buttons"`
	Guidance       string     `json:"guidance"`
	Priority       Priority   `json:"priority"`
	ContextualHelp []HelpLink `json:"contextual_help,omitempty"`
}

// completeLabels is the fixed category to primary-button-label table.
var completeLabels = map[workflow.Category]string{
	workflow.CategorySiteSelection: "Select Site",
	workflow.CategoryTerrain:       "Analyze Terrain",
	workflow.CategoryWind:          "Assess Wind Resource",
	workflow.CategoryLayout:        "Design Layout",
	workflow.CategoryPerformance:   "Run Analysis",
	workflow.CategoryReporting:     "Generate Report",
}

// exportableCategories lists the categories whose results can be exported.
var exportableCategories = map[workflow.Category]bool{
	workflow.CategoryLayout:      true,
	workflow.CategoryPerformance: true,
	workflow.CategoryReporting:   true,
}

// categoryPriorities is the fixed total classification of step urgency.
var categoryPriorities = map[workflow.Category]Priority{
	workflow.CategorySiteSelection: PriorityHigh,
	workflow.CategoryTerrain:       PriorityHigh,
	workflow.CategoryWind:          PriorityMedium,
	workflow.CategoryLayout:        PriorityMedium,
	workflow.CategoryPerformance:   PriorityMedium,
}

// maxProceedButtons caps how many next-step buttons a completed step shows.
const maxProceedButtons = 2

// Generate builds the call-to-action plan for a step given the state
// snapshot and the steps currently available to enter.
func Generate(step *workflow.StepDefinition, state *workflow.State, availableNext []*workflow.StepDefinition) Plan {
	completed := state.HasCompleted(step.ID)
	return Plan{
		Buttons:        buttons(step, state, completed, availableNext),
		Guidance:       guidance(step, state, completed, availableNext),
		Priority:       priorityFor(step.Category),
		ContextualHelp: helpLinks(step, state),
	}
}

func buttons(step *workflow.StepDefinition, state *workflow.State, completed bool, availableNext []*workflow.StepDefinition) []Button {
	if !completed {
		label, ok := completeLabels[step.Category]
		if !ok {
			label = "Complete Step"
		}
		return []Button{
			{ID: "complete", Label: label, Action: ActionCompleteStep, Variant: VariantPrimary},
			{ID: "help", Label: "Get Help", Action: ActionGetHelp, Variant: VariantSecondary},
		}
	}

	var out []Button
	for i, next := range availableNext {
		if i == maxProceedButtons {
			break
		}
		variant := VariantSecondary
		if i == 0 {
			variant = VariantPrimary
		}
		out = append(out, Button{
			ID:           fmt.Sprintf("proceed_%s", next.ID),
			Label:        fmt.Sprintf("Proceed to %s", next.Title),
			Action:       ActionNavigateStep,
			Variant:      variant,
			TargetStepID: next.ID,
		})
	}
	if exportableCategories[step.Category] {
		out = append(out, Button{
			ID: "export", Label: "Export Results", Action: ActionExportResults, Variant: VariantSecondary,
		})
	}
	if step.Complexity.Ordinal() > workflow.LevelBasic.Ordinal() {
		out = append(out, Button{
			ID: "advanced", Label: "Advanced Options", Action: ActionAdvancedOptions, Variant: VariantTertiary,
		})
	}
	return out
}

func guidance(step *workflow.StepDefinition, state *workflow.State, completed bool, availableNext []*workflow.StepDefinition) string {
	if !completed {
		return fmt.Sprintf("%s %s", complexityRemark(step, state), durationRemark(step))
	}

	switch len(availableNext) {
	case 0:
		return "All done here - this wraps up the analysis. Review or export your results."
	case 1:
		return fmt.Sprintf("Step complete. %s is up next.", availableNext[0].Title)
	default:
		return fmt.Sprintf("Step complete. %d options are open; pick the one that fits your goal.", len(availableNext))
	}
}

func complexityRemark(step *workflow.StepDefinition, state *workflow.State) string {
	stepOrd := step.Complexity.Ordinal()
	userOrd := state.Progress.ComplexityLevel.Ordinal()
	switch {
	case stepOrd < userOrd:
		return fmt.Sprintf("%s should be quick at your level.", step.Title)
	case stepOrd > userOrd:
		return fmt.Sprintf("%s is above your current level; take it slow or enable guided mode.", step.Title)
	default:
		return fmt.Sprintf("%s matches your current level.", step.Title)
	}
}

func durationRemark(step *workflow.StepDefinition) string {
	return fmt.Sprintf("Estimated time: %d minutes.", step.EstimatedDuration)
}

func priorityFor(category workflow.Category) Priority {
	if p, ok := categoryPriorities[category]; ok {
		return p
	}
	return PriorityLow
}

// categoryHelp is the fixed per-category help link list.
var categoryHelp = map[workflow.Category][]HelpLink{
	workflow.CategorySiteSelection: {
		{Label: "Choosing a site", URL: "https://docs.siteflow.dev/guides/site-selection"},
	},
	workflow.CategoryTerrain: {
		{Label: "Terrain constraints", URL: "https://docs.siteflow.dev/guides/terrain"},
	},
	workflow.CategoryWind: {
		{Label: "Wind resource basics", URL: "https://docs.siteflow.dev/guides/wind-resource"},
	},
	workflow.CategoryLayout: {
		{Label: "Layout design", URL: "https://docs.siteflow.dev/guides/layout"},
		{Label: "Spacing rules", URL: "https://docs.siteflow.dev/guides/spacing"},
	},
	workflow.CategoryPerformance: {
		{Label: "Wake models", URL: "https://docs.siteflow.dev/guides/wake-models"},
	},
	workflow.CategoryReporting: {
		{Label: "Report templates", URL: "https://docs.siteflow.dev/guides/reports"},
	},
}

// gettingStarted is shown to basic-level users on every step.
var gettingStarted = HelpLink{
	Label: "Getting started",
	URL:   "https://docs.siteflow.dev/getting-started",
}

// stepHelpOverrides maps step ids to extra help links merged ahead of the
// category list.
var stepHelpOverrides = map[string][]HelpLink{
	"wake_simulation": {
		{Label: "Interpreting wake maps", URL: "https://docs.siteflow.dev/guides/wake-maps"},
	},
}

func helpLinks(step *workflow.StepDefinition, state *workflow.State) []HelpLink {
	var links []HelpLink
	links = append(links, stepHelpOverrides[step.ID]...)
	links = append(links, categoryHelp[step.Category]...)
	if state.Progress.ComplexityLevel == workflow.LevelBasic {
		links = append(links, gettingStarted)
	}
	return links
}
