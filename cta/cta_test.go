package cta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventuslabs/siteflow/workflow"
)

func siteStep() *workflow.StepDefinition {
	return &workflow.StepDefinition{
		ID:                "site_selection",
		Title:             "Site Selection",
		Category:          workflow.CategorySiteSelection,
		Complexity:        workflow.LevelBasic,
		EstimatedDuration: 10,
	}
}

func wakeStep() *workflow.StepDefinition {
	return &workflow.StepDefinition{
		ID:                "wake_simulation",
		Title:             "Wake Simulation",
		Category:          workflow.CategoryPerformance,
		Complexity:        workflow.LevelAdvanced,
		EstimatedDuration: 30,
	}
}

// Scenario: an incomplete site_selection step gets exactly two buttons, the
// first a primary labeled "Select Site".
func TestGenerate_IncompleteStep(t *testing.T) {
	state := workflow.NewState("s", "site_selection", 7)

	plan := Generate(siteStep(), state, nil)
	require.Len(t, plan.Buttons, 2)
	assert.Equal(t, "Select Site", plan.Buttons[0].Label)
	assert.Equal(t, VariantPrimary, plan.Buttons[0].Variant)
	assert.Equal(t, ActionCompleteStep, plan.Buttons[0].Action)
	assert.Equal(t, ActionGetHelp, plan.Buttons[1].Action)
	assert.Equal(t, VariantSecondary, plan.Buttons[1].Variant)
}

func TestGenerate_CompletedStepProceedButtons(t *testing.T) {
	state := workflow.NewState("s", "site_selection", 7)
	state.MarkCompleted("site_selection")

	next := []*workflow.StepDefinition{
		{ID: "terrain_analysis", Title: "Terrain Analysis", Category: workflow.CategoryTerrain, Complexity: workflow.LevelBasic},
		{ID: "wind_resource", Title: "Wind Resource Assessment", Category: workflow.CategoryWind, Complexity: workflow.LevelIntermediate},
		{ID: "layout_design", Title: "Turbine Layout Design", Category: workflow.CategoryLayout, Complexity: workflow.LevelIntermediate},
	}

	plan := Generate(siteStep(), state, next)

	// At most two proceed buttons; site_selection is neither exportable nor
	// above basic, so nothing else is added.
	require.Len(t, plan.Buttons, 2)
	assert.Equal(t, ActionNavigateStep, plan.Buttons[0].Action)
	assert.Equal(t, VariantPrimary, plan.Buttons[0].Variant)
	assert.Equal(t, "terrain_analysis", plan.Buttons[0].TargetStepID)
	assert.Equal(t, VariantSecondary, plan.Buttons[1].Variant)
	assert.Equal(t, "wind_resource", plan.Buttons[1].TargetStepID)
}

func TestGenerate_ExportAndAdvancedButtons(t *testing.T) {
	state := workflow.NewState("s", "wake_simulation", 7)
	state.MarkCompleted("wake_simulation")

	plan := Generate(wakeStep(), state, nil)

	actions := make([]Action, 0, len(plan.Buttons))
	for _, b := range plan.Buttons {
		actions = append(actions, b.Action)
	}
	assert.Contains(t, actions, ActionExportResults)
	assert.Contains(t, actions, ActionAdvancedOptions)

	for _, b := range plan.Buttons {
		if b.Action == ActionAdvancedOptions {
			assert.Equal(t, VariantTertiary, b.Variant)
		}
	}
}

func TestGenerate_Guidance(t *testing.T) {
	t.Run("incomplete mentions level and duration", func(t *testing.T) {
		state := workflow.NewState("s", "wake_simulation", 7)
		plan := Generate(wakeStep(), state, nil)
		assert.Contains(t, plan.Guidance, "above your current level")
		assert.Contains(t, plan.Guidance, "30 minutes")
	})

	t.Run("completed with no options closes out", func(t *testing.T) {
		state := workflow.NewState("s", "site_selection", 7)
		state.MarkCompleted("site_selection")
		plan := Generate(siteStep(), state, nil)
		assert.Contains(t, plan.Guidance, "wraps up")
	})

	t.Run("completed with one option names it", func(t *testing.T) {
		state := workflow.NewState("s", "site_selection", 7)
		state.MarkCompleted("site_selection")
		next := []*workflow.StepDefinition{{ID: "terrain_analysis", Title: "Terrain Analysis"}}
		plan := Generate(siteStep(), state, next)
		assert.Contains(t, plan.Guidance, "Terrain Analysis is up next")
	})

	t.Run("completed with many options counts them", func(t *testing.T) {
		state := workflow.NewState("s", "site_selection", 7)
		state.MarkCompleted("site_selection")
		next := []*workflow.StepDefinition{
			{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"},
		}
		plan := Generate(siteStep(), state, next)
		assert.Contains(t, plan.Guidance, "3 options")
	})
}

func TestGenerate_Priority(t *testing.T) {
	tests := []struct {
		category workflow.Category
		want     Priority
	}{
		{workflow.CategorySiteSelection, PriorityHigh},
		{workflow.CategoryTerrain, PriorityHigh},
		{workflow.CategoryWind, PriorityMedium},
		{workflow.CategoryLayout, PriorityMedium},
		{workflow.CategoryPerformance, PriorityMedium},
		{workflow.CategoryReporting, PriorityLow},
		{workflow.Category("unknown"), PriorityLow},
	}
	state := workflow.NewState("s", "x", 7)
	for _, tt := range tests {
		step := &workflow.StepDefinition{ID: "x", Category: tt.category}
		assert.Equal(t, tt.want, Generate(step, state, nil).Priority,
			"category %s", tt.category)
	}
}

func TestGenerate_ContextualHelp(t *testing.T) {
	t.Run("basic users get the getting-started link", func(t *testing.T) {
		state := workflow.NewState("s", "site_selection", 7)
		plan := Generate(siteStep(), state, nil)
		labels := helpLabels(plan)
		assert.Contains(t, labels, "Choosing a site")
		assert.Contains(t, labels, "Getting started")
	})

	t.Run("advanced users do not", func(t *testing.T) {
		state := workflow.NewState("s", "site_selection", 7)
		state.Progress.ComplexityLevel = workflow.LevelAdvanced
		plan := Generate(siteStep(), state, nil)
		assert.NotContains(t, helpLabels(plan), "Getting started")
	})

	t.Run("step override merges ahead of category links", func(t *testing.T) {
		state := workflow.NewState("s", "wake_simulation", 7)
		plan := Generate(wakeStep(), state, nil)
		labels := helpLabels(plan)
		require.NotEmpty(t, labels)
		assert.Equal(t, "Interpreting wake maps", labels[0])
		assert.Contains(t, labels, "Wake models")
	})
}

func helpLabels(plan Plan) []string {
	labels := make([]string, 0, len(plan.ContextualHelp))
	for _, link := range plan.ContextualHelp {
		labels = append(labels, link.Label)
	}
	return labels
}
