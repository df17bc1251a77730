package validators

import (
	"sort"

	"github.com/ventuslabs/siteflow/workflow"
)

// AvailableNextSteps returns every non-completed step the user may enter now.
// Availability is gated on prerequisites alone: soft warnings (complexity,
// missing session data) never block a step, so getting-ahead users keep their
// options while the warnings surface in the UI.
func (v *Validator) AvailableNextSteps(state *workflow.State) []*workflow.StepDefinition {
	var available []*workflow.StepDefinition
	for _, step := range v.graph.Steps() {
		if state.HasCompleted(step.ID) {
			continue
		}
		if v.Validate(step, state).Valid {
			available = append(available, step)
		}
	}
	return available
}

// RecommendedNextStep returns the first available step ordered by category
// pipeline rank (site selection through reporting), then ascending
// complexity. Returns nil when nothing is available.
func (v *Validator) RecommendedNextStep(state *workflow.State) *workflow.StepDefinition {
	available := v.AvailableNextSteps(state)
	if len(available) == 0 {
		return nil
	}
	sort.SliceStable(available, func(i, j int) bool {
		ri, rj := available[i].Category.Rank(), available[j].Category.Rank()
		if ri != rj {
			return ri < rj
		}
		return available[i].Complexity.Ordinal() < available[j].Complexity.Ordinal()
	})
	return available[0]
}
