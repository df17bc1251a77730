package disclosure

import (
	"fmt"

	"github.com/ventuslabs/siteflow/workflow"
)

// Pace thresholds in average minutes per completed step.
const (
	slowPaceMinutes = 20
	fastPaceMinutes = 5
)

// levelTips is the static per-complexity-level tip.
var levelTips = map[workflow.ComplexityLevel]string{
	workflow.LevelBasic:        "Tip: follow the suggested step order; each step feeds data into the next",
	workflow.LevelIntermediate: "Tip: revisit earlier steps with refined inputs to tighten the analysis",
	workflow.LevelAdvanced:     "Tip: compare layout variants before committing to a performance run",
	workflow.LevelExpert:       "Tip: custom validators and triggers can tailor the workflow to your process",
}

// evaluateRecommendations produces adaptive guidance: a progress-band
// message, a pace heuristic, and the per-level tip. Each part is
// independently optional.
func evaluateRecommendations(state *workflow.State) []string {
	var recs []string

	completed := len(state.CompletedSteps)
	total := state.Progress.TotalSteps
	if total > 0 {
		switch ratio := float64(completed) / float64(total); {
		case ratio < 1.0/3.0:
			recs = append(recs, "You're just getting started; the early steps unlock the rest of the analysis")
		case ratio < 2.0/3.0:
			recs = append(recs, fmt.Sprintf(
				"Good progress: %d of %d steps done; keep the momentum going", completed, total))
		default:
			recs = append(recs, "Almost there; finish the remaining steps to complete the analysis")
		}
	}

	if completed > 0 {
		pace := float64(state.Progress.TimeSpentMinutes) / float64(completed)
		switch {
		case pace > slowPaceMinutes:
			recs = append(recs, "Taking your time? Guided mode walks each step through with explanations")
		case pace < fastPaceMinutes:
			recs = append(recs, "Moving fast; advanced options may be worth exploring")
		}
	}

	if tip, ok := levelTips[state.Progress.ComplexityLevel]; ok {
		recs = append(recs, tip)
	}

	return recs
}
