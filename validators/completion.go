package validators

import (
	"fmt"

	"github.com/ventuslabs/siteflow/workflow"
)

// ValidateCompletion checks a step result against the step's success
// criteria. Each criteria tag requires a corresponding field on the result:
//
//	visualization  at least one artifact
//	data           non-empty result data
//	analysis       an "analysis" entry in result data
//
// A missing field makes the result invalid; unknown tags are ignored.
func (v *Validator) ValidateCompletion(step *workflow.StepDefinition, state *workflow.State, result *workflow.StepResult) Result {
	r := Result{Valid: true}
	if result == nil {
		r.Valid = false
		r.Warnings = append(r.Warnings, "no step result provided")
		return r
	}

	for _, criterion := range step.SuccessCriteria {
		switch criterion {
		case "visualization":
			if len(result.Artifacts) == 0 {
				r.Valid = false
				r.Warnings = append(r.Warnings, fmt.Sprintf(
					"%s should produce a visualization artifact", step.Title))
			}
		case "data":
			if len(result.Data) == 0 {
				r.Valid = false
				r.Warnings = append(r.Warnings, fmt.Sprintf(
					"%s should produce result data", step.Title))
			}
		case "analysis":
			if _, ok := result.Data["analysis"]; !ok {
				r.Valid = false
				r.Warnings = append(r.Warnings, fmt.Sprintf(
					"%s should include an analysis summary", step.Title))
			}
		}
	}

	if !result.Success {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"%s reported an unsuccessful run", step.Title))
		r.Recommendations = append(r.Recommendations, "Review the step inputs and retry")
	}

	return r
}
