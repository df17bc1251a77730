package workflow

import "fmt"

// GraphValidation holds errors and warnings from the one-time graph
// validation pass.
type GraphValidation struct {
	Errors   []string // Blocking: duplicate ids, prerequisites referencing unknown ids
	Warnings []string // Non-blocking: dangling next-step references
}

// HasErrors returns true if there are blocking validation errors.
func (r *GraphValidation) HasErrors() bool {
	return len(r.Errors) > 0
}

// Validate checks a step catalog for structural defects. Duplicate step ids
// and prerequisites referencing non-existent ids block startup; next-step
// references to unknown ids only warn.
func Validate(steps []*StepDefinition) *GraphValidation {
	r := &GraphValidation{}
	if len(steps) == 0 {
		r.Errors = append(r.Errors, "step catalog must be non-empty")
		return r
	}

	ids := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.ID == "" {
			r.Errors = append(r.Errors, "step with empty id")
			continue
		}
		if ids[step.ID] {
			r.Errors = append(r.Errors, fmt.Sprintf("duplicate step id %q", step.ID))
		}
		ids[step.ID] = true
	}

	for _, step := range steps {
		for _, pre := range step.Prerequisites {
			if !ids[pre] {
				r.Errors = append(r.Errors, fmt.Sprintf(
					"step %q prerequisite %q does not reference a defined step", step.ID, pre))
			}
		}
		for _, next := range step.NextSteps {
			if !ids[next] {
				r.Warnings = append(r.Warnings, fmt.Sprintf(
					"step %q next step %q does not reference a defined step", step.ID, next))
			}
		}
		if step.Category != "" && !step.Category.Valid() {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"step %q category %q is not a known category", step.ID, step.Category))
		}
		if step.Complexity != "" && !step.Complexity.Valid() {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"step %q complexity %q is not a known level", step.ID, step.Complexity))
		}
	}

	return r
}
