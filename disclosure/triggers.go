package disclosure

import (
	"encoding/json"
	"sort"

	"github.com/jmespath/go-jmespath"

	"github.com/ventuslabs/siteflow/logger"
	"github.com/ventuslabs/siteflow/workflow"
)

// evaluateTriggers returns the deduplicated union of reveals from all firing
// triggers, higher-priority triggers first.
func evaluateTriggers(triggers []Trigger, state *workflow.State) []string {
	ordered := make([]Trigger, len(triggers))
	copy(ordered, triggers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	var features []string
	seen := make(map[string]bool)
	for i := range ordered {
		if !conditionHolds(&ordered[i].Condition, state) {
			continue
		}
		for _, id := range ordered[i].Reveals {
			if !seen[id] {
				seen[id] = true
				features = append(features, id)
			}
		}
	}
	return features
}

// conditionHolds evaluates a reveal condition. All set sub-conditions are
// ANDed.
func conditionHolds(c *Condition, state *workflow.State) bool {
	for _, id := range c.RequiredSteps {
		if !state.HasCompleted(id) {
			return false
		}
	}
	if c.TimeThresholdMinutes > 0 && state.Progress.TimeSpentMinutes < c.TimeThresholdMinutes {
		return false
	}
	if c.ComplexityLevel != "" &&
		state.Progress.ComplexityLevel.Ordinal() < c.ComplexityLevel.Ordinal() {
		return false
	}
	if c.Expression != "" && !expressionHolds(c.Expression, state) {
		return false
	}
	if c.Custom != nil && !c.Custom(state) {
		return false
	}
	return true
}

// expressionHolds runs a JMESPath expression against the JSON form of the
// state snapshot. Invalid expressions or unmarshalable state log a warning
// and count as not matching, never as a failure.
func expressionHolds(expression string, state *workflow.State) bool {
	raw, err := json.Marshal(state)
	if err != nil {
		logger.Warn("cannot marshal state for trigger expression", "error", err)
		return false
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("cannot round-trip state for trigger expression", "error", err)
		return false
	}

	result, err := jmespath.Search(expression, data)
	if err != nil {
		logger.Warn("invalid trigger expression", "expression", expression, "error", err)
		return false
	}
	return truthy(result)
}

// truthy mirrors JMESPath truthiness: false, null, empty strings, and empty
// collections are false; everything else (including 0) is true.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
