package workflow

import (
	"errors"
	"fmt"

	"github.com/ventuslabs/siteflow/logger"
)

// ErrInvalidGraph is returned when a step catalog fails the load-time
// validation pass.
var ErrInvalidGraph = errors.New("invalid workflow graph")

// Graph is the immutable step graph. Build it once at startup with NewGraph;
// lookups are read-only and safe for concurrent use.
type Graph struct {
	steps map[string]*StepDefinition
	order []string
}

// NewGraph validates a step catalog and builds the graph. Blocking findings
// (duplicate ids, unknown prerequisite references) fail with ErrInvalidGraph;
// non-blocking findings are logged as warnings.
func NewGraph(steps []*StepDefinition) (*Graph, error) {
	v := Validate(steps)
	for _, w := range v.Warnings {
		logger.Warn("workflow graph warning", "finding", w)
	}
	if v.HasErrors() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraph, v.Errors)
	}

	g := &Graph{
		steps: make(map[string]*StepDefinition, len(steps)),
		order: make([]string, 0, len(steps)),
	}
	for _, step := range steps {
		g.steps[step.ID] = step
		g.order = append(g.order, step.ID)
	}
	return g, nil
}

// Step returns the definition for the given id.
func (g *Graph) Step(id string) (*StepDefinition, bool) {
	s, ok := g.steps[id]
	return s, ok
}

// Steps returns all definitions in catalog order.
func (g *Graph) Steps() []*StepDefinition {
	out := make([]*StepDefinition, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.steps[id])
	}
	return out
}

// Len returns the number of steps in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// Entry returns the first step with no prerequisites, falling back to the
// first step in catalog order.
func (g *Graph) Entry() *StepDefinition {
	for _, id := range g.order {
		if len(g.steps[id].Prerequisites) == 0 {
			return g.steps[id]
		}
	}
	if len(g.order) == 0 {
		return nil
	}
	return g.steps[g.order[0]]
}
