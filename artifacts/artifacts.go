// Package artifacts derives completed workflow steps from a conversation
// transcript. External calculators embed typed artifact objects (maps,
// charts, reports) in chat messages; each artifact type maps to the step
// that produced it via a fixed dictionary.
//
// Detection is best-effort by design: unknown type tags are logged and
// treated as "no step detected", never as an error.
package artifacts

import "github.com/ventuslabs/siteflow/logger"

// Artifact is an embedded calculation output found in a message.
type Artifact struct {
	Type  string         `json:"type"`
	Title string         `json:"title,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// Message is the minimal transcript entry the detector inspects.
type Message struct {
	Role      string     `json:"role"`
	Content   string     `json:"content,omitempty"`
	Artifacts []Artifact `json:"artifacts,omitempty"`
}

// stepByArtifactType is the fixed artifact-type to step-id dictionary.
var stepByArtifactType = map[string]string{
	"site_map":           "site_selection",
	"terrain_map":        "terrain_analysis",
	"elevation_profile":  "terrain_analysis",
	"wind_rose":          "wind_resource",
	"wind_farm_layout":   "layout_design",
	"wake_simulation":    "wake_simulation",
	"wake_map":           "wake_simulation",
	"performance_report": "performance_analysis",
	"final_report":       "report_generation",
}

// StepForArtifact returns the step id an artifact type maps to.
func StepForArtifact(artifactType string) (string, bool) {
	id, ok := stepByArtifactType[artifactType]
	return id, ok
}

// DetectCompletedSteps scans a transcript and returns the step ids whose
// artifacts appear in it, deduplicated in first-seen order.
func DetectCompletedSteps(messages []Message) []string {
	var steps []string
	seen := make(map[string]bool)
	for i := range messages {
		for _, artifact := range messages[i].Artifacts {
			stepID, ok := stepByArtifactType[artifact.Type]
			if !ok {
				logger.UnknownArtifact(artifact.Type)
				continue
			}
			if !seen[stepID] {
				seen[stepID] = true
				steps = append(steps, stepID)
			}
		}
	}
	return steps
}
