// Package pack loads analysis pack manifests: YAML documents that carry a
// workflow step catalog together with the disclosure gates and triggers that
// govern it.
//
// Manifests use a k8s-style envelope (apiVersion, kind, metadata, spec) and
// are validated in three passes: JSON-schema structure validation, an engine
// version compatibility check, and the workflow graph validation pass.
// Structural defects and unknown prerequisite references block loading;
// dangling next-step references only warn.
package pack

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ventuslabs/siteflow/disclosure"
	"github.com/ventuslabs/siteflow/version"
	"github.com/ventuslabs/siteflow/workflow"
)

// APIVersion is the manifest apiVersion this engine understands.
const APIVersion = "siteflow.ventuslabs.io/v1alpha1"

// Kind is the manifest kind this engine understands.
const Kind = "AnalysisPack"

// ErrIncompatiblePack is returned when a pack's engineVersion constraint is
// not satisfied by the running engine.
var ErrIncompatiblePack = errors.New("analysis pack requires an incompatible engine version")

// Manifest is the on-disk pack document.
type Manifest struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	Kind       string   `yaml:"kind" json:"kind"`
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
	Spec       Spec     `yaml:"spec" json:"spec"`
}

// Metadata identifies the pack.
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Spec carries the pack payload.
type Spec struct {
	// EngineVersion is a semver constraint the running engine must satisfy
	// (e.g. ">= 0.3"). Empty means any version.
	EngineVersion string `yaml:"engineVersion,omitempty" json:"engineVersion,omitempty"`

	AdaptiveGuidance bool `yaml:"adaptiveGuidance" json:"adaptiveGuidance"`

	Steps    []*workflow.StepDefinition `yaml:"steps" json:"steps"`
	Gates    []disclosure.Gate          `yaml:"gates,omitempty" json:"gates,omitempty"`
	Triggers []disclosure.Trigger       `yaml:"triggers,omitempty" json:"triggers,omitempty"`
}

// Pack is a loaded, validated analysis pack.
type Pack struct {
	Name        string
	Description string
	Graph       *workflow.Graph
	Disclosure  disclosure.Config
}

// Load reads and validates a pack manifest from a file.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}
	pack, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", path, err)
	}
	return pack, nil
}

// Parse validates and builds a pack from raw manifest bytes.
func Parse(data []byte) (*Pack, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if m.APIVersion != APIVersion {
		return nil, fmt.Errorf("unsupported apiVersion %q (want %q)", m.APIVersion, APIVersion)
	}
	if m.Kind != Kind {
		return nil, fmt.Errorf("unsupported kind %q (want %q)", m.Kind, Kind)
	}

	ok, err := version.Satisfies(m.Spec.EngineVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: need %q, engine is %s",
			ErrIncompatiblePack, m.Spec.EngineVersion, version.Version())
	}

	graph, err := workflow.NewGraph(m.Spec.Steps)
	if err != nil {
		return nil, err
	}

	return &Pack{
		Name:        m.Metadata.Name,
		Description: m.Metadata.Description,
		Graph:       graph,
		Disclosure: disclosure.Config{
			Gates:            m.Spec.Gates,
			Triggers:         m.Spec.Triggers,
			AdaptiveGuidance: m.Spec.AdaptiveGuidance,
		},
	}, nil
}

// Default returns the built-in pack: the default step catalog with the
// default disclosure configuration.
func Default() *Pack {
	graph, err := workflow.NewGraph(workflow.DefaultSteps())
	if err != nil {
		// The built-in catalog is validated by tests; reaching this is a bug.
		panic(err)
	}
	return &Pack{
		Name:       "default",
		Graph:      graph,
		Disclosure: disclosure.DefaultConfig(),
	}
}
