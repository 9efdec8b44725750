package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario is a sequence of service operations with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config overrides the service configuration.
	Config ScenarioConfig `yaml:"config,omitempty"`

	// Payloads are named N-Quads documents referenced by steps.
	Payloads map[string]string `yaml:"payloads,omitempty"`

	// Steps run in order against one store.
	Steps []Step `yaml:"steps"`

	// Assertions check the store after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ScenarioConfig holds the configuration a scenario may override.
type ScenarioConfig struct {
	PageSize int    `yaml:"page_size,omitempty"`
	Backend  string `yaml:"backend,omitempty"`
	BaseIRI  string `yaml:"base_iri,omitempty"`
}

// Step is one service operation.
type Step struct {
	Op string `yaml:"op"`

	// Container is the container posted to, read or paged.
	Container string `yaml:"container,omitempty"`

	// IRI is the annotation read or deleted.
	IRI string `yaml:"iri,omitempty"`

	// Payload names an entry of Scenario.Payloads.
	Payload string `yaml:"payload,omitempty"`

	// Slug is the last path segment of a posted container.
	Slug string `yaml:"slug,omitempty"`

	Page     int  `yaml:"page,omitempty"`
	IrisOnly bool `yaml:"iris_only,omitempty"`
	Minimal  bool `yaml:"minimal,omitempty"`

	// ETag is sent with delete_annotation. "current" sends the etag the
	// annotation was stored with.
	ETag string `yaml:"etag,omitempty"`

	// Filters of a query step.
	Filters []Filter `yaml:"filters,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// Filter is one query criterion.
type Filter struct {
	Property string `yaml:"property"`
	Value    string `yaml:"value"`
	Match    string `yaml:"match,omitempty"` // exact (default) | contains
}

// Expect is checked against the step's record. Unset fields are not checked.
type Expect struct {
	Error      string   `yaml:"error,omitempty"`
	Target     string   `yaml:"target,omitempty"`
	Items      []string `yaml:"items,omitempty"`
	TotalItems *int     `yaml:"total_items,omitempty"`
	Contains   []string `yaml:"contains,omitempty"`

	// Links maps as:first, as:last, as:next, as:prev and as:partOf by local
	// name to the expected IRI; an empty value requires the link be absent.
	Links map[string]string `yaml:"links,omitempty"`
}

// Assertion validates the final store state.
type Assertion struct {
	Type      string   `yaml:"type"`
	Container string   `yaml:"container,omitempty"`
	IRI       string   `yaml:"iri,omitempty"`
	Count     int      `yaml:"count,omitempty"`
	Members   []string `yaml:"members,omitempty"`
}

// Operation names.
const (
	OpPostAnnotation   = "post_annotation"
	OpPostContainer    = "post_container"
	OpGetAnnotation    = "get_annotation"
	OpGetContainer     = "get_container"
	OpGetPage          = "get_page"
	OpDeleteAnnotation = "delete_annotation"
	OpQuery            = "query"
)

var operations = []string{
	OpPostAnnotation, OpPostContainer, OpGetAnnotation, OpGetContainer,
	OpGetPage, OpDeleteAnnotation, OpQuery,
}

// Assertion type constants.
const (
	AssertContainerTotal    = "container_total"
	AssertContainerChildren = "container_children"
	AssertAnnotationDeleted = "annotation_deleted"
	AssertGraphCount        = "graph_count"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step, s.Payloads); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(i int, step Step, payloads map[string]string) error {
	if !slices.Contains(operations, step.Op) {
		return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
	}

	switch step.Op {
	case OpPostAnnotation, OpPostContainer:
		if step.Container == "" {
			return fmt.Errorf("steps[%d]: container is required for %s", i, step.Op)
		}
		if _, ok := payloads[step.Payload]; !ok {
			return fmt.Errorf("steps[%d]: unknown payload %q", i, step.Payload)
		}
	case OpGetContainer, OpGetPage:
		if step.Container == "" {
			return fmt.Errorf("steps[%d]: container is required for %s", i, step.Op)
		}
	case OpGetAnnotation, OpDeleteAnnotation:
		if step.IRI == "" {
			return fmt.Errorf("steps[%d]: iri is required for %s", i, step.Op)
		}
	case OpQuery:
		for j, f := range step.Filters {
			if f.Match != "" && f.Match != "exact" && f.Match != "contains" {
				return fmt.Errorf("steps[%d].filters[%d]: match must be exact or contains", i, j)
			}
		}
	}
	return nil
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertContainerTotal, AssertContainerChildren:
		if a.Container == "" {
			return fmt.Errorf("assertions[%d]: container is required for %s", index, a.Type)
		}
	case AssertAnnotationDeleted:
		if a.IRI == "" {
			return fmt.Errorf("assertions[%d]: iri is required for annotation_deleted", index)
		}
	case AssertGraphCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for graph_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
