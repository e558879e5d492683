package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jsondoc/internal/jv"
)

// Scenario defines a conformance test scenario: an initial document and
// the steps applied to it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the JSON text of the initial document. Empty means null.
	Input string `yaml:"input,omitempty"`

	// Steps are applied in order to the current document.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and document.
	// Supported types: trace_count, trace_order, final_document
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operation applied to the current document.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Input is JSON text for parse and minify.
	Input string `yaml:"input,omitempty"`

	// Path addresses a value for get, set and erase (see jv.ParsePath).
	Path string `yaml:"path,omitempty"`

	// Value is the JSON text stored by set.
	Value string `yaml:"value,omitempty"`

	// Expect is the expected output. Nil skips the comparison.
	Expect *string `yaml:"expect,omitempty"`

	// Error is the expected error kind. Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the trace or the final document.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_count": Op was executed exactly Count times
	// - "trace_order": Ops were first executed in this order
	// - "final_document": the value at Path in the final document equals Expect
	Type string `yaml:"type"`

	// Op is the step op (used by trace_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`

	// Ops is the expected op order (used by trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Path addresses the checked value (used by final_document).
	Path string `yaml:"path,omitempty"`

	// Expect is the expected JSON value (used by final_document).
	Expect string `yaml:"expect,omitempty"`
}

// Step op constants.
const (
	OpParse     = "parse"
	OpSerialize = "serialize"
	OpMinify    = "minify"
	OpGet       = "get"
	OpSet       = "set"
	OpErase     = "erase"
	OpDigest    = "digest"
)

var knownOps = []string{OpParse, OpSerialize, OpMinify, OpGet, OpSet, OpErase, OpDigest}

// Assertion type constants.
const (
	AssertTraceCount    = "trace_count"
	AssertTraceOrder    = "trace_order"
	AssertFinalDocument = "final_document"
)

// errorKinds maps the names accepted in a step's error field to the jv
// sentinels, in the order used to name an observed error.
var errorKinds = []struct {
	name string
	err  error
}{
	{"type", jv.ErrType},
	{"key", jv.ErrKey},
	{"index", jv.ErrIndex},
	{"range", jv.ErrRange},
	{"parse", jv.ErrParse},
	{"overflow", jv.ErrOverflow},
	{"io", jv.ErrIO},
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
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

// LoadScenarios loads every *.yaml and *.yml file in dir, ordered by file
// name. It stops at the first file that fails to load.
func LoadScenarios(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
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
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, s *Step) error {
	if s.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}
	if !slices.Contains(knownOps, s.Op) {
		return fmt.Errorf("steps[%d]: unknown op %q", index, s.Op)
	}

	switch s.Op {
	case OpParse, OpMinify:
		if s.Input == "" {
			return fmt.Errorf("steps[%d]: input is required for %s", index, s.Op)
		}
	case OpSet:
		if s.Value == "" {
			return fmt.Errorf("steps[%d]: value is required for set", index)
		}
	}

	if s.Error != "" && lookupErrorKind(s.Error) == nil {
		return fmt.Errorf("steps[%d]: unknown error kind %q", index, s.Error)
	}
	if s.Error != "" && s.Expect != nil {
		return fmt.Errorf("steps[%d]: expect and error are mutually exclusive", index)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertFinalDocument:
		if a.Expect == "" {
			return fmt.Errorf("assertions[%d]: expect is required for final_document", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func lookupErrorKind(name string) error {
	for _, k := range errorKinds {
		if k.name == name {
			return k.err
		}
	}
	return nil
}
