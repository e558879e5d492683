package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/jsondoc/internal/jv"
)

// TraceSnapshot captures the trace and final document of a scenario run.
type TraceSnapshot struct {
	ScenarioName string
	Trace        []TraceEvent
	Document     jv.Value
}

// toValue converts the snapshot to a document so it can be rendered with
// jv.MarshalCanonical.
func (s *TraceSnapshot) toValue() jv.Value {
	trace := make([]jv.Value, len(s.Trace))
	for i, event := range s.Trace {
		ev := jv.ObjectOf(
			jv.O("seq", jv.Int(event.Seq)),
			jv.O("op", jv.Str(event.Op)),
		)
		if event.Path != "" {
			ev.Insert("path", jv.Str(event.Path))
		}
		if event.Output != nil {
			ev.Insert("output", event.Output.Clone())
		}
		if event.Error != "" {
			ev.Insert("error", jv.Str(event.Error))
		}
		trace[i] = ev
	}

	return jv.ObjectOf(
		jv.O("scenario_name", jv.Str(s.ScenarioName)),
		jv.O("trace", jv.Array(trace)),
		jv.O("document", s.Document.Clone()),
	)
}

// marshal renders the snapshot in canonical form.
func (s *TraceSnapshot) marshal() ([]byte, error) {
	return jv.MarshalCanonical(s.toValue())
}

// MarshalSnapshot renders the trace and final document of result in the
// canonical form stored in golden files.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		Document:     result.Document,
	}
	return snapshot.marshal()
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
