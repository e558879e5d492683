package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/jsondoc/internal/jv"
)

// Harness is the test execution engine. It holds the current document and
// the logical clock that numbers trace events.
//
// A Harness is not safe for concurrent use.
type Harness struct {
	doc    jv.Value
	seq    int64
	logger *slog.Logger
}

// New creates a harness that logs scenario progress to logger.
// A nil logger discards all output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a harness that discards its logs.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Parse the scenario input into the current document
// 2. Apply each step, recording it in the trace
// 3. Check each step against its expect or error clause
// 4. Evaluate assertions against the trace and final document
//
// Expectation failures are reported in the Result; the returned error is
// reserved for scenarios that cannot run at all.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	h.doc = jv.Null()
	h.seq = 0
	if scenario.Input != "" {
		doc, err := jv.Parse(scenario.Input)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: invalid input: %w", scenario.Name, err)
		}
		h.doc = doc
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.seq++
		out, err := h.apply(step)

		ev := TraceEvent{Seq: h.seq, Op: step.Op, Path: step.Path}
		if err != nil {
			ev.Error = errorKindName(err)
		} else {
			ev.Output = &out
		}
		result.AddTrace(ev)

		if msg := checkStep(step, out, err); msg != "" {
			result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Op, msg))
		}

		h.logger.Debug("step completed",
			"scenario", scenario.Name,
			"step", i,
			"op", step.Op,
			"path", step.Path,
			"error", ev.Error,
		)
	}
	result.Document = h.doc.Clone()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
		"pass", result.Pass,
	)
	return result, nil
}

// apply executes one step against the current document. A failing step
// leaves the document unchanged.
func (h *Harness) apply(step Step) (jv.Value, error) {
	switch step.Op {
	case OpParse:
		v, err := jv.Parse(step.Input)
		if err != nil {
			return jv.Value{}, err
		}
		h.doc = v
		return v.Clone(), nil

	case OpSerialize:
		text, err := jv.Serialize(h.doc, "")
		if err != nil {
			return jv.Value{}, err
		}
		return jv.Str(text), nil

	case OpMinify:
		return jv.Str(jv.Minify(step.Input)), nil

	case OpGet:
		p, err := jv.ParsePath(step.Path)
		if err != nil {
			return jv.Value{}, err
		}
		found, err := h.doc.Find(p)
		if err != nil {
			return jv.Value{}, err
		}
		return found.Clone(), nil

	case OpSet:
		p, err := jv.ParsePath(step.Path)
		if err != nil {
			return jv.Value{}, err
		}
		v, err := jv.Parse(step.Value)
		if err != nil {
			return jv.Value{}, err
		}
		if err := h.doc.Put(p, v); err != nil {
			return jv.Value{}, err
		}
		return h.doc.Clone(), nil

	case OpErase:
		p, err := jv.ParsePath(step.Path)
		if err != nil {
			return jv.Value{}, err
		}
		if err := h.doc.Remove(p); err != nil {
			return jv.Value{}, err
		}
		return h.doc.Clone(), nil

	case OpDigest:
		d, err := jv.Digest(h.doc)
		if err != nil {
			return jv.Value{}, err
		}
		return jv.Str(d), nil
	}
	return jv.Value{}, fmt.Errorf("unknown op %q", step.Op)
}

// checkStep compares a step outcome with its expect or error clause and
// returns a failure message, or "" when the step behaved as expected.
func checkStep(step Step, out jv.Value, err error) string {
	if step.Error != "" {
		if err == nil {
			return fmt.Sprintf("expected %s error, got %s", step.Error, out)
		}
		if !errors.Is(err, lookupErrorKind(step.Error)) {
			return fmt.Sprintf("expected %s error, got %v", step.Error, err)
		}
		return ""
	}
	if err != nil {
		return fmt.Sprintf("unexpected error: %v", err)
	}
	if step.Expect == nil {
		return ""
	}

	switch step.Op {
	case OpSerialize, OpMinify, OpDigest:
		text, _ := out.Text()
		if text != *step.Expect {
			return fmt.Sprintf("expected %q, got %q", *step.Expect, text)
		}
	default:
		want, perr := jv.Parse(*step.Expect)
		if perr != nil {
			return fmt.Sprintf("invalid expect: %v", perr)
		}
		if !out.Equal(want) {
			return fmt.Sprintf("expected %s, got %s", want, out)
		}
	}
	return ""
}

// errorKindName returns the name of the first error kind err matches.
func errorKindName(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "unknown"
}
