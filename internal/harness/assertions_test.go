package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondoc/internal/jv"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Op: OpParse},
		{Seq: 2, Op: OpGet, Path: "a"},
		{Seq: 3, Op: OpSet, Path: "b"},
		{Seq: 4, Op: OpGet, Path: "c", Error: "key"},
	}
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpGet, Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpErase, Count: 0}))

	err := assertTraceCount(trace, Assertion{Op: OpSet, Count: 2})
	require.Error(t, err)
	var aerr *AssertionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, AssertTraceCount, aerr.Type)
	assert.Equal(t, "1 occurrences", aerr.Actual)
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpParse, OpGet, OpSet}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpParse, OpSet}}))

	err := assertTraceOrder(trace, Assertion{Ops: []string{OpSet, OpGet}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set (pos 3) should be before get (pos 2)")

	err = assertTraceOrder(trace, Assertion{Ops: []string{OpParse, OpDigest}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing op: digest")
}

func TestAssertFinalDocument(t *testing.T) {
	doc := jv.ObjectOf(jv.O("a", jv.ArrayOf(jv.Uint(1), jv.Str("x"))))

	assert.NoError(t, assertFinalDocument(doc, Assertion{Path: "a[1]", Expect: `"x"`}))
	assert.NoError(t, assertFinalDocument(doc, Assertion{Expect: `{"a":[1,"x"]}`}))

	err := assertFinalDocument(doc, Assertion{Path: "a[0]", Expect: `2`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Actual: 1")

	err = assertFinalDocument(doc, Assertion{Path: "b", Expect: `1`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Assertion failed: final_document")

	err = assertFinalDocument(doc, Assertion{Path: "a", Expect: `[`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid expect")
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "1 occurrences of get",
		Actual:   "2 occurrences",
		Trace:    sampleTrace(),
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: trace_count")
	assert.Contains(t, msg, "Full trace:")
	assert.Contains(t, msg, "[4] get c (key error)")
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Trace = sampleTrace()
	result.Document = jv.ObjectOf(jv.O("b", jv.Bool(true)))

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Op: OpGet, Count: 2},
		{Type: AssertFinalDocument, Path: "b", Expect: "false"},
		{Type: "bogus"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "final_document")
	assert.Contains(t, errs[1], `unknown assertion type "bogus"`)

	assert.Empty(t, EvaluateAssertions(result, nil))
}
