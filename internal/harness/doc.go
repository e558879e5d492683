// Package harness runs conformance scenarios against the jsondoc core.
//
// A scenario starts from an initial document and applies a list of steps,
// each one a core operation. Every step is recorded in a trace, checked
// against its expectation, and the final trace can be compared with a
// golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	input: '{"items":[]}'        # initial document, default null
//	steps:
//	  - op: set
//	    path: items[0]
//	    value: '{"sku":"A-1"}'
//	  - op: get
//	    path: items[0].sku
//	    expect: '"A-1"'
//	  - op: get
//	    path: items[9]
//	    error: index
//	assertions:
//	  - type: trace_count
//	    op: get
//	    count: 2
//	  - type: final_document
//	    path: items[0].sku
//	    expect: '"A-1"'
//
// # Operations
//
//   - parse: parse input; on success it becomes the current document
//   - serialize: canonical text of the current document
//   - minify: minify input
//   - get: value at path (never modifies the document)
//   - set: store the JSON value at path, creating members as needed
//   - erase: remove the member or element at path
//   - digest: content digest of the current document
//
// For serialize, minify and digest the expect field is compared as text;
// for every other op it is parsed as JSON and compared with Value.Equal.
//
// # Errors
//
// A step with an error field must fail with that error kind: type, key,
// index, range, overflow, parse or io. A failing step never changes the
// current document.
//
// # Golden Files
//
// RunWithGolden serializes the trace and the final document with
// jv.MarshalCanonical and compares them against testdata/golden/{name}.golden.
// Regenerate with:
//
//	go test ./internal/harness -update
package harness
