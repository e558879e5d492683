// Package transcode moves documents between jv.Value and the other data
// formats the jsondoc tool accepts.
//
// Supported directions:
//
//	JSON  <-> jv.Value   (jv.ParseBytes / canonical serialization)
//	YAML  <-> jv.Value   (gopkg.in/yaml.v3 node trees)
//	CBOR  <-> jv.Value   (github.com/fxamacker/cbor/v2, core deterministic)
//	CUE    -> jv.Value   (cuelang.org/go, concrete values only)
//
// Every decoder follows the JSON numeral rules of package jv: integral
// numbers become UInteger when non-negative and Integer when negative, and
// everything else becomes Floating. Object members are keyed by string;
// sources with other key types are rejected with jv.ErrType.
//
// Malformed input is reported with an error matching jv.ErrParse.
package transcode
