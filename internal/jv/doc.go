// Package jv is the JSON document model used by every other jsondoc package.
//
// A Value holds exactly one JSON alternative selected by its Kind: Null,
// Boolean, Integer (int64), UInteger (uint64), Floating (float64), String,
// Array or Object. Containers own their payloads. Clone deep-copies, Take moves
// (the source becomes Null) and Assign is copy-then-commit.
//
// This package imports nothing internal, so it stays the foundational layer.
//
// Key design constraints:
//   - Object members iterate in ascending byte-wise key order, never insertion order.
//   - Plain Go assignment of a Value aliases its container payload; use Clone.
//   - No implicit coercion between kinds. Mismatches return ErrType.
//   - Numeric extraction is range-checked (ErrOverflow), never wraps.
//   - Cursors and element pointers into an Array are invalidated by any
//     insertion or removal on that Array; Object cursors likewise. This is a
//     caller precondition and is not checked at runtime.
//   - Values are not safe for concurrent mutation; the package starts no goroutines.
package jv
