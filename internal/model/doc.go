// Package model provides the immutable descriptors consumed by the planner.
//
// Key types:
//   - Type: a type descriptor (ID + parameterization + shape)
//   - Parameter: a named, typed method argument, optionally the mapping target
//   - Method: a mapping, referenced or factory method with its configuration
//   - Mapping: a single configured target property binding
//
// Values are built once by a front-end and never mutated afterwards; the reverse
// linker derives new Method values with WithReverseConfig instead.
package model
