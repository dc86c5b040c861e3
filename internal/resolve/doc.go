// Package resolve picks the strategy mapping a required source type to a required
// target type. Tiers are tried in a fixed order and the first match wins:
//
//  1. identity, the types are equal and nothing needs to be done
//  2. a catalogue method mapping exactly source to target
//  3. the most specific catalogue method accepting source and producing a target
//  4. assignment, source is assignable to target (a supertype or any)
//  5. a built-in conversion from the registry
//  6. not found
//
// Several equally specific methods in tier 2 or 3 are an *AmbiguityError.
package resolve
