// Package plan produces the mapping plan of every method requiring implementation.
//
// Planning pipeline:
//  1. Link reverse methods once, producing a new catalogue
//  2. For each method requiring implementation, in declaration order:
//     - bean mapping: bind every writable result property to a directive or a
//     same-named source property and resolve its strategy
//     - iterable mapping: resolve the element strategy and the result factory
//     - map mapping: resolve the key and value strategies and the result factory
//  3. Collect diagnostics per method; a structural inconsistency aborts only the
//     method it was found in
package plan
