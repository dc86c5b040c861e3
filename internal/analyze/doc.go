// Package analyze loads Go packages and converts their declarations into the
// model types mapping methods are declared over.
//
// It uses golang.org/x/tools/go/packages with go/types:
//   - structs become beans with their exported fields as properties
//   - slices and arrays become iterables, maps become maps
//   - interfaces become abstract interface types, implemented interfaces of the
//     loaded packages become supertypes
//   - named basic types with exported constants become enums
//
// Pointers are transparent: *T is described as T.
package analyze
