// Package catalogue holds the methods known to a planning run: the methods of the
// mapper being implemented, the methods of used mappers reachable through mapper
// references, and factory methods. A Catalogue is immutable once built.
package catalogue
