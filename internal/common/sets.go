package common

import (
	"cmp"
	"slices"
)

// AsSet builds a set from the given elements.
func AsSet[T comparable](elements ...T) map[T]struct{} {
	set := make(map[T]struct{}, len(elements))
	for _, e := range elements {
		set[e] = struct{}{}
	}

	return set
}

// AddAll adds elements to set and returns it. A nil set is allocated.
func AddAll[T comparable](set map[T]struct{}, elements ...T) map[T]struct{} {
	if set == nil {
		set = make(map[T]struct{}, len(elements))
	}

	for _, e := range elements {
		set[e] = struct{}{}
	}

	return set
}

// SortedKeys returns the set elements in ascending order.
func SortedKeys[T cmp.Ordered](set map[T]struct{}) []T {
	res := make([]T, 0, len(set))
	for e := range set {
		res = append(res, e)
	}

	slices.Sort(res)

	return res
}

// SortedFunc returns the set elements ordered by cmpFn.
func SortedFunc[T comparable](set map[T]struct{}, cmpFn func(a, b T) int) []T {
	res := make([]T, 0, len(set))
	for e := range set {
		res = append(res, e)
	}

	slices.SortFunc(res, cmpFn)

	return res
}
