package common

import (
	"go/token"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// SafeVariableName returns name, or name with the smallest numeric suffix (starting at 1),
// so that the result collides neither with existing names nor with a Go keyword.
func SafeVariableName(name string, existing []string) string {
	taken := func(candidate string) bool {
		return token.IsKeyword(candidate) || slices.Contains(existing, candidate)
	}

	if !taken(name) {
		return name
	}

	for i := 1; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// LowerFirst lower-cases the first rune of s, e.g. "CarMapper" -> "carMapper".
func LowerFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

// Join renders each element with its String method and joins them with sep.
func Join[T interface{ String() string }](elements []T, sep string) string {
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = e.String()
	}

	return strings.Join(parts, sep)
}
