package model

import (
	"fmt"

	"mapper-planner/internal/common"
)

// Accessibility of a method as declared by the front-end.
type Accessibility int

const (
	AccessibilityPublic Accessibility = iota
	AccessibilityProtected
	AccessibilityPackage
	AccessibilityPrivate
)

// String returns the accessibility keyword.
func (a Accessibility) String() string {
	switch a {
	case AccessibilityPublic:
		return "public"
	case AccessibilityProtected:
		return "protected"
	case AccessibilityPackage:
		return "package"
	case AccessibilityPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// ParseAccessibility parses an accessibility keyword; the empty string means public.
func ParseAccessibility(s string) (Accessibility, error) {
	if s == "" {
		return AccessibilityPublic, nil
	}

	for a := AccessibilityPublic; a <= AccessibilityPrivate; a++ {
		if a.String() == s {
			return a, nil
		}
	}

	return AccessibilityPublic, fmt.Errorf("unknown accessibility %q", s)
}
