package plan

import (
	"fmt"

	"mapper-planner/internal/common"
	"mapper-planner/internal/match"
)

// UnmappedTargetPolicy sets the severity of unmapped target properties.
type UnmappedTargetPolicy int

const (
	// UnmappedTargetWarn reports unmapped target properties as warnings.
	UnmappedTargetWarn UnmappedTargetPolicy = iota
	// UnmappedTargetIgnore does not report unmapped target properties.
	UnmappedTargetIgnore
	// UnmappedTargetError reports unmapped target properties as errors.
	UnmappedTargetError
)

// String returns the policy name.
func (p UnmappedTargetPolicy) String() string {
	switch p {
	case UnmappedTargetWarn:
		return "warn"
	case UnmappedTargetIgnore:
		return "ignore"
	case UnmappedTargetError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// ParseUnmappedTargetPolicy parses a policy name; the empty string means warn.
func ParseUnmappedTargetPolicy(s string) (UnmappedTargetPolicy, error) {
	switch s {
	case "", "warn":
		return UnmappedTargetWarn, nil
	case "ignore":
		return UnmappedTargetIgnore, nil
	case "error":
		return UnmappedTargetError, nil
	default:
		return UnmappedTargetWarn, fmt.Errorf("unknown unmapped target policy %q", s)
	}
}

// Config holds configuration for the planning process.
type Config struct {
	// UnmappedTargetPolicy sets the severity of unmapped target properties.
	UnmappedTargetPolicy UnmappedTargetPolicy
	// Parallelism is the number of methods planned concurrently; 0 and 1 plan sequentially.
	Parallelism int
	// StrictMode fails the run on any error or warning diagnostic.
	StrictMode bool
	// MaxSuggestions is the maximum number of "did you mean" suggestions per diagnostic.
	MaxSuggestions int
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		UnmappedTargetPolicy: UnmappedTargetWarn,
		Parallelism:          1,
		StrictMode:           false,
		MaxSuggestions:       match.DefaultSuggestions,
	}
}
