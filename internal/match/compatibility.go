package match

import (
	"mapper-planner/internal/common"
	"mapper-planner/internal/model"
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means the source cannot be used where the target is expected.
	TypeIncompatible TypeCompatibility = iota
	// TypeAssignable means the source can be used where the target is expected.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return common.UnknownStr
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    string
	TargetType    string
}

// ScoreTypeCompatibility determines how a source type fits a target type.
func ScoreTypeCompatibility(source, target *model.Type) TypeCompatibilityResult {
	res := TypeCompatibilityResult{
		SourceType: source.String(),
		TargetType: target.String(),
	}

	switch {
	case source == nil || target == nil:
		res.Compatibility = TypeIncompatible
		res.Reason = "type information unavailable"
	case source.Equal(target):
		res.Compatibility = TypeIdentical
		res.Reason = "types are identical"
	case source.IsAssignableTo(target):
		res.Compatibility = TypeAssignable
		res.Reason = "source is assignable to target"
	default:
		res.Compatibility = TypeIncompatible
		res.Reason = "types are not compatible"
	}

	return res
}

// Signature is the shape of a single source method: one parameter and a result.
type Signature struct {
	Param  *model.Type
	Result *model.Type
}

// Accepts reports whether a method of this signature can map a source value to a
// target: the source must fit the parameter and the result must fit the target.
func (s Signature) Accepts(source, target *model.Type) bool {
	return ScoreTypeCompatibility(source, s.Param).Compatibility >= TypeAssignable &&
		ScoreTypeCompatibility(s.Result, target).Compatibility >= TypeAssignable
}

// Exact reports whether the signature matches source and target exactly.
func (s Signature) Exact(source, target *model.Type) bool {
	return s.Param.Equal(source) && s.Result.Equal(target)
}

// AtLeastAsSpecific reports whether s is usable wherever other is: its parameter
// is assignable to the other parameter and so is its result.
func (s Signature) AtLeastAsSpecific(other Signature) bool {
	return s.Param.IsAssignableTo(other.Param) && s.Result.IsAssignableTo(other.Result)
}

// MostSpecific returns the indexes of the maximally specific signatures: those no
// other signature is strictly more specific than. A single index means a unique
// winner; several indexes mean the signatures are equally specific.
func MostSpecific(signatures []Signature) []int {
	var res []int

	for i, s := range signatures {
		dominated := false

		for j, other := range signatures {
			if i == j {
				continue
			}

			if other.AtLeastAsSpecific(s) && !s.AtLeastAsSpecific(other) {
				dominated = true

				break
			}
		}

		if !dominated {
			res = append(res, i)
		}
	}

	return res
}
