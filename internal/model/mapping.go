package model

import (
	"slices"
	"strings"

	"mapper-planner/internal/common"
)

// Mapping is one configured binding of a target property.
type Mapping struct {
	// Target is the target property name.
	Target string
	// Source is a dotted path: "param", "param.prop.prop" or "prop.prop".
	Source string
	// Constant is passed through verbatim to the renderer.
	Constant *string
	// Expression is passed through verbatim to the renderer.
	Expression string
	// Format is an explicit conversion hint, e.g. a date layout.
	Format string
	// Ignore leaves the target property untouched.
	Ignore bool
}

// IsConstant returns true for constant valued directives.
func (m Mapping) IsConstant() bool {
	return m.Constant != nil
}

// IsExpression returns true for expression valued directives.
func (m Mapping) IsExpression() bool {
	return m.Expression != ""
}

// Value describes what the directive binds, e.g. "source s.name" or "constant".
func (m Mapping) Value() string {
	switch {
	case m.Ignore:
		return "ignore"
	case m.IsConstant():
		return "constant"
	case m.IsExpression():
		return "expression"
	case m.Source != "":
		return "source " + m.Source
	default:
		return "no value"
	}
}

// SourcePath splits Source into its segments.
func (m Mapping) SourcePath() []string {
	if m.Source == "" {
		return nil
	}

	return strings.Split(m.Source, ".")
}

// Reverse returns the directive for the inverse mapping direction.
// Only plain source path directives whose path names a single property (optionally
// qualified by one of paramNames) can be reversed; a path naming a whole
// parameter cannot.
func (m Mapping) Reverse(paramNames []string) (Mapping, bool) {
	if m.Ignore || m.IsConstant() || m.IsExpression() || m.Source == "" {
		return Mapping{}, false
	}

	path := m.SourcePath()
	if slices.Contains(paramNames, path[0]) {
		path = path[1:]
	}

	if len(path) != 1 {
		return Mapping{}, false
	}

	return Mapping{
		Target: path[0],
		Source: m.Target,
		Format: m.Format,
	}, true
}

// ConfigKind tags the variant of a Configuration.
type ConfigKind int

const (
	ConfigNone ConfigKind = iota
	ConfigBean
	ConfigIterable
	ConfigMap
)

// String returns a human-readable configuration kind.
func (k ConfigKind) String() string {
	switch k {
	case ConfigNone:
		return "none"
	case ConfigBean:
		return "bean"
	case ConfigIterable:
		return "iterable"
	case ConfigMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

// Configuration is the explicit configuration of a mapping method.
// It is one of *BeanMapping, *IterableMapping or *MapMapping; nil means unconfigured.
type Configuration interface {
	configKind() ConfigKind
}

// BeanMapping configures property bindings, keyed by target property name.
type BeanMapping struct {
	Mappings map[string][]Mapping
	// SourceParameters are the source parameter names of the method that authored the
	// configuration; they qualify source paths when the configuration is reversed.
	SourceParameters []string
}

func (*BeanMapping) configKind() ConfigKind { return ConfigBean }

// Targets returns the configured target property names in ascending order.
func (b *BeanMapping) Targets() []string {
	res := make([]string, 0, len(b.Mappings))
	for target := range b.Mappings {
		res = append(res, target)
	}

	slices.Sort(res)

	return res
}

// IterableMapping configures an iterable mapping method.
type IterableMapping struct {
	ElementFormat string
}

func (*IterableMapping) configKind() ConfigKind { return ConfigIterable }

// MapMapping configures a map mapping method.
type MapMapping struct {
	KeyFormat   string
	ValueFormat string
}

func (*MapMapping) configKind() ConfigKind { return ConfigMap }

// KindOf returns the tag of cfg; typed nil pointers count as unconfigured.
func KindOf(cfg Configuration) ConfigKind {
	switch c := cfg.(type) {
	case *BeanMapping:
		if c != nil {
			return ConfigBean
		}
	case *IterableMapping:
		if c != nil {
			return ConfigIterable
		}
	case *MapMapping:
		if c != nil {
			return ConfigMap
		}
	}

	return ConfigNone
}

// IsConfigured returns true if cfg carries explicit configuration.
// A bean configuration without any mapping counts as unconfigured.
func IsConfigured(cfg Configuration) bool {
	switch KindOf(cfg) {
	case ConfigBean:
		return len(cfg.(*BeanMapping).Mappings) > 0
	case ConfigIterable, ConfigMap:
		return true
	default:
		return false
	}
}
