package mapping

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"mapper-planner/internal/common"
)

// StringOrArray is a string slice that can be unmarshaled from either a string
// or an array of strings. This allows YAML fields to accept both "a" and [a, b].
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil
	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// IsSingle returns true if the array has exactly one element.
func (s StringOrArray) IsSingle() bool {
	return common.IsSingle(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// ParamDefArray unmarshals a list of parameters. Each item is either the
// shorthand {name: type} or the explicit {name: ..., type: ..., mapping_target: true}.
type ParamDefArray []ParamDef

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *ParamDefArray) UnmarshalYAML(node *yaml.Node) error {
	var res []ParamDef

	err := decodeNamedList(node, func(item *yaml.Node) error {
		var p ParamDef
		if err := item.Decode(&p); err != nil {
			return err
		}

		res = append(res, p)

		return nil
	}, func(name, typ string) {
		res = append(res, ParamDef{Name: name, Type: typ})
	})
	if err != nil {
		return fmt.Errorf("params: %w", err)
	}

	*a = res

	return nil
}

// PropertyDefArray unmarshals a list of properties. Each item is either the
// shorthand {name: type} or the explicit {name: ..., type: ..., readonly: true}.
type PropertyDefArray []PropertyDef

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *PropertyDefArray) UnmarshalYAML(node *yaml.Node) error {
	var res []PropertyDef

	err := decodeNamedList(node, func(item *yaml.Node) error {
		var p PropertyDef
		if err := item.Decode(&p); err != nil {
			return err
		}

		res = append(res, p)

		return nil
	}, func(name, typ string) {
		res = append(res, PropertyDef{Name: name, Type: typ})
	})
	if err != nil {
		return fmt.Errorf("properties: %w", err)
	}

	*a = res

	return nil
}

// decodeNamedList walks a sequence of {name: type} shorthands and explicit
// objects. An item is explicit when it has both "name" and "type" keys.
func decodeNamedList(node *yaml.Node, explicit func(*yaml.Node) error, shorthand func(name, typ string)) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list", node.Line)
	}

	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: expected {name: type} or {name: ..., type: ...}", item.Line)
		}

		if hasKeys(item, "name", "type") {
			if err := explicit(item); err != nil {
				return err
			}

			continue
		}

		if len(item.Content) != 2 {
			return fmt.Errorf("line %d: invalid definition, expected {name: type} or {name: ..., type: ...}", item.Line)
		}

		key, value := item.Content[0], item.Content[1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: invalid type for %s, expected string", value.Line, key.Value)
		}

		shorthand(key.Value, value.Value)
	}

	return nil
}

func hasKeys(node *yaml.Node, keys ...string) bool {
	found := 0

	for i := 0; i+1 < len(node.Content); i += 2 {
		if slices.Contains(keys, node.Content[i].Value) {
			found++
		}
	}

	return found == len(keys)
}
