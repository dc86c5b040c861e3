package conversion

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"mapper-planner/internal/model"
)

var (
	// ErrDuplicateConversion is returned when an ordered type pair is registered twice.
	ErrDuplicateConversion = errors.New("duplicate conversion")
	// ErrIdentityConversion is returned for a conversion whose source and target are the same type.
	ErrIdentityConversion = errors.New("identity conversion")
)

// TypeConversion is a built-in (or user registered) conversion between two concrete types.
type TypeConversion struct {
	Source   model.TypeID
	Target   model.TypeID
	Category CategoryEnum
	Template []string // Go statements, see Render for the available variables
	Format   string   // Format hint the template was derived with, if any
	CanFail  bool     // True if the statements return an error at runtime
}

// Key returns the ordered pair the conversion is registered for.
func (c *TypeConversion) Key() string {
	return c.Source.String() + " -> " + c.Target.String()
}

// String implements fmt.Stringer.
func (c *TypeConversion) String() string {
	if c.Format != "" {
		return c.Key() + " (" + c.Category.String() + ", format " + strconv.Quote(c.Format) + ")"
	}

	return c.Key() + " (" + c.Category.String() + ")"
}

// ImportTypes returns the packages the statements refer to.
func (c *TypeConversion) ImportTypes() []model.TypeID {
	return imports(c.Template)
}

// WithFormat returns a copy of the conversion qualified by a format hint. Only
// datetime conversions interpret the hint, as a time layout.
func (c *TypeConversion) WithFormat(hint string) *TypeConversion {
	if hint == "" || c.Format == hint {
		return c
	}

	res := *c
	res.Format = hint

	if c.Category == CategoryDatetime {
		res.Template = make([]string, len(c.Template))
		for i, line := range c.Template {
			res.Template[i] = strings.ReplaceAll(line, DefaultTimeLayout, strconv.Quote(hint))
		}
	}

	return &res
}

// Render executes the statement templates. Recognized variables are src, dst,
// srcType, dstType, dstStem and funcName.
func (c *TypeConversion) Render(vars map[string]string) ([]string, error) {
	res := make([]string, 0, len(c.Template))

	for _, line := range c.Template {
		tmpl, err := template.New("line").Option("missingkey=error").Parse(line)
		if err != nil {
			return nil, fmt.Errorf("parse conversion template %s: %w", c.Key(), err)
		}

		var buf bytes.Buffer
		if err = tmpl.Execute(&buf, vars); err != nil {
			return nil, fmt.Errorf("render conversion template %s: %w", c.Key(), err)
		}

		res = append(res, buf.String())
	}

	return res, nil
}

type pairKey struct {
	source, target model.TypeID
}

// Registry is an immutable set of conversions keyed by ordered type pairs.
type Registry struct {
	categories  CategoryEnum
	conversions map[pairKey]*TypeConversion
}

// NewRegistry builds the built-in conversions of the selected categories and
// registers extra ones on top. Any pair registered twice is an error.
func NewRegistry(categories CategoryEnum, extra ...*TypeConversion) (*Registry, error) {
	r := &Registry{
		categories:  categories,
		conversions: make(map[pairKey]*TypeConversion),
	}

	var errs []error

	for _, category := range categories.Singles() {
		if category == CategoryEnumString {
			// enum types are user declared, their conversions are built on lookup
			continue
		}

		for pair := range conversionPairs[category] {
			source, _ := pair.From.TypeID()
			target, _ := pair.To.TypeID()

			if source == target {
				continue
			}

			lines := templates[pair]
			if err := r.add(&TypeConversion{
				Source:   source,
				Target:   target,
				Category: category,
				Template: lines,
				CanFail:  canFail(lines),
			}); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, c := range extra {
		if c.Source == c.Target {
			errs = append(errs, fmt.Errorf("%w: %s", ErrIdentityConversion, c.Key()))
			continue
		}

		if err := r.add(c); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(categories CategoryEnum, extra ...*TypeConversion) *Registry {
	r, err := NewRegistry(categories, extra...)
	if err != nil {
		panic(err)
	}

	return r
}

func (r *Registry) add(c *TypeConversion) error {
	key := pairKey{c.Source, c.Target}
	if existing, ok := r.conversions[key]; ok {
		return fmt.Errorf("%w: %s registered by %s and %s",
			ErrDuplicateConversion, c.Key(), existing.Category, c.Category)
	}

	r.conversions[key] = c

	return nil
}

// Categories returns the built-in categories the registry was built with.
func (r *Registry) Categories() CategoryEnum {
	return r.categories
}

// Find returns the conversion from source to target. Generic types and identical
// types never match.
func (r *Registry) Find(source, target *model.Type) (*TypeConversion, bool) {
	if source == nil || target == nil {
		return nil, false
	}

	if source.IsGeneric() || target.IsGeneric() || source.Equal(target) {
		return nil, false
	}

	if !source.IsNamed() || !target.IsNamed() {
		return nil, false
	}

	if c, ok := r.conversions[pairKey{source.ID, target.ID}]; ok {
		return c, true
	}

	if r.categories&CategoryEnumString == 0 {
		return nil, false
	}

	pair := ConversionPair{KindOf(source), KindOf(target)}
	if _, ok := conversionPairs[CategoryEnumString][pair]; !ok {
		return nil, false
	}

	lines, fails := enumTemplate(source, target)

	return &TypeConversion{
		Source:   source.ID,
		Target:   target.ID,
		Category: CategoryEnumString,
		Template: lines,
		CanFail:  fails,
	}, true
}

// Conversions lists the registered conversions sorted by key. Enum conversions
// are not listed since they depend on user declared types.
func (r *Registry) Conversions() []*TypeConversion {
	return slices.SortedFunc(maps.Values(r.conversions), func(a, b *TypeConversion) int {
		return strings.Compare(a.Key(), b.Key())
	})
}

// Len returns the number of registered conversions.
func (r *Registry) Len() int {
	return len(r.conversions)
}
