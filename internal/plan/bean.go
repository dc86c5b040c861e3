package plan

import (
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"mapper-planner/internal/diagnostic"
	"mapper-planner/internal/match"
	"mapper-planner/internal/model"
	"mapper-planner/internal/resolve"
)

func (mp *methodPlanner) planBean() (MappingPlan, error) {
	m := mp.method
	result := m.ResultType()
	writable := result.WritableProperties()

	writableNames := make([]string, len(writable))
	for i, p := range writable {
		writableNames[i] = p.Name
	}

	for _, target := range m.ConfiguredTargets() {
		if slices.Contains(writableNames, target) {
			continue
		}

		if m.ConfiguredByReverse {
			// inverted directives may name properties only the reverse side has
			mp.diags.AddInfo(diagnostic.CodeReverseConfiguration,
				"inverted directive for "+target+" dropped, "+result.String()+" has no such property",
				m.Name, target)

			continue
		}

		mp.diags.AddError(diagnostic.CodeUnknownTargetProperty,
			"unknown target property: "+target, m.Name, target, mp.suggest(target, writableNames)...)
	}

	for _, d := range m.DroppedMappings() {
		mp.diags.AddInfo(diagnostic.CodeReverseConfiguration,
			"directive for "+d.Target+" ("+d.Value()+") cannot be inverted, dropped", m.Name, "")
	}

	bean := &BeanMappingMethod{
		Properties: make([]PropertyMapping, 0, len(writable)),
	}

	for _, p := range writable {
		if binding, ok := mp.bindProperty(p); ok {
			bean.Properties = append(bean.Properties, binding)
		}
	}

	bean.Factory = mp.factory(result)

	return bean, nil
}

// bindProperty binds a writable target property. It returns false if the
// property stays unbound, which is then reported.
func (mp *methodPlanner) bindProperty(p model.Property) (PropertyMapping, bool) {
	m := mp.method
	binding := PropertyMapping{Target: p.Name, TargetType: p.Type}

	var format string

	if directives := m.MappingsFor(p.Name); len(directives) > 0 {
		d := directives[0]
		binding.Configured = true
		format = d.Format

		switch {
		case d.Ignore:
			binding.Kind = BindingIgnored

			return binding, true
		case d.IsConstant():
			binding.Kind = BindingConstant
			binding.Constant = *d.Constant

			return binding, true
		case d.IsExpression():
			binding.Kind = BindingExpression
			binding.Expression = d.Expression

			return binding, true
		}

		if !mp.locatePath(&binding, d.SourcePath()) {
			return PropertyMapping{}, false
		}
	} else if !mp.locateByName(&binding) {
		return PropertyMapping{}, false
	}

	strategy, ok := mp.resolve(resolve.Request{
		Source:         binding.SourceType,
		Target:         binding.TargetType,
		ParameterNames: m.ParameterNames(),
		Format:         format,
		TempName:       p.Name,
	}, p.Name)
	binding.Strategy = strategy

	if ok && !strategy.Found() {
		mp.diags.AddError(diagnostic.CodeUnmappedProperty,
			"unmapped property: "+p.Name+": cannot map "+binding.SourceType.String()+" to "+p.Type.String(),
			m.Name, p.Name)
	}

	mp.log.WithFields(logrus.Fields{
		"property": p.Name,
		"source":   binding.SourceReference(),
		"strategy": strategy.String(),
	}).Debug("plan: property bound")

	return binding, true
}

// locateByName finds the same-named readable property among the source
// parameters, falling back to a source parameter with that name.
func (mp *methodPlanner) locateByName(binding *PropertyMapping) bool {
	m := mp.method
	name := binding.Target

	var found []model.Parameter

	for _, param := range m.SourceParameters() {
		if param.Type.ReadableProperty(name) != nil {
			found = append(found, param)
		}
	}

	switch len(found) {
	case 1:
		binding.SourceParameter = found[0].Name
		binding.SourcePath = []string{name}
		binding.SourceType = found[0].Type.ReadableProperty(name).Type

		return true
	case 0:
		if param := m.SourceParameter(name); param != nil {
			binding.SourceParameter = param.Name
			binding.SourceType = param.Type

			return true
		}

		mp.reportUnmapped(name)

		return false
	default:
		names := make([]string, len(found))
		for i, param := range found {
			names[i] = param.Name + "." + name
		}

		mp.diags.AddError(diagnostic.CodeAmbiguousSourceProperty,
			"several source parameters have a property named "+name, m.Name, name, names...)

		return false
	}
}

// locatePath follows a directive source path: "param", "param.prop..." or "prop...".
func (mp *methodPlanner) locatePath(binding *PropertyMapping, path []string) bool {
	m := mp.method
	sources := m.SourceParameters()

	var param *model.Parameter

	switch {
	case len(path) == 0:
		mp.diags.AddError(diagnostic.CodeUnknownSourceProperty, "empty source path", m.Name, binding.Target)

		return false
	case m.SourceParameter(path[0]) != nil:
		param = m.SourceParameter(path[0])
		path = path[1:]
	case len(sources) == 1:
		param = &sources[0]
	default:
		var found []model.Parameter

		for _, p := range sources {
			if p.Type.ReadableProperty(path[0]) != nil {
				found = append(found, p)
			}
		}

		if len(found) != 1 {
			code, msg := diagnostic.CodeUnknownSourceProperty, "unknown source property: "+path[0]
			if len(found) > 1 {
				code, msg = diagnostic.CodeAmbiguousSourceProperty, "several source parameters have a property named "+path[0]
			}

			mp.diags.AddError(code, msg, m.Name, binding.Target, mp.suggest(path[0], m.ParameterNames())...)

			return false
		}

		param = &found[0]
	}

	current := param.Type
	for i, segment := range path {
		prop := current.ReadableProperty(segment)
		if prop == nil {
			var readable []string

			for _, p := range current.Properties {
				if p.Readable {
					readable = append(readable, p.Name)
				}
			}

			mp.diags.AddError(diagnostic.CodeUnknownSourceProperty,
				"unknown source property: "+param.Name+"."+strings.Join(path[:i+1], ".")+" in "+current.String(),
				m.Name, binding.Target, mp.suggest(segment, readable)...)

			return false
		}

		current = prop.Type
	}

	binding.SourceParameter = param.Name
	binding.SourcePath = path
	binding.SourceType = current

	return true
}

func (mp *methodPlanner) reportUnmapped(name string) {
	var known []string

	for _, param := range mp.method.SourceParameters() {
		for _, p := range param.Type.Properties {
			if p.Readable {
				known = append(known, p.Name)
			}
		}
	}

	msg := "unmapped property: " + name
	suggestions := mp.suggest(name, known)

	switch mp.config.UnmappedTargetPolicy {
	case UnmappedTargetIgnore:
	case UnmappedTargetError:
		mp.diags.AddError(diagnostic.CodeUnmappedProperty, msg, mp.method.Name, name, suggestions...)
	default:
		mp.diags.AddWarning(diagnostic.CodeUnmappedProperty, msg, mp.method.Name, name, suggestions...)
	}
}

func (mp *methodPlanner) suggest(name string, candidates []string) []string {
	return match.Suggest(name, candidates, mp.config.MaxSuggestions)
}
