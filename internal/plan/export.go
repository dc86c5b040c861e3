package plan

import (
	"gopkg.in/yaml.v3"

	"mapper-planner/internal/diagnostic"
	"mapper-planner/internal/resolve"
)

// Document is the YAML form of a MapperPlan handed to renderers.
type Document struct {
	Imports []string         `yaml:"imports,omitempty"`
	Mappers []MapperDocument `yaml:"mappers,omitempty"`
	Methods []MethodDocument `yaml:"methods"`
	Links   []LinkDocument   `yaml:"links,omitempty"`
}

// MapperDocument describes a used mapper.
type MapperDocument struct {
	Type     string `yaml:"type"`
	Variable string `yaml:"variable"`
}

// LinkDocument describes a configuration adopted from a reverse method.
type LinkDocument struct {
	Method  string `yaml:"method"`
	Reverse string `yaml:"reverse"`
}

// MethodDocument describes the plan of a single method.
type MethodDocument struct {
	Name        string                  `yaml:"name"`
	Signature   string                  `yaml:"signature"`
	Kind        string                  `yaml:"kind"`
	Error       string                  `yaml:"error,omitempty"`
	Properties  []PropertyDocument      `yaml:"properties,omitempty"`
	Element     *StrategyDocument       `yaml:"element,omitempty"`
	Key         *StrategyDocument       `yaml:"key,omitempty"`
	Value       *StrategyDocument       `yaml:"value,omitempty"`
	Factory     string                  `yaml:"factory,omitempty"`
	Variables   map[string]string       `yaml:"variables,omitempty"`
	Diagnostics *diagnostic.Diagnostics `yaml:"diagnostics,omitempty"`
}

// PropertyDocument describes a target property binding.
type PropertyDocument struct {
	Target     string            `yaml:"target"`
	Kind       string            `yaml:"kind"`
	Source     string            `yaml:"source,omitempty"`
	Constant   string            `yaml:"constant,omitempty"`
	Expression string            `yaml:"expression,omitempty"`
	Strategy   *StrategyDocument `yaml:"strategy,omitempty"`
}

// StrategyDocument describes a resolved strategy.
type StrategyDocument struct {
	Kind       string   `yaml:"kind"`
	Method     string   `yaml:"method,omitempty"`
	Reference  string   `yaml:"reference,omitempty"`
	Conversion string   `yaml:"conversion,omitempty"`
	Template   []string `yaml:"template,omitempty"`
	Temp       string   `yaml:"temp,omitempty"`
	CanFail    bool     `yaml:"can_fail,omitempty"`
}

// Export converts a plan into its document form.
func Export(p *MapperPlan) *Document {
	doc := &Document{
		Imports: p.ImportPaths(),
		Methods: make([]MethodDocument, 0, len(p.Methods)),
	}

	for _, l := range p.Links {
		doc.Links = append(doc.Links, LinkDocument{Method: l.Method.Name, Reverse: l.Reverse.Name})
	}

	seen := make(map[string]struct{})

	for _, m := range p.Methods {
		doc.Methods = append(doc.Methods, exportMethod(&m))

		for _, ref := range mapperReferences(&m) {
			if _, ok := seen[ref.Variable]; !ok {
				seen[ref.Variable] = struct{}{}
				doc.Mappers = append(doc.Mappers, ref)
			}
		}
	}

	return doc
}

// ExportYAML renders the document form of a plan.
func ExportYAML(p *MapperPlan) ([]byte, error) {
	return yaml.Marshal(Export(p))
}

func exportMethod(m *MethodPlan) MethodDocument {
	doc := MethodDocument{
		Name:      m.Method.Name,
		Signature: m.Method.String(),
	}

	if !m.Diagnostics.IsEmpty() {
		diags := m.Diagnostics
		doc.Diagnostics = &diags
	}

	if m.Err != nil {
		doc.Kind = "failed"
		doc.Error = m.Err.Error()

		return doc
	}

	switch plan := m.Mapping.(type) {
	case *BeanMappingMethod:
		doc.Kind = "bean"
		doc.Factory = factoryString(plan.Factory)

		for _, p := range plan.Properties {
			pd := PropertyDocument{
				Target:     p.Target,
				Kind:       p.Kind.String(),
				Constant:   p.Constant,
				Expression: p.Expression,
			}

			if p.Kind == BindingSource {
				pd.Source = p.SourceReference()
				pd.Strategy = exportStrategy(p.Strategy)
			}

			doc.Properties = append(doc.Properties, pd)
		}
	case *IterableMappingMethod:
		doc.Kind = "iterable"
		doc.Element = exportStrategy(plan.Element)
		doc.Factory = factoryString(plan.Factory)
		doc.Variables = map[string]string{"loop": plan.LoopVariableName}
	case *MapMappingMethod:
		doc.Kind = "map"
		doc.Key = exportStrategy(plan.Key)
		doc.Value = exportStrategy(plan.Value)
		doc.Factory = factoryString(plan.Factory)
		doc.Variables = map[string]string{
			"key":   plan.KeyVariableName,
			"value": plan.ValueVariableName,
			"entry": plan.EntryVariableName,
		}
	}

	return doc
}

func exportStrategy(s resolve.Strategy) *StrategyDocument {
	doc := &StrategyDocument{Kind: s.Kind.String()}

	switch s.Kind {
	case resolve.StrategyMethod:
		doc.Method = s.Method.String()
		doc.Reference = s.Method.Kind().String()
	case resolve.StrategyConversion:
		doc.Conversion = s.Conversion.String()
		doc.Template = s.Conversion.Template
		doc.Temp = s.TempVariable
		doc.CanFail = s.Conversion.CanFail
	}

	return doc
}

func factoryString(f *Factory) string {
	if f == nil {
		return ""
	}

	return f.String()
}

// mapperReferences returns the used mappers a method plan calls into.
func mapperReferences(m *MethodPlan) []MapperDocument {
	var refs []*resolve.MethodReference

	switch plan := m.Mapping.(type) {
	case *BeanMappingMethod:
		for _, p := range plan.Properties {
			refs = append(refs, p.Strategy.Method)
		}

		if plan.Factory != nil {
			refs = append(refs, plan.Factory.Method)
		}
	case *IterableMappingMethod:
		refs = append(refs, plan.Element.Method)
		if plan.Factory != nil {
			refs = append(refs, plan.Factory.Method)
		}
	case *MapMappingMethod:
		refs = append(refs, plan.Key.Method, plan.Value.Method)
		if plan.Factory != nil {
			refs = append(refs, plan.Factory.Method)
		}
	}

	var res []MapperDocument

	for _, r := range refs {
		if r == nil || r.Mapper == nil {
			continue
		}

		res = append(res, MapperDocument{Type: r.Mapper.MapperType().String(), Variable: r.Mapper.VariableName()})
	}

	return res
}
