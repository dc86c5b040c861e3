package plan

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/conversion"
	"mapper-planner/internal/diagnostic"
	"mapper-planner/internal/logging"
	"mapper-planner/internal/model"
	"mapper-planner/internal/resolve"
	"mapper-planner/internal/reverse"
)

// Planner plans every method requiring implementation of a catalogue.
type Planner struct {
	catalogue *catalogue.Catalogue
	registry  *conversion.Registry
	config    Config
	log       logrus.FieldLogger
}

// NewPlanner creates a new Planner. A nil log is silent.
func NewPlanner(c *catalogue.Catalogue, registry *conversion.Registry, config Config, log logrus.FieldLogger) *Planner {
	return &Planner{
		catalogue: c,
		registry:  registry,
		config:    config,
		log:       logging.OrDiscard(log),
	}
}

// Plan links reverse methods and plans every method requiring implementation.
// Every method is attempted; problems are reported as diagnostics of the method
// they concern. The error is only set in strict mode, when any error or warning
// diagnostic was reported.
func (p *Planner) Plan() (*MapperPlan, error) {
	linked, links := reverse.Apply(p.catalogue, p.log)
	resolver := resolve.New(linked, p.registry, p.log)

	inherited := make(map[*model.Method]*model.Method, len(links))
	for _, l := range links {
		inherited[l.Linked] = l.Reverse
	}

	methods := linked.Methods()
	results := make([]MethodPlan, len(methods))

	planOne := func(i int) {
		mp := &methodPlanner{
			Planner:  p,
			resolver: resolver,
			linked:   linked,
			method:   methods[i],
			log:      p.log.WithField("method", methods[i].Name),
		}

		if rev, ok := inherited[methods[i]]; ok {
			mp.diags.AddInfo(diagnostic.CodeReverseConfiguration,
				"configuration adopted from reverse method "+rev.Name, methods[i].Name, "")
		}

		results[i] = mp.plan()
	}

	if p.config.Parallelism > 1 {
		var g errgroup.Group

		g.SetLimit(p.config.Parallelism)

		for i := range methods {
			g.Go(func() error {
				planOne(i)

				return nil
			})
		}

		_ = g.Wait() // planOne never fails, errors are diagnostics
	} else {
		for i := range methods {
			planOne(i)
		}
	}

	res := &MapperPlan{
		Methods:       results,
		Links:         links,
		MapperImports: linked.ImportTypes(),
	}

	for _, m := range results {
		res.Diagnostics.Merge(m.Diagnostics)
	}

	p.log.WithFields(logrus.Fields{
		"methods":  len(results),
		"links":    len(links),
		"errors":   len(res.Diagnostics.Errors),
		"warnings": len(res.Diagnostics.Warnings),
	}).Debug("plan: done")

	if p.config.StrictMode && (res.Diagnostics.HasErrors() || res.Diagnostics.HasWarnings()) {
		return res, fmt.Errorf("strict mode: planning reported %d errors and %d warnings",
			len(res.Diagnostics.Errors), len(res.Diagnostics.Warnings))
	}

	return res, nil
}

// methodPlanner holds the state of planning one method. It is never shared
// between goroutines.
type methodPlanner struct {
	*Planner

	resolver *resolve.Resolver
	linked   *catalogue.Catalogue
	method   *model.Method
	log      logrus.FieldLogger
	diags    diagnostic.Diagnostics
}

func (mp *methodPlanner) plan() MethodPlan {
	res := MethodPlan{Method: mp.method}

	mapping, err := mp.dispatch()
	if err != nil {
		mp.diags.AddError(diagnostic.CodeStructuralInconsistency, err.Error(), mp.method.Name, "")
		mp.log.WithError(err).Debug("plan: structural inconsistency")

		res.Err = err
	} else {
		res.Mapping = mapping
	}

	res.Diagnostics = mp.diags

	return res
}

func (mp *methodPlanner) dispatch() (MappingPlan, error) {
	m := mp.method

	result := m.ResultType()
	if result == nil {
		return nil, mp.structural("method has neither a result nor a mapping target parameter")
	}

	if tp := m.TargetParameter(); tp != nil && m.ReturnType != nil && !tp.Type.IsAssignableTo(m.ReturnType) {
		return nil, mp.structural("mapping target parameter type %s does not match return type %s",
			tp.Type, m.ReturnType)
	}

	sources := m.SourceParameters()
	if len(sources) == 0 {
		return nil, mp.structural("method has no source parameter")
	}

	if len(sources) > 1 && (result.IsIterableType() || result.IsMapType()) {
		return nil, mp.structural("container mapping methods need exactly one source parameter, got %d", len(sources))
	}

	if len(sources) == 1 {
		source := sources[0].Type
		if source.IsIterableType() != result.IsIterableType() || source.IsMapType() != result.IsMapType() {
			return nil, mp.structural("cannot map %s to %s: container shapes differ", source, result)
		}
	}

	kind := model.KindOf(m.Config)

	switch {
	case m.IsIterableMapping():
		if kind == model.ConfigBean || kind == model.ConfigMap {
			return nil, mp.structural("%s configuration on an iterable mapping method", kind)
		}

		return mp.planIterable()
	case m.IsMapMapping():
		if kind == model.ConfigBean || kind == model.ConfigIterable {
			return nil, mp.structural("%s configuration on a map mapping method", kind)
		}

		return mp.planMap()
	default:
		if kind == model.ConfigIterable || kind == model.ConfigMap {
			return nil, mp.structural("%s configuration on a bean mapping method", kind)
		}

		return mp.planBean()
	}
}

func (mp *methodPlanner) structural(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrStructural, mp.method.Name, fmt.Sprintf(format, args...))
}

// resolve resolves req and reports ambiguities; the returned strategy is
// StrategyNotFound when the candidates were ambiguous.
func (mp *methodPlanner) resolve(req resolve.Request, property string) (resolve.Strategy, bool) {
	s, err := mp.resolver.Resolve(req)
	if err != nil {
		mp.diags.AddError(diagnostic.CodeAmbiguousResolution, err.Error(), mp.method.Name, property)

		return resolve.Strategy{Kind: resolve.StrategyNotFound, Reason: "ambiguous"}, false
	}

	return s, true
}

// factory selects how the result instance of the method is constructed.
func (mp *methodPlanner) factory(result *model.Type) *Factory {
	if mp.method.TargetParameter() != nil {
		return nil
	}

	if result.IsConstructible() {
		return &Factory{Kind: FactoryConstructor, Type: result}
	}

	if impl := result.Implementation; impl != nil && impl.IsConstructible() {
		mp.log.WithField("implementation", impl.String()).Debug("plan: implementation type constructed")

		return &Factory{Kind: FactoryConstructor, Type: impl}
	}

	switch factories := mp.linked.Factories(result); len(factories) {
	case 0:
		mp.diags.AddError(diagnostic.CodeMissingFactory,
			"no constructor or factory method for "+result.String(), mp.method.Name, "")

		return nil
	case 1:
		return &Factory{Kind: FactoryMethod, Type: result, Method: resolve.NewMethodReference(factories[0])}
	default:
		names := make([]string, len(factories))
		for i, f := range factories {
			names[i] = resolve.NewMethodReference(f).String()
		}

		mp.diags.AddError(diagnostic.CodeAmbiguousResolution,
			"ambiguous factory methods for "+result.String(), mp.method.Name, "", names...)

		return nil
	}
}
