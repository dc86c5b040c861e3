package resolve

import (
	"github.com/sirupsen/logrus"

	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/common"
	"mapper-planner/internal/conversion"
	"mapper-planner/internal/logging"
	"mapper-planner/internal/match"
	"mapper-planner/internal/model"
)

// DefaultTempVariable is the stem of temporary variables.
const DefaultTempVariable = "tmp"

// Request describes a required mapping.
type Request struct {
	Source *model.Type
	Target *model.Type
	// ParameterNames are the parameters of the method being planned; generated
	// local variables must not collide with them.
	ParameterNames []string
	// Format is an explicit conversion hint.
	Format string
	// TempName is the preferred stem of the temporary variable, DefaultTempVariable if empty.
	TempName string
}

// Resolver resolves requests against a frozen catalogue and conversion registry.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	catalogue *catalogue.Catalogue
	registry  *conversion.Registry
	log       logrus.FieldLogger
}

// New creates a Resolver. A nil registry disables conversions, a nil log is silent.
func New(c *catalogue.Catalogue, registry *conversion.Registry, log logrus.FieldLogger) *Resolver {
	return &Resolver{
		catalogue: c,
		registry:  registry,
		log:       logging.OrDiscard(log),
	}
}

// Resolve returns the strategy for req. Absence of a strategy is not an error;
// several equally specific methods are reported as *AmbiguityError.
func (r *Resolver) Resolve(req Request) (Strategy, error) {
	log := r.log.WithFields(logrus.Fields{
		"source": req.Source.String(),
		"target": req.Target.String(),
	})

	if req.Source == nil || req.Target == nil {
		log.Debug("resolve: missing type")

		return Strategy{Kind: StrategyNotFound, Reason: "type information unavailable"}, nil
	}

	// 1. identity
	if req.Source.Equal(req.Target) {
		log.Debug("resolve: identity")

		return Strategy{Kind: StrategyIdentity, Reason: match.VerdictIdentical}, nil
	}

	// 2. exact methods
	if exact := r.catalogue.Exact(req.Source, req.Target); len(exact) > 0 {
		if len(exact) > 1 {
			return Strategy{}, ambiguity(req, exact)
		}

		log.WithField("method", exact[0].Method.Name).Debug("resolve: exact method")

		return Strategy{
			Kind:   StrategyMethod,
			Method: NewMethodReference(exact[0]),
			Reason: "exact method",
		}, nil
	}

	// 3. assignable methods
	var (
		applicable []catalogue.Entry
		signatures []match.Signature
	)

	for _, e := range r.catalogue.Candidates() {
		sig := match.Signature{Param: e.Method.Parameters[0].Type, Result: e.Method.ReturnType}
		if sig.Accepts(req.Source, req.Target) {
			applicable = append(applicable, e)
			signatures = append(signatures, sig)
		}
	}

	if len(applicable) > 0 {
		best := match.MostSpecific(signatures)
		if len(best) > 1 {
			winners := make([]catalogue.Entry, len(best))
			for i, idx := range best {
				winners[i] = applicable[idx]
			}

			return Strategy{}, ambiguity(req, winners)
		}

		e := applicable[best[0]]
		log.WithField("method", e.Method.Name).Debug("resolve: assignable method")

		return Strategy{
			Kind:   StrategyMethod,
			Method: NewMethodReference(e),
			Reason: "assignable method",
		}, nil
	}

	// 4. direct assignment
	if req.Source.IsAssignableTo(req.Target) {
		log.Debug("resolve: assignable")

		return Strategy{Kind: StrategyAssign, Reason: match.VerdictAssignable}, nil
	}

	// 5. conversions
	if r.registry != nil {
		if c, ok := r.registry.Find(req.Source, req.Target); ok {
			c = c.WithFormat(req.Format)

			stem := req.TempName
			if stem == "" {
				stem = DefaultTempVariable
			}

			log.WithField("category", c.Category.String()).Debug("resolve: conversion")

			return Strategy{
				Kind:         StrategyConversion,
				Conversion:   c,
				TempVariable: common.SafeVariableName(stem, req.ParameterNames),
				Reason:       "built-in conversion",
			}, nil
		}
	}

	// 6. not found
	log.Debug("resolve: not found")

	return Strategy{Kind: StrategyNotFound, Reason: match.VerdictIncompatible}, nil
}

func ambiguity(req Request, entries []catalogue.Entry) *AmbiguityError {
	err := &AmbiguityError{Source: req.Source, Target: req.Target}
	for _, e := range entries {
		err.Candidates = append(err.Candidates, NewMethodReference(e))
	}

	return err
}
