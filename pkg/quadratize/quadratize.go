package quadratize

import (
	"fmt"

	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/bqm"
	"github.com/rmohr/quadratize/pkg/cqm"
	"github.com/rmohr/quadratize/pkg/gadget"
	"github.com/rmohr/quadratize/pkg/poly"
	"github.com/rmohr/quadratize/pkg/reducer"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Reduction names the variables which were introduced for a pair of variables.
type Reduction struct {
	Product   api.Variable `json:"product"`
	Auxiliary api.Variable `json:"auxiliary,omitempty"`
}

// Reductions maps every reduced pair to the variables introduced for it.
type Reductions map[api.Pair]Reduction

// Pairs returns the reduced pairs in natural order.
func (r Reductions) Pairs() []api.Pair {
	pairs := make([]api.Pair, 0, len(r))
	for p := range r {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, api.ComparePairs)
	return pairs
}

// Constraints returns the product constraints of the reductions.
func (r Reductions) Constraints() []api.Constraint {
	var constraints []api.Constraint
	for _, p := range r.Pairs() {
		constraints = append(constraints, api.Constraint{Pair: p, Product: r[p].Product})
	}
	return constraints
}

// MakeQuadratic reduces the polynomial to a binary quadratic model. Every
// product variable is tied to its pair by a gadget scaled by strength. If the
// strength is too small compared to the biases of the polynomial, the ground
// states of the returned model can violate the product relations.
//
// The vartype can be left empty if a target model is given. The target is then
// extended in place. If a vartype is given, the target is copied and converted
// first. The polynomial has to carry the same vartype or none at all.
func MakeQuadratic(p *poly.BinaryPolynomial, strength float64, vartype api.Vartype, target *bqm.Model) (*bqm.Model, Reductions, error) {
	m, vartype, err := initQuadraticModel(target, vartype)
	if err != nil {
		return nil, nil, err
	}
	p, err = initPolynomial(p, vartype)
	if err != nil {
		return nil, nil, err
	}
	if strength <= 0 {
		logrus.Warnf("Strength %v is not positive, the product constraints will not be enforced.", strength)
	}

	registry := reducer.NewRegistry(p.Variables()...)
	for _, v := range m.Variables() {
		registry.Add(v)
	}
	terms, constraints := reducer.NewReducer(registry).Reduce(p.Items())

	reductions := Reductions{}
	for _, c := range constraints {
		u, v := c.Pair[0], c.Pair[1]
		reduction := Reduction{Product: c.Product}
		if gadget.NeedsAuxiliary(vartype) {
			reduction.Auxiliary = registry.NewAuxiliary(u, v)
		}
		constraint, err := gadget.Product(vartype, u, v, c.Product, reduction.Auxiliary)
		if err != nil {
			return nil, nil, err
		}
		constraint.Scale(strength)
		if err := m.AddModel(constraint); err != nil {
			return nil, nil, err
		}
		reductions[c.Pair] = reduction
	}

	if err := addObjective(m, terms); err != nil {
		return nil, nil, err
	}
	logrus.Debugf("Built a %s model with %d variables and %d interactions from %d reductions.", vartype, m.NumVariables(), m.NumInteractions(), len(reductions))
	return m, reductions, nil
}

// MakeQuadraticCQM reduces the polynomial to a constrained quadratic model.
// Every product variable p of a pair u, v is tied to it by the constraint
// u*v - p == 0, and the reduced terms are added to the objective of the
// target. The vartype can be left empty if the polynomial carries one.
func MakeQuadraticCQM(p *poly.BinaryPolynomial, vartype api.Vartype, target *cqm.Model) (*cqm.Model, error) {
	if vartype == api.Undefined {
		vartype = p.Vartype
	}
	if vartype == api.Undefined {
		return nil, api.ErrVartypeInference
	}
	if err := vartype.Validate(); err != nil {
		return nil, err
	}
	p, err := initPolynomial(p, vartype)
	if err != nil {
		return nil, err
	}
	if target == nil {
		target = cqm.New()
	}
	for _, v := range p.Variables() {
		if existing, exists := target.Vartype(v); exists && existing != vartype {
			return nil, fmt.Errorf("%w: variable %s is %s in the target model", api.ErrVartypeMismatch, v, existing)
		}
	}
	objective := bqm.New(vartype)
	if previous := target.Objective(); previous != nil {
		if err := objective.AddModel(previous); err != nil {
			return nil, fmt.Errorf("objective of the target model: %w", err)
		}
	}

	registry := reducer.NewRegistry(p.Variables()...)
	for _, v := range target.Variables() {
		registry.Add(v)
	}
	terms, constraints := reducer.NewReducer(registry).Reduce(p.Items())

	for _, c := range constraints {
		u, v := c.Pair[0], c.Pair[1]
		lhs := bqm.New(vartype)
		lhs.AddInteraction(u, v, 1)
		lhs.AddVariable(c.Product, -1)
		label := fmt.Sprintf("%s*%s == %s", u, v, c.Product)
		for target.HasLabel(label) {
			label = "_" + label
		}
		if _, err := target.AddConstraint(lhs, cqm.Eq, 0, label); err != nil {
			return nil, err
		}
	}

	if err := addObjective(objective, terms); err != nil {
		return nil, err
	}
	if err := target.SetObjective(objective); err != nil {
		return nil, err
	}
	return target, nil
}

func initQuadraticModel(target *bqm.Model, vartype api.Vartype) (*bqm.Model, api.Vartype, error) {
	if vartype == api.Undefined {
		if target == nil {
			return nil, api.Undefined, api.ErrVartypeInference
		}
		return target, target.Vartype, target.Vartype.Validate()
	}
	if err := vartype.Validate(); err != nil {
		return nil, api.Undefined, err
	}
	if target == nil {
		return bqm.New(vartype), vartype, nil
	}
	m, err := target.Converted(vartype)
	return m, vartype, err
}

func initPolynomial(p *poly.BinaryPolynomial, vartype api.Vartype) (*poly.BinaryPolynomial, error) {
	return p.WithVartype(vartype)
}

// addObjective adds reduced terms to the model.
func addObjective(m *bqm.Model, terms []api.Monomial) error {
	for _, t := range terms {
		switch len(t.Term) {
		case 2:
			m.AddInteraction(t.Term[0], t.Term[1], t.Bias)
		case 1:
			m.AddVariable(t.Term[0], t.Bias)
		case 0:
			m.Offset += t.Bias
		default:
			return api.NewInternalError("term %v was not reduced", t.Term)
		}
	}
	return nil
}
