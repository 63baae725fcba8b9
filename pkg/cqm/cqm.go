package cqm

import (
	"fmt"
	"math"

	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/bqm"
	"golang.org/x/exp/slices"
)

type Sense string

const (
	Eq Sense = "=="
	Le Sense = "<="
	Ge Sense = ">="
)

// Constraint requires LHS <Sense> RHS.
type Constraint struct {
	Label string
	LHS   *bqm.Model
	Sense Sense
	RHS   float64
}

// Violation returns by how much the sample violates the constraint, 0 if it
// is satisfied.
func (c *Constraint) Violation(sample api.Sample) (float64, error) {
	lhs, err := c.LHS.Energy(sample)
	if err != nil {
		return math.NaN(), fmt.Errorf("constraint %s: %v", c.Label, err)
	}
	switch c.Sense {
	case Le:
		return math.Max(0, lhs-c.RHS), nil
	case Ge:
		return math.Max(0, c.RHS-lhs), nil
	}
	return math.Abs(lhs - c.RHS), nil
}

// Model is a constrained quadratic model: a quadratic objective subject to
// labelled quadratic constraints. Every variable has one vartype across the
// objective and all constraints.
type Model struct {
	objective   *bqm.Model
	constraints []*Constraint
	labels      map[string]*Constraint
	vartypes    map[api.Variable]api.Vartype
}

func New() *Model {
	return &Model{
		labels:   map[string]*Constraint{},
		vartypes: map[api.Variable]api.Vartype{},
	}
}

// Objective returns the objective, or nil if none was set.
func (m *Model) Objective() *bqm.Model {
	return m.objective
}

// SetObjective replaces the objective.
func (m *Model) SetObjective(objective *bqm.Model) error {
	if err := m.checkVartypes(objective); err != nil {
		return fmt.Errorf("objective: %w", err)
	}
	m.objective = objective
	m.addVartypes(objective)
	return nil
}

// AddConstraint adds the constraint lhs <sense> rhs. An empty label is replaced
// by a generated one. The label under which the constraint was stored is returned.
func (m *Model) AddConstraint(lhs *bqm.Model, sense Sense, rhs float64, label string) (string, error) {
	switch sense {
	case Eq, Le, Ge:
	default:
		return "", fmt.Errorf("unknown constraint sense %q", sense)
	}
	if label == "" {
		label = fmt.Sprintf("c%d", len(m.constraints))
		for m.labels[label] != nil {
			label = "_" + label
		}
	}
	if m.labels[label] != nil {
		return "", fmt.Errorf("a constraint with label %q already exists", label)
	}
	if err := m.checkVartypes(lhs); err != nil {
		return "", fmt.Errorf("constraint %s: %w", label, err)
	}
	c := &Constraint{Label: label, LHS: lhs, Sense: sense, RHS: rhs}
	m.constraints = append(m.constraints, c)
	m.labels[label] = c
	m.addVartypes(lhs)
	return label, nil
}

// Constraints returns the constraints in the order they were added.
func (m *Model) Constraints() []*Constraint {
	return append([]*Constraint{}, m.constraints...)
}

func (m *Model) Constraint(label string) *Constraint {
	return m.labels[label]
}

func (m *Model) HasLabel(label string) bool {
	return m.labels[label] != nil
}

// Vartype returns the vartype of a variable of the model.
func (m *Model) Vartype(v api.Variable) (api.Vartype, bool) {
	vartype, exists := m.vartypes[v]
	return vartype, exists
}

// Variables returns all variables used in the objective or in constraints, in
// natural order.
func (m *Model) Variables() []api.Variable {
	vars := make([]api.Variable, 0, len(m.vartypes))
	for v := range m.vartypes {
		vars = append(vars, v)
	}
	slices.SortFunc(vars, api.Compare)
	return vars
}

// Violations returns the violation of every constraint by label.
func (m *Model) Violations(sample api.Sample) (map[string]float64, error) {
	violations := map[string]float64{}
	for _, c := range m.constraints {
		v, err := c.Violation(sample)
		if err != nil {
			return nil, err
		}
		violations[c.Label] = v
	}
	return violations, nil
}

// Feasible reports whether the sample satisfies all constraints within the tolerance.
func (m *Model) Feasible(sample api.Sample, tolerance float64) (bool, error) {
	violations, err := m.Violations(sample)
	if err != nil {
		return false, err
	}
	for _, v := range violations {
		if v > tolerance {
			return false, nil
		}
	}
	return true, nil
}

func (m *Model) checkVartypes(q *bqm.Model) error {
	for _, v := range q.Variables() {
		if vartype, exists := m.vartypes[v]; exists && vartype != q.Vartype {
			return fmt.Errorf("%w: variable %s is %s, not %s", api.ErrVartypeMismatch, v, vartype, q.Vartype)
		}
	}
	return nil
}

func (m *Model) addVartypes(q *bqm.Model) {
	for _, v := range q.Variables() {
		m.vartypes[v] = q.Vartype
	}
}
