package bqm

import (
	"fmt"
	"math"

	"github.com/rmohr/quadratize/pkg/api"
	"golang.org/x/exp/slices"
)

// Model is a binary quadratic model: linear biases per variable, quadratic
// biases per pair of variables and a constant offset.
type Model struct {
	Vartype api.Vartype
	Offset  float64

	variables []api.Variable
	linear    map[api.Variable]float64
	quadratic map[api.Pair]float64
}

// Interaction is the quadratic bias between two variables.
type Interaction struct {
	Pair api.Pair
	Bias float64
}

func New(vartype api.Vartype) *Model {
	return &Model{
		Vartype:   vartype,
		linear:    map[api.Variable]float64{},
		quadratic: map[api.Pair]float64{},
	}
}

// AddVariable adds the bias to the linear bias of v, adding v to the model if
// it does not exist yet.
func (m *Model) AddVariable(v api.Variable, bias float64) {
	if _, exists := m.linear[v]; !exists {
		m.variables = append(m.variables, v)
	}
	m.linear[v] += bias
}

// AddInteraction adds the bias to the interaction between u and v. An
// interaction of a variable with itself is a linear term for BINARY models
// (x*x = x) and a constant for SPIN models (s*s = 1).
func (m *Model) AddInteraction(u, v api.Variable, bias float64) {
	if u == v {
		if m.Vartype == api.Spin {
			m.AddVariable(u, 0)
			m.Offset += bias
		} else {
			m.AddVariable(u, bias)
		}
		return
	}
	m.AddVariable(u, 0)
	m.AddVariable(v, 0)
	m.quadratic[api.NewPair(u, v)] += bias
}

// AddModel adds all biases and the offset of other. Both models need the same vartype.
func (m *Model) AddModel(other *Model) error {
	if other.Vartype != m.Vartype {
		return fmt.Errorf("%w: can not add a %s model to a %s model", api.ErrVartypeMismatch, other.Vartype, m.Vartype)
	}
	for _, v := range other.variables {
		m.AddVariable(v, other.linear[v])
	}
	for _, i := range other.Interactions() {
		m.AddInteraction(i.Pair[0], i.Pair[1], i.Bias)
	}
	m.Offset += other.Offset
	return nil
}

// Scale multiplies all biases and the offset by the scalar.
func (m *Model) Scale(scalar float64) {
	for v := range m.linear {
		m.linear[v] *= scalar
	}
	for p := range m.quadratic {
		m.quadratic[p] *= scalar
	}
	m.Offset *= scalar
}

func (m *Model) Linear(v api.Variable) float64 {
	return m.linear[v]
}

// Quadratic returns the interaction between u and v and whether it exists.
func (m *Model) Quadratic(u, v api.Variable) (float64, bool) {
	bias, exists := m.quadratic[api.NewPair(u, v)]
	return bias, exists
}

func (m *Model) HasVariable(v api.Variable) bool {
	_, exists := m.linear[v]
	return exists
}

// Variables returns the variables in the order they were added.
func (m *Model) Variables() []api.Variable {
	return append([]api.Variable{}, m.variables...)
}

// Interactions returns all interactions, sorted by pair.
func (m *Model) Interactions() []Interaction {
	interactions := make([]Interaction, 0, len(m.quadratic))
	for p, bias := range m.quadratic {
		interactions = append(interactions, Interaction{Pair: p, Bias: bias})
	}
	slices.SortFunc(interactions, func(a, b Interaction) int {
		return api.ComparePairs(a.Pair, b.Pair)
	})
	return interactions
}

func (m *Model) NumVariables() int {
	return len(m.variables)
}

func (m *Model) NumInteractions() int {
	return len(m.quadratic)
}

func (m *Model) Copy() *Model {
	c := New(m.Vartype)
	c.Offset = m.Offset
	c.variables = append(c.variables, m.variables...)
	for v, bias := range m.linear {
		c.linear[v] = bias
	}
	for p, bias := range m.quadratic {
		c.quadratic[p] = bias
	}
	return c
}

// ChangeVartype converts the model in place, keeping all energies. It uses
// s = 2x - 1 when converting to BINARY and x = (s + 1) / 2 when converting to SPIN.
func (m *Model) ChangeVartype(vartype api.Vartype) error {
	if err := vartype.Validate(); err != nil {
		return err
	}
	if err := m.Vartype.Validate(); err != nil {
		return err
	}
	if vartype == m.Vartype {
		return nil
	}

	var linMp, linOffsetMp, quadMp, linQuadMp, quadOffsetMp float64
	if vartype == api.Binary {
		linMp, linOffsetMp, quadMp, linQuadMp, quadOffsetMp = 2, -1, 4, -2, 1
	} else {
		linMp, linOffsetMp, quadMp, linQuadMp, quadOffsetMp = .5, .5, .25, .25, .25
	}

	linear := map[api.Variable]float64{}
	for v, bias := range m.linear {
		linear[v] += linMp * bias
		m.Offset += linOffsetMp * bias
	}
	for p, bias := range m.quadratic {
		m.quadratic[p] = quadMp * bias
		linear[p[0]] += linQuadMp * bias
		linear[p[1]] += linQuadMp * bias
		m.Offset += quadOffsetMp * bias
	}
	m.linear = linear
	m.Vartype = vartype
	return nil
}

// Converted returns a copy of the model with the given vartype.
func (m *Model) Converted(vartype api.Vartype) (*Model, error) {
	c := m.Copy()
	if err := c.ChangeVartype(vartype); err != nil {
		return nil, err
	}
	return c, nil
}

// Energy evaluates the model for the sample, which has to assign all variables.
func (m *Model) Energy(sample api.Sample) (float64, error) {
	energy := m.Offset
	for _, v := range m.variables {
		val, exists := sample[v]
		if !exists {
			return math.NaN(), fmt.Errorf("sample has no value for variable %s", v)
		}
		energy += m.linear[v] * float64(val)
	}
	for p, bias := range m.quadratic {
		energy += bias * float64(sample[p[0]]) * float64(sample[p[1]])
	}
	return energy, nil
}
