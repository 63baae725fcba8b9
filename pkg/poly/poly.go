package poly

import (
	"fmt"
	"math"

	"github.com/rmohr/quadratize/pkg/api"
	"golang.org/x/exp/slices"
)

// BinaryPolynomial is a pseudo-boolean polynomial: a sum of products of binary
// variables, each product weighted by a bias. Terms keep the order in which
// they were first added.
type BinaryPolynomial struct {
	Vartype api.Vartype
	keys    []string
	terms   map[string]*api.Monomial
}

// New builds a polynomial from monomials whose terms may contain repeated
// variables. Repetitions are simplified according to the vartype: x*x = x for
// BINARY and s*s = 1 for SPIN. Monomials with equal terms are merged by
// summing their biases. A polynomial without vartype can not simplify
// repetitions and rejects them.
func New(vartype api.Vartype, monomials ...api.Monomial) (*BinaryPolynomial, error) {
	if vartype != api.Undefined {
		if err := vartype.Validate(); err != nil {
			return nil, err
		}
	}
	p := newEmpty(vartype)
	for _, m := range monomials {
		term, err := normalize(vartype, m.Term)
		if err != nil {
			return nil, err
		}
		p.add(term, m.Bias)
	}
	return p, nil
}

func newEmpty(vartype api.Vartype) *BinaryPolynomial {
	return &BinaryPolynomial{
		Vartype: vartype,
		terms:   map[string]*api.Monomial{},
	}
}

func normalize(vartype api.Vartype, raw api.Term) (api.Term, error) {
	counts := map[api.Variable]int{}
	for _, v := range raw {
		counts[v]++
	}
	if len(counts) == len(raw) {
		return api.NewTerm(raw...), nil
	}
	switch vartype {
	case api.Binary:
		return api.NewTerm(raw...), nil
	case api.Spin:
		var vars []api.Variable
		for v, c := range counts {
			if c%2 == 1 {
				vars = append(vars, v)
			}
		}
		return api.NewTerm(vars...), nil
	}
	return nil, fmt.Errorf("term %v repeats a variable and can only be simplified with a vartype: %w", raw, api.ErrVartypeInference)
}

func (p *BinaryPolynomial) add(term api.Term, bias float64) {
	key := term.Key()
	if m, exists := p.terms[key]; exists {
		m.Bias += bias
		return
	}
	p.keys = append(p.keys, key)
	p.terms[key] = &api.Monomial{Term: term, Bias: bias}
}

// Items returns copies of all monomials in insertion order.
func (p *BinaryPolynomial) Items() []api.Monomial {
	items := make([]api.Monomial, 0, len(p.keys))
	for _, k := range p.keys {
		m := p.terms[k]
		items = append(items, api.Monomial{Term: append(api.Term{}, m.Term...), Bias: m.Bias})
	}
	return items
}

func (p *BinaryPolynomial) Len() int {
	return len(p.keys)
}

// Bias returns the bias of the given term, or 0 if the polynomial does not contain it.
func (p *BinaryPolynomial) Bias(vars ...api.Variable) float64 {
	if m, exists := p.terms[api.NewTerm(vars...).Key()]; exists {
		return m.Bias
	}
	return 0
}

// Degree returns the size of the largest term.
func (p *BinaryPolynomial) Degree() int {
	degree := 0
	for _, m := range p.terms {
		if len(m.Term) > degree {
			degree = len(m.Term)
		}
	}
	return degree
}

// Variables returns all variables of the polynomial in natural order.
func (p *BinaryPolynomial) Variables() []api.Variable {
	seen := map[api.Variable]bool{}
	var vars []api.Variable
	for _, m := range p.terms {
		for _, v := range m.Term {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	slices.SortFunc(vars, api.Compare)
	return vars
}

// Energy evaluates the polynomial for the given sample.
func (p *BinaryPolynomial) Energy(sample api.Sample) (float64, error) {
	energy := 0.0
	for _, k := range p.keys {
		m := p.terms[k]
		prod := m.Bias
		for _, v := range m.Term {
			val, exists := sample[v]
			if !exists {
				return math.NaN(), fmt.Errorf("sample has no value for variable %s", v)
			}
			prod *= float64(val)
		}
		energy += prod
	}
	return energy, nil
}

// WithVartype assigns a vartype to a polynomial which was built without one.
// Polynomials which already carry a different vartype are rejected, they have
// to be converted with ChangeVartype instead.
func (p *BinaryPolynomial) WithVartype(vartype api.Vartype) (*BinaryPolynomial, error) {
	if err := vartype.Validate(); err != nil {
		return nil, err
	}
	if p.Vartype == vartype {
		return p, nil
	}
	if p.Vartype != api.Undefined {
		return nil, fmt.Errorf("%w: polynomial is %s but %s was requested", api.ErrVartypeMismatch, p.Vartype, vartype)
	}
	c := p.Copy()
	c.Vartype = vartype
	return c, nil
}

func (p *BinaryPolynomial) Copy() *BinaryPolynomial {
	c := newEmpty(p.Vartype)
	for _, m := range p.Items() {
		c.add(m.Term, m.Bias)
	}
	return c
}

// ChangeVartype returns an equivalent polynomial over the other variable
// domain, using s = 2x - 1 and x = (s + 1) / 2.
func (p *BinaryPolynomial) ChangeVartype(vartype api.Vartype) (*BinaryPolynomial, error) {
	if err := vartype.Validate(); err != nil {
		return nil, err
	}
	if p.Vartype == api.Undefined {
		return nil, fmt.Errorf("polynomial has no vartype to convert from: %w", api.ErrVartypeInference)
	}
	if p.Vartype == vartype {
		return p.Copy(), nil
	}
	c := newEmpty(vartype)
	for _, m := range p.Items() {
		n := len(m.Term)
		for mask := 0; mask < 1<<n; mask++ {
			var sub api.Term
			for i, v := range m.Term {
				if mask&(1<<i) != 0 {
					sub = append(sub, v)
				}
			}
			var factor float64
			if vartype == api.Spin {
				// prod (s_i + 1) / 2
				factor = math.Ldexp(1, -n)
			} else {
				// prod (2 x_i - 1)
				factor = math.Ldexp(1, len(sub))
				if (n-len(sub))%2 == 1 {
					factor = -factor
				}
			}
			c.add(sub, factor*m.Bias)
		}
	}
	return c, nil
}
