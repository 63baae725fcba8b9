package quadratize

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/bqm"
	"github.com/rmohr/quadratize/pkg/cqm"
	"github.com/rmohr/quadratize/pkg/poly"
	"github.com/rmohr/quadratize/pkg/reducer"
)

func scenario() []api.Monomial {
	return []api.Monomial{
		mono(0), mono(-1, "0"), mono(1, "1"), mono(1.5, "2"), mono(-1, "0", "1"), mono(-2, "0", "1", "2"),
	}
}

func TestMakeQuadratic(t *testing.T) {
	g := NewGomegaWithT(t)
	p := newPolynomial(g, api.Undefined, scenario()...)

	m, reductions, err := MakeQuadratic(p, 5, api.Binary, nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(reductions).To(Equal(Reductions{{"0", "1"}: {Product: "0*1"}}))
	g.Expect(m.Vartype).To(Equal(api.Binary))
	g.Expect(m.Variables()).To(ConsistOf(api.Variable("0"), api.Variable("1"), api.Variable("2"), api.Variable("0*1")))
	g.Expect(m.Linear("0")).To(Equal(-1.0))
	g.Expect(m.Linear("1")).To(Equal(1.0))
	g.Expect(m.Linear("2")).To(Equal(1.5))
	g.Expect(m.Linear("0*1")).To(Equal(15.0))
	g.Expect(m.Interactions()).To(Equal([]bqm.Interaction{
		{Pair: api.Pair{"0", "1"}, Bias: 4},
		{Pair: api.Pair{"0", "0*1"}, Bias: -10},
		{Pair: api.Pair{"1", "0*1"}, Bias: -10},
		{Pair: api.Pair{"2", "0*1"}, Bias: -2},
	}))
	g.Expect(m.Offset).To(BeZero())
}

func TestMakeQuadraticVartypes(t *testing.T) {
	tests := []struct {
		name    string
		polyVt  api.Vartype
		vartype api.Vartype
		target  func() *bqm.Model
		wantErr error
	}{
		{name: "should require a vartype or a target", polyVt: api.Undefined, vartype: api.Undefined, wantErr: api.ErrVartypeInference},
		{name: "should reject unknown vartypes", polyVt: api.Undefined, vartype: "INTEGER", wantErr: api.ErrUnsupportedVartype},
		{name: "should reject polynomials of another vartype", polyVt: api.Spin, vartype: api.Binary, wantErr: api.ErrVartypeMismatch},
		{name: "should reject targets with an unknown vartype", polyVt: api.Undefined, vartype: api.Undefined, target: func() *bqm.Model { return bqm.New("INTEGER") }, wantErr: api.ErrUnsupportedVartype},
		{name: "should take the vartype of the target", polyVt: api.Undefined, vartype: api.Undefined, target: func() *bqm.Model { return bqm.New(api.Spin) }},
		{name: "should take the vartype of a typed polynomial", polyVt: api.Spin, vartype: api.Spin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			p := newPolynomial(g, tt.polyVt, mono(1, "a", "b", "c"))
			var target *bqm.Model
			if tt.target != nil {
				target = tt.target()
			}
			m, _, err := MakeQuadratic(p, 1, tt.vartype, target)
			if tt.wantErr != nil {
				g.Expect(errors.Is(err, tt.wantErr)).To(BeTrue(), "unexpected error: %v", err)
				return
			}
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(m.Vartype).To(Equal(api.Spin))
		})
	}
}

func TestMakeQuadraticTarget(t *testing.T) {
	t.Run("should extend the target in place without vartype", func(t *testing.T) {
		g := NewGomegaWithT(t)
		target := bqm.New(api.Binary)
		target.AddVariable("x", 1)
		m, _, err := MakeQuadratic(newPolynomial(g, api.Undefined, mono(1, "a", "b", "c")), 1, api.Undefined, target)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(m).To(BeIdenticalTo(target))
		g.Expect(target.HasVariable("a*b")).To(BeTrue())
	})
	t.Run("should convert a copy of a target of another vartype", func(t *testing.T) {
		g := NewGomegaWithT(t)
		target := bqm.New(api.Binary)
		target.AddVariable("x", 1)
		m, _, err := MakeQuadratic(newPolynomial(g, api.Undefined, mono(1, "a", "b", "c")), 1, api.Spin, target)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(m).ToNot(BeIdenticalTo(target))
		g.Expect(m.Vartype).To(Equal(api.Spin))
		g.Expect(m.Linear("x")).To(Equal(.5))
		g.Expect(target.Vartype).To(Equal(api.Binary))
		g.Expect(target.NumVariables()).To(Equal(1))
	})
	t.Run("should not reuse variable names of the target", func(t *testing.T) {
		g := NewGomegaWithT(t)
		target := bqm.New(api.Spin)
		target.AddVariable("a*b", 1)
		target.AddVariable("auxa,b", 1)
		_, reductions, err := MakeQuadratic(newPolynomial(g, api.Undefined, mono(1, "a", "b", "c")), 1, api.Undefined, target)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(reductions).To(Equal(Reductions{{"a", "b"}: {Product: "_a*b", Auxiliary: "_auxa,b"}}))
	})
}

func TestMakeQuadraticReductions(t *testing.T) {
	g := NewGomegaWithT(t)
	p := newPolynomial(g, api.Spin, mono(1, "0", "1", "2", "3"))
	m, reductions, err := MakeQuadratic(p, 1, api.Spin, nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(reductions.Pairs()).To(Equal([]api.Pair{{"0", "1"}, {"2", "3"}}))
	g.Expect(reductions).To(Equal(Reductions{
		{"0", "1"}: {Product: "0*1", Auxiliary: "aux0,1"},
		{"2", "3"}: {Product: "2*3", Auxiliary: "aux2,3"},
	}))
	g.Expect(reductions.Constraints()).To(Equal([]api.Constraint{
		{Pair: api.Pair{"0", "1"}, Product: "0*1"},
		{Pair: api.Pair{"2", "3"}, Product: "2*3"},
	}))
	g.Expect(m.NumVariables()).To(Equal(8))
	bias, exists := m.Quadratic("0*1", "2*3")
	g.Expect(exists).To(BeTrue())
	g.Expect(bias).To(Equal(1.0))
}

func TestMakeQuadraticKeepsGroundStates(t *testing.T) {
	for _, vartype := range []api.Vartype{api.Binary, api.Spin} {
		for seed := int64(0); seed < 4; seed++ {
			t.Run(fmt.Sprintf("%s seed %d", vartype, seed), func(t *testing.T) {
				g := NewGomegaWithT(t)
				p := randomPolynomial(g, seed, vartype)
				m, _, err := MakeQuadratic(p, 2*biasSum(p)+1, api.Undefined, bqm.New(vartype))
				g.Expect(err).ToNot(HaveOccurred())

				vars := p.Variables()
				minimal := minimalEnergies(g, m, vars)
				for _, s := range allSamples(vartype, vars) {
					want, err := p.Energy(s)
					g.Expect(err).ToNot(HaveOccurred())
					g.Expect(minimal[sampleKey(s, vars)]).To(BeNumerically("~", want, 1e-9), "sample %v", s)
				}
			})
		}
	}
}

func TestMakeQuadraticWeakStrength(t *testing.T) {
	g := NewGomegaWithT(t)
	p := newPolynomial(g, api.Binary, mono(-10, "a", "b", "c"), mono(6, "a"), mono(6, "b"))
	m, _, err := MakeQuadratic(p, 1, api.Binary, nil)
	g.Expect(err).ToNot(HaveOccurred())

	var ground api.Sample
	groundEnergy := 0.0
	for _, s := range allSamples(api.Binary, m.Variables()) {
		e, err := m.Energy(s)
		g.Expect(err).ToNot(HaveOccurred())
		if ground == nil || e < groundEnergy {
			ground, groundEnergy = s, e
		}
	}
	// the polynomial never goes below 0
	g.Expect(groundEnergy).To(Equal(-7.0))
	g.Expect(ground["a*b"]).ToNot(Equal(ground["a"] * ground["b"]))
}

func TestMakeQuadraticCQM(t *testing.T) {
	g := NewGomegaWithT(t)
	p := newPolynomial(g, api.Binary, scenario()...)

	m, err := MakeQuadraticCQM(p, api.Undefined, nil)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(m.Constraints()).To(HaveLen(1))

	c := m.Constraint("0*1 == 0*1")
	g.Expect(c).ToNot(BeNil())
	g.Expect(c.Sense).To(Equal(cqm.Eq))
	g.Expect(c.RHS).To(BeZero())
	g.Expect(c.LHS.Linear("0*1")).To(Equal(-1.0))
	bias, exists := c.LHS.Quadratic("0", "1")
	g.Expect(exists).To(BeTrue())
	g.Expect(bias).To(Equal(1.0))

	objective := m.Objective()
	g.Expect(objective.Linear("2")).To(Equal(1.5))
	g.Expect(objective.Interactions()).To(Equal([]bqm.Interaction{
		{Pair: api.Pair{"0", "1"}, Bias: -1},
		{Pair: api.Pair{"2", "0*1"}, Bias: -2},
	}))
	vartype, exists := m.Vartype("0*1")
	g.Expect(exists).To(BeTrue())
	g.Expect(vartype).To(Equal(api.Binary))

	for _, s := range allSamples(api.Binary, p.Variables()) {
		s["0*1"] = s["0"] * s["1"]
		feasible, err := m.Feasible(s, 0)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(feasible).To(BeTrue())
		want, _ := p.Energy(s)
		g.Expect(objective.Energy(s)).To(Equal(want))
	}
}

func TestMakeQuadraticCQMTarget(t *testing.T) {
	t.Run("should keep the previous objective and constraint labels", func(t *testing.T) {
		g := NewGomegaWithT(t)
		target := cqm.New()
		previous := bqm.New(api.Binary)
		previous.AddVariable("x", 2)
		g.Expect(target.SetObjective(previous)).To(Succeed())
		lhs := bqm.New(api.Binary)
		lhs.AddVariable("x", 1)
		_, err := target.AddConstraint(lhs, cqm.Le, 1, "a*b == a*b")
		g.Expect(err).ToNot(HaveOccurred())

		m, err := MakeQuadraticCQM(newPolynomial(g, api.Undefined, mono(1, "a", "b", "c")), api.Binary, target)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(m).To(BeIdenticalTo(target))
		g.Expect(m.HasLabel("_a*b == a*b")).To(BeTrue())
		g.Expect(m.Objective().Linear("x")).To(Equal(2.0))
		bias, _ := m.Objective().Quadratic("a*b", "c")
		g.Expect(bias).To(Equal(1.0))
	})
	t.Run("should reject variables of another vartype", func(t *testing.T) {
		g := NewGomegaWithT(t)
		target := cqm.New()
		previous := bqm.New(api.Spin)
		previous.AddVariable("a", 1)
		g.Expect(target.SetObjective(previous)).To(Succeed())

		_, err := MakeQuadraticCQM(newPolynomial(g, api.Undefined, mono(1, "a", "b", "c")), api.Binary, target)
		g.Expect(errors.Is(err, api.ErrVartypeMismatch)).To(BeTrue())
		g.Expect(target.Constraints()).To(BeEmpty())
	})
	t.Run("should require a vartype", func(t *testing.T) {
		g := NewGomegaWithT(t)
		_, err := MakeQuadraticCQM(newPolynomial(g, api.Undefined, mono(1, "a", "b", "c")), api.Undefined, nil)
		g.Expect(errors.Is(err, api.ErrVartypeInference)).To(BeTrue())
	})
}

func TestAddObjectiveRejectsHigherOrderTerms(t *testing.T) {
	g := NewGomegaWithT(t)
	err := addObjective(bqm.New(api.Binary), []api.Monomial{mono(1, "a", "b", "c")})
	var internal *api.InternalError
	g.Expect(errors.As(err, &internal)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("please file a bug report"))
}

func TestReduceAll(t *testing.T) {
	g := NewGomegaWithT(t)
	polys := []*poly.BinaryPolynomial{
		newPolynomial(g, api.Binary, mono(1, "a", "b", "c", "d")),
		newPolynomial(g, api.Binary, mono(1, "a", "b")),
		newPolynomial(g, api.Spin, scenario()...),
	}
	results, err := ReduceAll(context.Background(), polys, 2)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(results).To(HaveLen(3))
	for i, p := range polys {
		terms, constraints := reducer.Reduce(p)
		g.Expect(results[i].Terms).To(Equal(terms))
		g.Expect(results[i].Constraints).To(Equal(constraints))
		g.Expect(results[i].Stats.Reductions).To(Equal(len(constraints)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReduceAll(ctx, polys, 0)
	g.Expect(err).To(MatchError(context.Canceled))
}
