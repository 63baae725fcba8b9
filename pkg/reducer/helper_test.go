package reducer

import (
	"math/rand"

	. "github.com/onsi/gomega"
	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/poly"
)

func term(vars ...string) api.Term {
	t := api.Term{}
	for _, v := range vars {
		t = append(t, api.Variable(v))
	}
	return t
}

func mono(bias float64, vars ...string) api.Monomial {
	return api.Monomial{Term: term(vars...), Bias: bias}
}

func newPolynomial(g *WithT, vartype api.Vartype, monomials ...api.Monomial) *poly.BinaryPolynomial {
	p, err := poly.New(vartype, monomials...)
	g.Expect(err).ToNot(HaveOccurred())
	return p
}

// randomPolynomial creates a reproducible polynomial with terms of up to
// maxDegree variables drawn from n variables.
func randomPolynomial(g *WithT, seed int64, vartype api.Vartype, n, terms, maxDegree int) *poly.BinaryPolynomial {
	rnd := rand.New(rand.NewSource(seed))
	var monomials []api.Monomial
	for i := 0; i < terms; i++ {
		size := rnd.Intn(maxDegree + 1)
		perm := rnd.Perm(n)[:size]
		t := api.Term{}
		for _, v := range perm {
			t = append(t, api.Variable(string(rune('a'+v))))
		}
		monomials = append(monomials, api.Monomial{Term: t, Bias: float64(rnd.Intn(21) - 10)})
	}
	return newPolynomial(g, vartype, monomials...)
}

func allSamples(vartype api.Vartype, vars []api.Variable) []api.Sample {
	vals := vartype.Values()
	var result []api.Sample
	for mask := 0; mask < 1<<len(vars); mask++ {
		s := api.Sample{}
		for i, v := range vars {
			s[v] = vals[(mask>>i)&1]
		}
		result = append(result, s)
	}
	return result
}

// extend assigns every product variable the product of its pair. Constraints
// may refer to earlier products, so they are applied in order.
func extend(sample api.Sample, constraints []api.Constraint) api.Sample {
	extended := api.Sample{}
	for v, val := range sample {
		extended[v] = val
	}
	for _, c := range constraints {
		extended[c.Product] = extended[c.Pair[0]] * extended[c.Pair[1]]
	}
	return extended
}

func energy(monomials []api.Monomial, sample api.Sample) float64 {
	e := 0.0
	for _, m := range monomials {
		prod := m.Bias
		for _, v := range m.Term {
			prod *= float64(sample[v])
		}
		e += prod
	}
	return e
}
