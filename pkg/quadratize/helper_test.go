package quadratize

import (
	"math"
	"math/rand"
	"strings"

	. "github.com/onsi/gomega"
	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/bqm"
	"github.com/rmohr/quadratize/pkg/poly"
)

func mono(bias float64, vars ...string) api.Monomial {
	t := api.Term{}
	for _, v := range vars {
		t = append(t, api.Variable(v))
	}
	return api.Monomial{Term: t, Bias: bias}
}

func newPolynomial(g *WithT, vartype api.Vartype, monomials ...api.Monomial) *poly.BinaryPolynomial {
	p, err := poly.New(vartype, monomials...)
	g.Expect(err).ToNot(HaveOccurred())
	return p
}

func randomPolynomial(g *WithT, seed int64, vartype api.Vartype) *poly.BinaryPolynomial {
	rnd := rand.New(rand.NewSource(seed))
	var monomials []api.Monomial
	for i := 0; i < 5; i++ {
		var vars []string
		for _, v := range rnd.Perm(4)[:rnd.Intn(5)] {
			vars = append(vars, string(rune('a'+v)))
		}
		monomials = append(monomials, mono(float64(rnd.Intn(9)-4), vars...))
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

func sampleKey(s api.Sample, vars []api.Variable) string {
	var b strings.Builder
	for _, v := range vars {
		if s[v] > 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// minimalEnergies enumerates all states of the model and returns the lowest
// energy found for every assignment of the given variables.
func minimalEnergies(g *WithT, m *bqm.Model, vars []api.Variable) map[string]float64 {
	result := map[string]float64{}
	for _, s := range allSamples(m.Vartype, m.Variables()) {
		e, err := m.Energy(s)
		g.Expect(err).ToNot(HaveOccurred())
		key := sampleKey(s, vars)
		if current, exists := result[key]; !exists || e < current {
			result[key] = e
		}
	}
	return result
}

func biasSum(p *poly.BinaryPolynomial) float64 {
	sum := 0.0
	for _, m := range p.Items() {
		sum += math.Abs(m.Bias)
	}
	return sum
}
