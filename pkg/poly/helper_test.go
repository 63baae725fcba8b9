package poly

import (
	"github.com/rmohr/quadratize/pkg/api"
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

// samples enumerates all assignments of the given variables.
func samples(vartype api.Vartype, vars []api.Variable) []api.Sample {
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
