package sat

import (
	"fmt"
	"strconv"

	"github.com/crillab/gophersat/bf"
	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/quadratize"
	"github.com/sirupsen/logrus"
)

// Completer derives the values of product and auxiliary variables from the
// values of the variables they were introduced for. A variable is true if it
// takes the upper value of its vartype, 1 for BINARY and +1 for SPIN.
type Completer struct {
	vartype   api.Vartype
	varsCount int
	// satVars maps the model variables to the names used in the formula
	satVars map[api.Variable]string
	// derived holds all product and auxiliary variables
	derived map[api.Variable]bool
	ands    []bf.Formula
}

// NewCompleter encodes the relations of the reductions. For BINARY models a
// product p of u and v is p <=> u and v. For SPIN models it is p <=> (u <=> v),
// and the auxiliary variable is set unless both u and v are set.
func NewCompleter(vartype api.Vartype, reductions quadratize.Reductions) (*Completer, error) {
	if err := vartype.Validate(); err != nil {
		return nil, err
	}
	c := &Completer{
		vartype: vartype,
		satVars: map[api.Variable]string{},
		derived: map[api.Variable]bool{},
	}
	for _, pair := range reductions.Pairs() {
		r := reductions[pair]
		u, v, p := c.satVar(pair[0]), c.satVar(pair[1]), c.satVar(r.Product)
		c.derived[r.Product] = true
		switch vartype {
		case api.Binary:
			c.ands = append(c.ands, iff(p, bf.And(u, v)))
		case api.Spin:
			if r.Auxiliary == "" {
				return nil, fmt.Errorf("reduction of %v has no auxiliary variable", pair)
			}
			c.derived[r.Auxiliary] = true
			c.ands = append(c.ands, iff(p, iff(u, v)), iff(c.satVar(r.Auxiliary), bf.Not(bf.And(u, v))))
		}
	}
	logrus.Debugf("Encoded %d reductions with %d variables.", len(reductions), c.varsCount)
	return c, nil
}

// Complete extends a sample of the original variables by the values of all
// product and auxiliary variables.
func (c *Completer) Complete(sample api.Sample) (api.Sample, error) {
	units, err := c.units(sample)
	if err != nil {
		return nil, err
	}
	for v := range c.satVars {
		if _, given := sample[v]; !given && !c.derived[v] {
			return nil, fmt.Errorf("sample has no value for variable %s", v)
		}
	}
	model, ok := c.solve(units)
	if !ok {
		return nil, fmt.Errorf("sample contradicts the product variables")
	}

	vals := c.vartype.Values()
	completed := api.Sample{}
	for v, val := range sample {
		completed[v] = val
	}
	for v := range c.derived {
		if model[c.satVars[v]] {
			completed[v] = vals[1]
		} else {
			completed[v] = vals[0]
		}
	}
	return completed, nil
}

// Check verifies that the product and auxiliary variables of a full sample
// agree with the variables they were introduced for.
func (c *Completer) Check(sample api.Sample) error {
	for v := range c.satVars {
		if _, given := sample[v]; !given {
			return fmt.Errorf("sample has no value for variable %s", v)
		}
	}
	units, err := c.units(sample)
	if err != nil {
		return err
	}
	if _, ok := c.solve(units); !ok {
		return fmt.Errorf("sample violates the product constraints")
	}
	return nil
}

func (c *Completer) solve(units []bf.Formula) (map[string]bool, bool) {
	formulas := append(units, c.ands...)
	if len(formulas) == 0 {
		return map[string]bool{}, true
	}
	model := bf.Solve(bf.And(formulas...))
	return model, model != nil
}

func (c *Completer) units(sample api.Sample) ([]bf.Formula, error) {
	var units []bf.Formula
	for v, val := range sample {
		if !c.vartype.Contains(val) {
			return nil, fmt.Errorf("value %d of variable %s is not %s", val, v, c.vartype)
		}
		name, exists := c.satVars[v]
		if !exists {
			continue
		}
		if val == c.vartype.Values()[1] {
			units = append(units, bf.Var(name))
		} else {
			units = append(units, bf.Not(bf.Var(name)))
		}
	}
	return units, nil
}

func (c *Completer) satVar(v api.Variable) bf.Formula {
	name, exists := c.satVars[v]
	if !exists {
		name = c.ticket()
		c.satVars[v] = name
	}
	return bf.Var(name)
}

func (c *Completer) ticket() string {
	c.varsCount++
	return "x" + strconv.Itoa(c.varsCount)
}

func iff(a, b bf.Formula) bf.Formula {
	return bf.And(bf.Implies(a, b), bf.Implies(b, a))
}
