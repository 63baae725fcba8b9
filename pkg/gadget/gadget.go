// Package gadget provides small penalty models whose ground states are exactly
// the assignments in which one variable equals the product of two others. All
// gadgets have a ground state energy of 0 and a gap of 1 to the first excited
// state, independent of the rest of the problem.
package gadget

import (
	"fmt"

	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/bqm"
)

// AndGate returns a BINARY model with p = u AND v in its ground states.
func AndGate(u, v, p api.Variable) *bqm.Model {
	m := bqm.New(api.Binary)
	m.AddVariable(u, 0)
	m.AddVariable(v, 0)
	m.AddVariable(p, 3)
	m.AddInteraction(u, v, 1)
	m.AddInteraction(u, p, -2)
	m.AddInteraction(v, p, -2)
	return m
}

// SpinProduct returns a SPIN model with p = u * v in its ground states. It
// needs the auxiliary variable aux, which is -1 in the ground state exactly
// when u and v are both +1.
func SpinProduct(u, v, p, aux api.Variable) *bqm.Model {
	m := bqm.New(api.Spin)
	m.AddVariable(u, -.5)
	m.AddVariable(v, -.5)
	m.AddVariable(p, -.5)
	m.AddVariable(aux, -1.)
	m.AddInteraction(u, v, .5)
	m.AddInteraction(u, p, .5)
	m.AddInteraction(u, aux, 1.)
	m.AddInteraction(v, p, .5)
	m.AddInteraction(v, aux, 1.)
	m.AddInteraction(p, aux, 1.)
	m.Offset = 2.
	return m
}

// Product returns the product gadget for the vartype. aux is only used for SPIN.
func Product(vartype api.Vartype, u, v, p, aux api.Variable) (*bqm.Model, error) {
	switch vartype {
	case api.Binary:
		return AndGate(u, v, p), nil
	case api.Spin:
		return SpinProduct(u, v, p, aux), nil
	}
	return nil, fmt.Errorf("no product gadget: %w: %q", api.ErrUnsupportedVartype, string(vartype))
}

// NeedsAuxiliary reports whether the product gadget of the vartype uses an
// auxiliary variable.
func NeedsAuxiliary(vartype api.Vartype) bool {
	return vartype == api.Spin
}
