package reducer

import (
	"fmt"

	"github.com/rmohr/quadratize/pkg/api"
)

// Registry knows all variable labels in use and hands out fresh ones.
type Registry struct {
	vars map[api.Variable]struct{}
}

func NewRegistry(vars ...api.Variable) *Registry {
	r := &Registry{vars: map[api.Variable]struct{}{}}
	for _, v := range vars {
		r.Add(v)
	}
	return r
}

func (r *Registry) Add(v api.Variable) {
	r.vars[v] = struct{}{}
}

func (r *Registry) Contains(v api.Variable) bool {
	_, exists := r.vars[v]
	return exists
}

func (r *Registry) Len() int {
	return len(r.vars)
}

// NewProduct registers and returns a label for the product of u and v.
func (r *Registry) NewProduct(u, v api.Variable) api.Variable {
	return r.ticket(fmt.Sprintf("%s*%s", u, v))
}

// NewAuxiliary registers and returns a label for an auxiliary variable which
// belongs to the product of u and v.
func (r *Registry) NewAuxiliary(u, v api.Variable) api.Variable {
	return r.ticket(fmt.Sprintf("aux%s,%s", u, v))
}

func (r *Registry) ticket(name string) api.Variable {
	v := api.Variable(name)
	for r.Contains(v) {
		v = "_" + v
	}
	r.Add(v)
	return v
}
