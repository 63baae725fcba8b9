package reducer

import (
	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/poly"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Stats describes the work done by one reduction.
type Stats struct {
	// Reductions is the number of introduced product variables.
	Reductions int
	// PairsIndexed counts the distinct pairs which were part of some
	// higher-order term during the reduction.
	PairsIndexed int
	// MaxMultiplicity is the highest number of terms which shared a reduced pair.
	MaxMultiplicity int
}

type Reducer struct {
	registry *Registry

	index   pairIndex
	queue   bucketQueue
	indexed map[api.Pair]struct{}

	reduced     []api.Monomial
	constraints []api.Constraint
	stats       Stats
}

// NewReducer creates a reducer which draws the names of product variables from
// the registry. The registry must already contain all variables of the
// polynomials which get reduced.
func NewReducer(registry *Registry) *Reducer {
	return &Reducer{registry: registry}
}

// Reduce reduces a polynomial to terms with at most two variables, with a
// registry containing only the variables of the polynomial.
func Reduce(p *poly.BinaryPolynomial) ([]api.Monomial, []api.Constraint) {
	return NewReducer(NewRegistry(p.Variables()...)).Reduce(p.Items())
}

// Reduce returns the monomials rewritten to at most two variables each and
// the product constraints which make the rewrite equivalent. Monomials of
// size zero to two are passed through first, in input order, followed by the
// rewritten higher-order monomials in the order they were finished.
func (r *Reducer) Reduce(monomials []api.Monomial) ([]api.Monomial, []api.Constraint) {
	r.index = pairIndex{}
	r.queue = bucketQueue{}
	r.indexed = map[api.Pair]struct{}{}
	r.reduced = nil
	r.constraints = nil
	r.stats = Stats{}

	for _, m := range monomials {
		if len(m.Term) <= 2 {
			r.reduced = append(r.reduced, m)
			continue
		}
		for _, pair := range m.Term.Pairs() {
			r.index.add(pair, m)
			r.indexed[pair] = struct{}{}
		}
	}
	for pair, terms := range r.index {
		r.queue.push(pair, len(terms))
	}

	for len(r.index) > 0 {
		r.step()
	}
	r.stats.PairsIndexed = len(r.indexed)
	logrus.Infof("Reduced %d monomials with %d product variables.", len(monomials), r.stats.Reductions)
	return r.reduced, r.constraints
}

func (r *Reducer) Stats() Stats {
	return r.stats
}

func (r *Reducer) step() {
	pair, count, ok := r.queue.extractMax()
	if !ok {
		// every indexed pair is queued
		panic(api.NewInternalError("pair index holds %d pairs but the queue is empty", len(r.index)))
	}
	terms := r.index[pair]
	delete(r.index, pair)

	product := r.registry.NewProduct(pair[0], pair[1])
	r.constraints = append(r.constraints, api.Constraint{Pair: pair, Product: product})
	r.stats.Reductions++
	if count > r.stats.MaxMultiplicity {
		r.stats.MaxMultiplicity = count
	}
	logrus.Debugf("Replacing %v, shared by %d terms, with %s.", pair, count, product)

	newPairs := map[api.Pair]struct{}{}
	keys := make([]string, 0, len(terms))
	for k := range terms {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		old := terms[k]
		common := old.Term.Without(pair)
		newTerm := common.With(product)

		// the old term is gone, pairs of one reduced and one remaining
		// variable lose their reference to it
		for _, u := range pair {
			for _, w := range common {
				oldPair := api.NewPair(u, w)
				r.queue.decrement(r.index, oldPair)
				r.index.removeTerm(oldPair, old.Term)
			}
		}

		for _, commonPair := range common.Pairs() {
			r.index.rekey(commonPair, old.Term, newTerm)
		}

		if len(newTerm) > 2 {
			for _, w := range common {
				newPair := api.NewPair(product, w)
				r.index.add(newPair, api.Monomial{Term: newTerm, Bias: old.Bias})
				r.indexed[newPair] = struct{}{}
				newPairs[newPair] = struct{}{}
			}
		} else {
			r.reduced = append(r.reduced, api.Monomial{Term: newTerm, Bias: old.Bias})
		}
	}

	for newPair := range newPairs {
		r.queue.push(newPair, len(r.index[newPair]))
	}
}
