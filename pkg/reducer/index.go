package reducer

import (
	"github.com/rmohr/quadratize/pkg/api"
)

// pairIndex maps every pair to the higher-order terms containing it, keyed by
// api.Term.Key.
type pairIndex map[api.Pair]map[string]api.Monomial

func (idx pairIndex) add(pair api.Pair, m api.Monomial) {
	terms, exists := idx[pair]
	if !exists {
		terms = map[string]api.Monomial{}
		idx[pair] = terms
	}
	terms[m.Term.Key()] = m
}

// removeTerm drops the record of term from the pair and deletes the pair once
// no term references it anymore. Queue membership is not touched.
func (idx pairIndex) removeTerm(pair api.Pair, term api.Term) {
	terms := idx[pair]
	delete(terms, term.Key())
	if len(terms) == 0 {
		delete(idx, pair)
	}
}

// rekey replaces the record of from by to, keeping the bias. The number of
// terms referencing the pair does not change.
func (idx pairIndex) rekey(pair api.Pair, from, to api.Term) {
	terms := idx[pair]
	m := terms[from.Key()]
	delete(terms, from.Key())
	terms[to.Key()] = api.Monomial{Term: to, Bias: m.Bias}
}

// bucketQueue groups pairs by the number of terms referencing them.
type bucketQueue map[int]map[api.Pair]struct{}

func (q bucketQueue) push(pair api.Pair, count int) {
	bucket, exists := q[count]
	if !exists {
		bucket = map[api.Pair]struct{}{}
		q[count] = bucket
	}
	bucket[pair] = struct{}{}
}

func (q bucketQueue) remove(pair api.Pair, count int) {
	bucket := q[count]
	delete(bucket, pair)
	if len(bucket) == 0 {
		delete(q, count)
	}
}

// decrement moves the pair one bucket down. It has to be called right before
// a term is removed from the pair in the index, since it reads the size of the
// index entry to find the current bucket. A pair which is about to lose its
// last term leaves the queue.
func (q bucketQueue) decrement(idx pairIndex, pair api.Pair) {
	count := len(idx[pair])
	q.remove(pair, count)
	if count > 1 {
		q.push(pair, count-1)
	}
}

// extractMax removes and returns the smallest pair of the most populated
// multiplicity.
func (q bucketQueue) extractMax() (pair api.Pair, count int, ok bool) {
	if len(q) == 0 {
		return api.Pair{}, 0, false
	}
	for c := range q {
		if c > count {
			count = c
		}
	}
	first := true
	for p := range q[count] {
		if first || api.ComparePairs(p, pair) < 0 {
			pair = p
			first = false
		}
	}
	q.remove(pair, count)
	return pair, count, true
}
