package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rmohr/quadratize/pkg/order"
)

// Variable is the label of a binary variable. Integer labels are kept as their
// decimal text.
type Variable string

// UnmarshalJSON accepts strings as well as plain numbers, so that polynomial
// files can label variables with `0` instead of `"0"`.
func (v *Variable) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Variable(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("variable label must be a string or a number, got %s", string(data))
	}
	*v = Variable(n.String())
	return nil
}

func Compare(a, b Variable) int {
	return order.Compare(string(a), string(b))
}

// Term is a set of variables representing their product. Terms are kept sorted
// in natural order and never contain a variable twice.
type Term []Variable

// NewTerm sorts the given variables and drops repetitions.
func NewTerm(vars ...Variable) Term {
	t := make(Term, 0, len(vars))
	seen := map[Variable]bool{}
	for _, v := range vars {
		if seen[v] {
			continue
		}
		seen[v] = true
		t = append(t, v)
	}
	t.sort()
	return t
}

func (t Term) sort() {
	// insertion sort, terms are short
	for i := 1; i < len(t); i++ {
		for j := i; j > 0 && Compare(t[j-1], t[j]) > 0; j-- {
			t[j-1], t[j] = t[j], t[j-1]
		}
	}
}

// Key returns a comparable representation of the term which can be used as map
// key. Every label is prefixed by its length, so labels may contain any byte.
func (t Term) Key() string {
	var b strings.Builder
	for _, v := range t {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(string(v))
	}
	return b.String()
}

func (t Term) Contains(v Variable) bool {
	for _, x := range t {
		if x == v {
			return true
		}
	}
	return false
}

// Without returns the variables of t which are not part of the pair.
func (t Term) Without(p Pair) Term {
	r := make(Term, 0, len(t))
	for _, v := range t {
		if v != p[0] && v != p[1] {
			r = append(r, v)
		}
	}
	return r
}

// With returns a new term containing all variables of t and v.
func (t Term) With(v Variable) Term {
	return NewTerm(append(append(Term{}, t...), v)...)
}

// Pairs returns all 2-subsets of the term.
func (t Term) Pairs() []Pair {
	var pairs []Pair
	for i := 0; i < len(t); i++ {
		for j := i + 1; j < len(t); j++ {
			pairs = append(pairs, NewPair(t[i], t[j]))
		}
	}
	return pairs
}

func (t Term) String() string {
	s := make([]string, len(t))
	for i, v := range t {
		s[i] = string(v)
	}
	return "(" + strings.Join(s, ",") + ")"
}

// Pair is an unordered pair of distinct variables, stored in natural order.
type Pair [2]Variable

func NewPair(u, v Variable) Pair {
	if Compare(u, v) > 0 {
		u, v = v, u
	}
	return Pair{u, v}
}

func ComparePairs(a, b Pair) int {
	if c := Compare(a[0], b[0]); c != 0 {
		return c
	}
	return Compare(a[1], b[1])
}

func (p Pair) Term() Term {
	return Term{p[0], p[1]}
}

func (p Pair) String() string {
	return fmt.Sprintf("{%s,%s}", p[0], p[1])
}

// Monomial is a term together with its bias.
type Monomial struct {
	Term Term
	Bias float64
}

func (m Monomial) String() string {
	return fmt.Sprintf("%v: %v", m.Term, m.Bias)
}

// Constraint records that Product has to equal the product of the two
// variables of Pair.
type Constraint struct {
	Pair    Pair
	Product Variable
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s := %v", c.Product, c.Pair)
}

// Sample assigns a value to variables. Values are 0/1 for BINARY and -1/+1 for
// SPIN models.
type Sample map[Variable]int8
