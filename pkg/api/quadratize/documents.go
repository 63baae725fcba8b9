package quadratize

import "github.com/rmohr/quadratize/pkg/api"

type Constraint struct {
	Variables []api.Variable `json:"variables"`
	Product   api.Variable   `json:"product"`
	Auxiliary api.Variable   `json:"auxiliary,omitempty"`
}

type Stats struct {
	Reductions      int `json:"reductions"`
	PairsIndexed    int `json:"pairsIndexed"`
	MaxMultiplicity int `json:"maxMultiplicity"`
}

// ReductionResult is the reduced form of one polynomial file.
type ReductionResult struct {
	Source      string       `json:"source,omitempty"`
	Terms       []Term       `json:"terms"`
	Constraints []Constraint `json:"constraints,omitempty"`
	Stats       Stats        `json:"stats"`
}

type Interaction struct {
	Variables []api.Variable `json:"variables"`
	Bias      float64        `json:"bias"`
}

type Linear struct {
	Variable api.Variable `json:"variable"`
	Bias     float64      `json:"bias"`
}

type BQM struct {
	Vartype     api.Vartype   `json:"vartype"`
	Offset      float64       `json:"offset"`
	Linear      []Linear      `json:"linear"`
	Quadratic   []Interaction `json:"quadratic,omitempty"`
	Constraints []Constraint  `json:"constraints,omitempty"`
}

type CQMConstraint struct {
	Label string  `json:"label"`
	LHS   BQM     `json:"lhs"`
	Sense string  `json:"sense"`
	RHS   float64 `json:"rhs"`
}

type CQM struct {
	Objective   BQM             `json:"objective"`
	Constraints []CQMConstraint `json:"constraints,omitempty"`
}

// Completion is a sample extended by product and auxiliary variables.
type Completion struct {
	Sample           map[api.Variable]int8 `json:"sample"`
	PolynomialEnergy float64               `json:"polynomialEnergy"`
	ModelEnergy      float64               `json:"modelEnergy"`
}
