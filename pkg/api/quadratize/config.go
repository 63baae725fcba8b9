package quadratize

import "github.com/rmohr/quadratize/pkg/api"

// Config holds the defaults of the command line tool.
type Config struct {
	Vartype  api.Vartype `json:"vartype,omitempty"`
	Strength float64     `json:"strength"`
	Format   string      `json:"format"`
}

// Term is a monomial as it is written in polynomial files.
type Term struct {
	Variables []api.Variable `json:"variables"`
	Bias      float64        `json:"bias"`
}

// PolynomialFile describes a polynomial. Terms with equal variables are summed up.
type PolynomialFile struct {
	Name    string      `json:"name,omitempty"`
	Vartype api.Vartype `json:"vartype,omitempty"`
	Terms   []Term      `json:"terms"`
}
