package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rmohr/quadratize/pkg/api"
	apiq "github.com/rmohr/quadratize/pkg/api/quadratize"
	"github.com/rmohr/quadratize/pkg/bqm"
	"github.com/rmohr/quadratize/pkg/config"
	"github.com/rmohr/quadratize/pkg/cqm"
	"github.com/rmohr/quadratize/pkg/poly"
	"github.com/rmohr/quadratize/pkg/quadratize"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"
)

func sortedVariables(vars []api.Variable) []api.Variable {
	sorted := append([]api.Variable{}, vars...)
	slices.SortFunc(sorted, api.Compare)
	return sorted
}

// loadPolynomial reads a polynomial file and converts it to the requested
// vartype. An empty vartype keeps the vartype of the file.
func loadPolynomial(file string, vartype api.Vartype) (*poly.BinaryPolynomial, error) {
	pf, err := config.LoadPolynomialFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load polynomial %s: %w", file, err)
	}
	p, err := config.ToPolynomial(pf, vartype)
	if err != nil {
		return nil, err
	}
	if vartype != api.Undefined && p.Vartype != vartype {
		logrus.Infof("Converting polynomial %s from %s to %s.", file, p.Vartype, vartype)
		return p.ChangeVartype(vartype)
	}
	return p, nil
}

// resolveVartype prefers the command line over the config file.
func resolveVartype(flag string) (api.Vartype, error) {
	vartype, err := api.ParseVartype(flag)
	if err != nil {
		return api.Undefined, err
	}
	if vartype == api.Undefined {
		vartype = defaults.Vartype
	}
	return vartype, nil
}

func toTerms(monomials []api.Monomial) []apiq.Term {
	terms := make([]apiq.Term, 0, len(monomials))
	for _, m := range monomials {
		terms = append(terms, apiq.Term{Variables: append([]api.Variable{}, m.Term...), Bias: m.Bias})
	}
	return terms
}

func toReductionResult(source string, result quadratize.Result) *apiq.ReductionResult {
	constraints := make([]apiq.Constraint, 0, len(result.Constraints))
	for _, c := range result.Constraints {
		constraints = append(constraints, apiq.Constraint{Variables: c.Pair.Term(), Product: c.Product})
	}
	return &apiq.ReductionResult{
		Source:      source,
		Terms:       toTerms(result.Terms),
		Constraints: constraints,
		Stats: apiq.Stats{
			Reductions:      result.Stats.Reductions,
			PairsIndexed:    result.Stats.PairsIndexed,
			MaxMultiplicity: result.Stats.MaxMultiplicity,
		},
	}
}

func toBQM(m *bqm.Model, reductions quadratize.Reductions) *apiq.BQM {
	doc := &apiq.BQM{
		Vartype: m.Vartype,
		Offset:  m.Offset,
		Linear:  []apiq.Linear{},
	}
	for _, v := range sortedVariables(m.Variables()) {
		doc.Linear = append(doc.Linear, apiq.Linear{Variable: v, Bias: m.Linear(v)})
	}
	for _, i := range m.Interactions() {
		doc.Quadratic = append(doc.Quadratic, apiq.Interaction{Variables: i.Pair.Term(), Bias: i.Bias})
	}
	for _, pair := range reductions.Pairs() {
		r := reductions[pair]
		doc.Constraints = append(doc.Constraints, apiq.Constraint{Variables: pair.Term(), Product: r.Product, Auxiliary: r.Auxiliary})
	}
	return doc
}

func toCQM(m *cqm.Model) *apiq.CQM {
	doc := &apiq.CQM{}
	if objective := m.Objective(); objective != nil {
		doc.Objective = *toBQM(objective, nil)
	}
	for _, c := range m.Constraints() {
		doc.Constraints = append(doc.Constraints, apiq.CQMConstraint{
			Label: c.Label,
			LHS:   *toBQM(c.LHS, nil),
			Sense: string(c.Sense),
			RHS:   c.RHS,
		})
	}
	return doc
}

func marshal(format string, obj interface{}) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		return json.MarshalIndent(obj, "", "\t")
	case config.FormatYAML:
		return yaml.Marshal(obj)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// writeDocument writes the document to out, or to stdout if out is empty.
func writeDocument(out string, format string, obj interface{}) error {
	if format == "" {
		format = defaults.Format
	}
	data, err := marshal(format, obj)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %v", err)
	}
	var writer io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to open output file %s: %v", out, err)
		}
		defer f.Close()
		writer = f
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write document: %v", err)
	}
	return nil
}
