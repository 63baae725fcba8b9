package main

import (
	"fmt"
	"strconv"

	"github.com/rmohr/quadratize/pkg/api"
	apiq "github.com/rmohr/quadratize/pkg/api/quadratize"
	"github.com/rmohr/quadratize/pkg/quadratize"
	"github.com/rmohr/quadratize/pkg/sat"
	"github.com/spf13/cobra"
)

type completeOpts struct {
	in       string
	out      string
	format   string
	vartype  string
	strength float64
	sample   map[string]string
}

var completeopts = completeOpts{}

func NewCompleteCmd() *cobra.Command {

	completeCmd := &cobra.Command{
		Use:   "complete",
		Short: "Extend a sample by the values of all product variables",
		Long: `Assigns every product and auxiliary variable of the penalty model the value which is implied by
the given sample of the polynomial variables, and reports the energies of the polynomial and the model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vartype, err := resolveVartype(completeopts.vartype)
			if err != nil {
				return err
			}
			p, err := loadPolynomial(completeopts.in, vartype)
			if err != nil {
				return err
			}
			if vartype == api.Undefined {
				vartype = p.Vartype
			}
			strength := completeopts.strength
			if !cmd.Flags().Changed("strength") {
				strength = defaults.Strength
			}
			sample, err := parseSample(completeopts.sample)
			if err != nil {
				return err
			}
			m, reductions, err := quadratize.MakeQuadratic(p, strength, vartype, nil)
			if err != nil {
				return err
			}
			completion, err := complete(vartype, reductions, sample)
			if err != nil {
				return err
			}
			if completion.PolynomialEnergy, err = p.Energy(completion.Sample); err != nil {
				return err
			}
			if completion.ModelEnergy, err = m.Energy(completion.Sample); err != nil {
				return err
			}
			return writeDocument(completeopts.out, completeopts.format, completion)
		},
	}

	completeCmd.Flags().StringVarP(&completeopts.in, "input", "i", "polynomial.yaml", "polynomial file")
	completeCmd.Flags().StringVarP(&completeopts.out, "output", "o", "", "where to write the completed sample, stdout if empty")
	completeCmd.Flags().StringVarP(&completeopts.format, "format", "f", "", "output format, yaml or json")
	completeCmd.Flags().StringVar(&completeopts.vartype, "vartype", "", "vartype of the model, BINARY or SPIN")
	completeCmd.Flags().Float64VarP(&completeopts.strength, "strength", "s", 1.0, "scale of the penalty gadgets")
	completeCmd.Flags().StringToStringVar(&completeopts.sample, "sample", map[string]string{}, "values of the polynomial variables, e.g. a=1,b=0")
	return completeCmd
}

func parseSample(values map[string]string) (api.Sample, error) {
	sample := api.Sample{}
	for v, raw := range values {
		val, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for variable %s: %v", raw, v, err)
		}
		sample[api.Variable(v)] = int8(val)
	}
	return sample, nil
}

func complete(vartype api.Vartype, reductions quadratize.Reductions, sample api.Sample) (*apiq.Completion, error) {
	completer, err := sat.NewCompleter(vartype, reductions)
	if err != nil {
		return nil, err
	}
	completed, err := completer.Complete(sample)
	if err != nil {
		return nil, err
	}
	return &apiq.Completion{Sample: completed}, nil
}
