package main

import (
	"github.com/rmohr/quadratize/pkg/quadratize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type bqmOpts struct {
	in       string
	out      string
	format   string
	vartype  string
	strength float64
}

var bqmopts = bqmOpts{}

func NewBQMCmd() *cobra.Command {

	bqmCmd := &cobra.Command{
		Use:   "bqm",
		Short: "Build a binary quadratic model with penalty gadgets",
		Long: `Reduces the polynomial and ties every product variable to its factors with a penalty gadget,
scaled by the strength. Too small strengths produce models whose ground states break the products.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vartype, err := resolveVartype(bqmopts.vartype)
			if err != nil {
				return err
			}
			p, err := loadPolynomial(bqmopts.in, vartype)
			if err != nil {
				return err
			}
			if vartype == "" {
				vartype = p.Vartype
			}
			strength := bqmopts.strength
			if !cmd.Flags().Changed("strength") {
				strength = defaults.Strength
			}
			m, reductions, err := quadratize.MakeQuadratic(p, strength, vartype, nil)
			if err != nil {
				return err
			}
			logrus.Infof("Introduced %d product variables.", len(reductions))
			return writeDocument(bqmopts.out, bqmopts.format, toBQM(m, reductions))
		},
	}

	bqmCmd.Flags().StringVarP(&bqmopts.in, "input", "i", "polynomial.yaml", "polynomial file")
	bqmCmd.Flags().StringVarP(&bqmopts.out, "output", "o", "", "where to write the model, stdout if empty")
	bqmCmd.Flags().StringVarP(&bqmopts.format, "format", "f", "", "output format, yaml or json")
	bqmCmd.Flags().StringVar(&bqmopts.vartype, "vartype", "", "vartype of the model, BINARY or SPIN")
	bqmCmd.Flags().Float64VarP(&bqmopts.strength, "strength", "s", 1.0, "scale of the penalty gadgets")
	return bqmCmd
}
