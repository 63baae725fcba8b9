package main

import (
	"github.com/rmohr/quadratize/pkg/quadratize"
	"github.com/spf13/cobra"
)

type cqmOpts struct {
	in      string
	out     string
	format  string
	vartype string
}

var cqmopts = cqmOpts{}

func NewCQMCmd() *cobra.Command {

	cqmCmd := &cobra.Command{
		Use:   "cqm",
		Short: "Build a constrained quadratic model",
		Long:  `Reduces the polynomial and adds the equality constraint u*v - p == 0 for every product variable p.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vartype, err := resolveVartype(cqmopts.vartype)
			if err != nil {
				return err
			}
			p, err := loadPolynomial(cqmopts.in, vartype)
			if err != nil {
				return err
			}
			m, err := quadratize.MakeQuadraticCQM(p, vartype, nil)
			if err != nil {
				return err
			}
			return writeDocument(cqmopts.out, cqmopts.format, toCQM(m))
		},
	}

	cqmCmd.Flags().StringVarP(&cqmopts.in, "input", "i", "polynomial.yaml", "polynomial file")
	cqmCmd.Flags().StringVarP(&cqmopts.out, "output", "o", "", "where to write the model, stdout if empty")
	cqmCmd.Flags().StringVarP(&cqmopts.format, "format", "f", "", "output format, yaml or json")
	cqmCmd.Flags().StringVar(&cqmopts.vartype, "vartype", "", "vartype of the model, BINARY or SPIN")
	return cqmCmd
}
