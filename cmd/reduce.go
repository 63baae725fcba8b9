package main

import (
	"os"

	"github.com/rmohr/quadratize/cmd/template"
	apiq "github.com/rmohr/quadratize/pkg/api/quadratize"
	"github.com/rmohr/quadratize/pkg/poly"
	"github.com/rmohr/quadratize/pkg/quadratize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type reduceOpts struct {
	in      []string
	out     string
	format  string
	workers int
	table   bool
}

var reduceopts = reduceOpts{}

func NewReduceCmd() *cobra.Command {

	reduceCmd := &cobra.Command{
		Use:   "reduce",
		Short: "Reduce polynomials to quadratic terms and product constraints",
		Long: `Reduces every given polynomial to terms of at most two variables. Each introduced product
variable is listed together with the two variables it replaces. Multiple files are reduced in parallel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var polys []*poly.BinaryPolynomial
			for _, in := range reduceopts.in {
				p, err := loadPolynomial(in, "")
				if err != nil {
					return err
				}
				polys = append(polys, p)
			}
			log.Infof("Reducing %d polynomials.", len(polys))
			results, err := quadratize.ReduceAll(cmd.Context(), polys, reduceopts.workers)
			if err != nil {
				return err
			}
			docs := make([]*apiq.ReductionResult, 0, len(results))
			for i, result := range results {
				docs = append(docs, toReductionResult(reduceopts.in[i], result))
			}
			if reduceopts.table {
				return template.Render(os.Stdout, docs)
			}
			return writeDocument(reduceopts.out, reduceopts.format, docs)
		},
	}

	reduceCmd.Flags().StringArrayVarP(&reduceopts.in, "input", "i", []string{"polynomial.yaml"}, "polynomial files to reduce")
	reduceCmd.Flags().StringVarP(&reduceopts.out, "output", "o", "", "where to write the result, stdout if empty")
	reduceCmd.Flags().StringVarP(&reduceopts.format, "format", "f", "", "output format, yaml or json")
	reduceCmd.Flags().IntVarP(&reduceopts.workers, "workers", "w", 0, "how many polynomials to reduce at the same time, 0 means no limit")
	reduceCmd.Flags().BoolVarP(&reduceopts.table, "table", "t", false, "print a summary table instead of the reduced terms")
	return reduceCmd
}
