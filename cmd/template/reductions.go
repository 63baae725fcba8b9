package template

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/api/quadratize"
)

func Render(writer io.Writer, results []*quadratize.ReductionResult) error {
	totalReductions := 0

	tabWriter := tabwriter.NewWriter(writer, 0, 8, 1, '\t', 0)
	if _, err := fmt.Fprintln(tabWriter, "Polynomial\tTerms\tReductions\tIndexed Pairs\tMax Multiplicity"); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	for _, result := range results {
		totalReductions += result.Stats.Reductions
		if _, err := fmt.Fprintf(tabWriter, "%s\t%d\t%d\t%d\t%d\n", result.Source, len(result.Terms), result.Stats.Reductions, result.Stats.PairsIndexed, result.Stats.MaxMultiplicity); err != nil {
			return fmt.Errorf("failed to write entry: %v", err)
		}
		for _, c := range result.Constraints {
			if _, err := fmt.Fprintf(tabWriter, " %s = %s\t\t\t\t\n", c.Product, product(c.Variables)); err != nil {
				return fmt.Errorf("failed to write entry: %v", err)
			}
		}
	}
	if _, err := fmt.Fprintln(tabWriter, "\t\t\t\t\nSummary:\t\t\t\t"); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	if _, err := fmt.Fprintf(tabWriter, "Reduced %d polynomials with %d product variables\t\t\t\t\n", len(results), totalReductions); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	if err := tabWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %v", err)
	}
	return nil
}

func product(vars []api.Variable) string {
	s := make([]string, len(vars))
	for i, v := range vars {
		s[i] = string(v)
	}
	return strings.Join(s, " * ")
}
