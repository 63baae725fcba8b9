package main

import (
	"fmt"
	"os"

	"github.com/rmohr/quadratize/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	verbose    bool
	configFile string
}

var rootopts = rootOpts{}

// defaults holds the loaded config file, it is set before any command runs.
var defaults = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "quadratize",
	Short: "quadratize reduces higher-order binary polynomials to quadratic models",
	Long: `The tool rewrites pseudo-boolean polynomials of any degree into binary quadratic models
by introducing product variables, either tied to their factors by penalty gadgets or by equality constraints`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootopts.verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		loaded, err := config.LoadConfig(rootopts.configFile)
		if err != nil {
			return err
		}
		defaults = loaded
		return nil
	},
}

func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&rootopts.verbose, "verbose", "v", false, "log every reduction step")
	rootCmd.PersistentFlags().StringVarP(&rootopts.configFile, "config", "c", "", "config file, searched in the XDG config directories by default")
	rootCmd.AddCommand(NewReduceCmd())
	rootCmd.AddCommand(NewBQMCmd())
	rootCmd.AddCommand(NewCQMCmd())
	rootCmd.AddCommand(NewCompleteCmd())
	rootCmd.AddCommand(NewInitCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
