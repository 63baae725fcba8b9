package main

import (
	"github.com/rmohr/quadratize/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type initOpts struct {
	out string
}

var initopts = initOpts{}

func NewInitCmd() *cobra.Command {

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with the default settings",
		Long:  `Create a config file with the default vartype, strength and output format. Existing files are kept.`,
		// the config file may not exist yet
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := initopts.out
			if out == "" {
				path, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				out = path
			}
			if err := config.WriteDefaultConfig(out); err != nil {
				return err
			}
			logrus.Infof("Wrote config file %s.", out)
			return nil
		},
	}

	initCmd.Flags().StringVarP(&initopts.out, "output", "o", "", "where to write the config file")
	return initCmd
}
