package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "foundry",
		Short:         "Foundry builds forms and chat interfaces for AI agents",
		Long:          `Foundry manages projects, agents, tools and the form or chat interfaces that front them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to the YAML config file (default foundry.yaml)")
	flags.StringVarP(&a.project, "project", "p", "", "Project to operate on (default \"Project 1\")")
	flags.StringVar(&a.backend, "store", "", "Store backend: memory, file or redis")
	flags.StringVar(&a.dataDir, "data-dir", "", "Directory used by the file store")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&a.metrics, "metrics", false, "Print store metrics to stderr when the command ends")
	flags.BoolVarP(&a.assumeYes, "yes", "y", false, "Answer yes to confirmations")

	root.AddCommand(
		newProjectCmd(a),
		newAgentCmd(a),
		newToolCmd(a),
		newInterfaceCmd(a),
		newFieldCmd(a),
		newPreviewCmd(a),
		newExportCmd(a),
		newLintCmd(a),
	)
	return root
}
