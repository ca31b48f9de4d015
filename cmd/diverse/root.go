package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "diverse",
		Short:         "Diverse subset selection for embedding vectors",
		Long:          `Select a diverse, non-redundant subset from a batch of embedding vectors using exact lazy-greedy coverage maximization.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("scope", "", "Target scope (global|project)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewInitCmd(),
		NewSelectCmd(a.selectUC, a.selectCorpus),
		NewCorpusCmd(a.corpusAdd, a.corpusList, a.corpusRemove),
		NewSimilarCmd(a.similarUC),
		NewWatchCmd(a.selectUC),
	)
}
