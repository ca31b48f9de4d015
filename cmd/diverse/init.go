package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/4thel00z/diverse/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a corpus store",
		Long:  `Initialize a new .diverse directory with a default config and an empty corpus.`,
		RunE:  runInit,
	}

	cmd.Flags().Bool("global", false, "Initialize global scope (~/.diverse)")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	isGlobal, _ := cmd.Flags().GetBool("global")

	resolver := internal.NewScopeResolver()

	var scope internal.Scope
	if isGlobal {
		scope = resolver.Global()
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		scope = internal.Scope{
			Type:      internal.ScopeProject,
			Path:      cwd,
			StorePath: filepath.Join(cwd, ".diverse"),
		}
	}

	if _, err := os.Stat(scope.StorePath); err == nil {
		return fmt.Errorf("already initialized at %s", scope.StorePath)
	}

	if err := os.MkdirAll(scope.CorpusPath(), 0755); err != nil {
		return fmt.Errorf("create corpus directory: %w", err)
	}

	cfg := internal.DefaultConfig()
	if err := internal.SaveConfig(scope, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized corpus store at %s\n", scope.StorePath)
	return nil
}
