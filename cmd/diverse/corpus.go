package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/4thel00z/diverse/internal"
	"github.com/spf13/cobra"
)

func NewCorpusCmd(
	addUC *internal.CorpusAddUseCase,
	listUC *internal.CorpusListUseCase,
	removeUC *internal.CorpusRemoveUseCase,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the vector corpus",
		Long:  `Add, list, and remove embedding vectors in the scope's corpus.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(
		newCorpusAddCmd(addUC),
		newCorpusListCmd(listUC),
		newCorpusRemoveCmd(removeUC),
	)
	return cmd
}

func newCorpusAddCmd(addUC *internal.CorpusAddUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [key]",
		Short: "Add vectors to the corpus",
		Long:  `Add a single vector by key with --vector, or bulk-load named vectors from a JSON/JSONL file with --file.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makeCorpusAddRunner(addUC),
	}

	cmd.Flags().String("vector", "", "Comma-separated vector components")
	cmd.Flags().String("file", "", "JSON/JSONL file of named vectors")
	return cmd
}

func makeCorpusAddRunner(addUC *internal.CorpusAddUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rawVector, _ := cmd.Flags().GetString("vector")
		file, _ := cmd.Flags().GetString("file")
		scopeHint, _ := cmd.Flags().GetString("scope")

		if file != "" {
			return corpusAddFromFile(cmd, addUC, file, scopeHint)
		}

		if len(args) != 1 || rawVector == "" {
			return fmt.Errorf("provide <key> --vector or --file")
		}

		vector, err := parseVectorFlag(rawVector)
		if err != nil {
			return err
		}

		if err := addUC.Execute(cmd.Context(), internal.CorpusAddInput{
			Key: args[0], Vector: vector, Scope: scopeHint,
		}); err != nil {
			return fmt.Errorf("corpus add: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "added %s (dim %d)\n", args[0], len(vector))
		return nil
	}
}

func corpusAddFromFile(cmd *cobra.Command, addUC *internal.CorpusAddUseCase, file, scopeHint string) error {
	vectors, err := internal.LoadVectors(file)
	if err != nil {
		return err
	}

	added := 0
	for i, nv := range vectors {
		if nv.Key == "" {
			return fmt.Errorf("entry %d in %s has no key", i, file)
		}
		if err := addUC.Execute(cmd.Context(), internal.CorpusAddInput{
			Key: nv.Key, Vector: nv.Vector, Scope: scopeHint,
		}); err != nil {
			return fmt.Errorf("corpus add %s: %w", nv.Key, err)
		}
		added++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added %d vectors\n", added)
	return nil
}

func parseVectorFlag(raw string) ([]float32, error) {
	parts := strings.Split(raw, ",")
	vector := make([]float32, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("parse vector component %q: %w", part, err)
		}
		vector = append(vector, float32(f))
	}
	return vector, nil
}

func newCorpusListCmd(listUC *internal.CorpusListUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List corpus items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scopeHint, _ := cmd.Flags().GetString("scope")
			asJSON, _ := cmd.Flags().GetBool("json")

			out, err := listUC.Execute(cmd.Context(), internal.CorpusListInput{Scope: scopeHint})
			if err != nil {
				return fmt.Errorf("corpus list: %w", err)
			}

			if asJSON {
				items := make([]map[string]any, 0, len(out.Items))
				for _, item := range out.Items {
					items = append(items, map[string]any{
						"key":       item.Key,
						"dimension": item.Dimension,
						"added_at":  item.AddedAt,
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			for _, item := range out.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  (dim %d)\n", item.Key, item.Dimension)
			}
			return nil
		},
	}
}

func newCorpusRemoveCmd(removeUC *internal.CorpusRemoveUseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove a corpus item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeHint, _ := cmd.Flags().GetString("scope")

			if err := removeUC.Execute(cmd.Context(), internal.CorpusRemoveInput{
				Key: args[0], Scope: scopeHint,
			}); err != nil {
				return fmt.Errorf("corpus rm: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}
