package main

import (
	"encoding/json"
	"fmt"

	"github.com/4thel00z/diverse/internal"
	"github.com/spf13/cobra"
)

func NewSimilarCmd(similarUC *internal.SimilarUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <key>",
		Short: "Find the nearest corpus neighbors of an item",
		Long:  `Query the corpus for the items most similar to the given key, by angular distance over an in-memory annoy index.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeSimilarRunner(similarUC),
	}

	cmd.Flags().IntP("number", "n", 10, "Maximum results")
	return cmd
}

func makeSimilarRunner(similarUC *internal.SimilarUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("number")
		scopeHint, _ := cmd.Flags().GetString("scope")
		asJSON, _ := cmd.Flags().GetBool("json")

		out, err := similarUC.Execute(cmd.Context(), internal.SimilarInput{
			Key: args[0], Limit: limit, Scope: scopeHint,
		})
		if err != nil {
			return fmt.Errorf("similar: %w", err)
		}

		if asJSON {
			results := make([]map[string]any, 0, len(out.Results))
			for _, r := range out.Results {
				results = append(results, map[string]any{
					"key":   r.Key,
					"score": r.Score,
				})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		for _, r := range out.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f  %s\n", r.Score, r.Key)
		}
		return nil
	}
}
