package main

import (
	"encoding/json"
	"fmt"

	"github.com/4thel00z/diverse/internal"
	"github.com/spf13/cobra"
)

func NewSelectCmd(
	selectUC *internal.SelectUseCase,
	corpusUC *internal.SelectCorpusUseCase,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [file]",
		Short: "Select a diverse subset of vectors",
		Long: `Select a diverse subset from embedding vectors read from a JSON/JSONL file,
or from the corpus with --corpus. Without -k the subset size is chosen
automatically from the decay of marginal gains.`,
		Args: cobra.MaximumNArgs(1),
		RunE: makeSelectRunner(selectUC, corpusUC),
	}

	cmd.Flags().IntP("k", "k", 0, "Number of items to select (0 = automatic)")
	cmd.Flags().Bool("corpus", false, "Select from the corpus instead of a file")
	cmd.Flags().Bool("gains", false, "Print the marginal gain of each pick")
	cmd.Flags().Float64("ratio", 0, "Saturation gain ratio for automatic sizing")
	cmd.Flags().Int("window", 0, "Saturation window for automatic sizing")
	return cmd
}

func makeSelectRunner(
	selectUC *internal.SelectUseCase,
	corpusUC *internal.SelectCorpusUseCase,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		k, _ := cmd.Flags().GetInt("k")
		fromCorpus, _ := cmd.Flags().GetBool("corpus")
		showGains, _ := cmd.Flags().GetBool("gains")
		ratio, _ := cmd.Flags().GetFloat64("ratio")
		window, _ := cmd.Flags().GetInt("window")
		scopeHint, _ := cmd.Flags().GetString("scope")
		asJSON, _ := cmd.Flags().GetBool("json")

		var out *internal.SelectOutput
		var err error

		switch {
		case fromCorpus:
			if len(args) > 0 {
				return fmt.Errorf("--corpus does not take a file argument")
			}
			out, err = corpusUC.Execute(cmd.Context(), internal.SelectCorpusInput{
				K: k, Scope: scopeHint, GainRatio: ratio, Window: window,
			})
		case len(args) == 1:
			var vectors []internal.NamedVector
			vectors, err = internal.LoadVectors(args[0])
			if err != nil {
				return err
			}
			out, err = selectUC.Execute(cmd.Context(), selectInputFrom(vectors, k, scopeHint, ratio, window))
		default:
			return fmt.Errorf("provide a vectors file or --corpus")
		}
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}

		return writeSelection(cmd, out, showGains, asJSON)
	}
}

func selectInputFrom(vectors []internal.NamedVector, k int, scopeHint string, ratio float64, window int) internal.SelectInput {
	input := internal.SelectInput{
		Vectors:   make([][]float32, len(vectors)),
		K:         k,
		Scope:     scopeHint,
		GainRatio: ratio,
		Window:    window,
	}

	named := false
	keys := make([]string, len(vectors))
	for i, nv := range vectors {
		input.Vectors[i] = nv.Vector
		keys[i] = nv.Key
		if nv.Key != "" {
			named = true
		}
	}
	if named {
		input.Keys = keys
	}

	return input
}

func writeSelection(cmd *cobra.Command, out *internal.SelectOutput, showGains, asJSON bool) error {
	// Auto mode always reports gains so the cutoff can be audited.
	showGains = showGains || out.Auto

	if asJSON {
		picks := make([]map[string]any, 0, len(out.Picks))
		for _, p := range out.Picks {
			entry := map[string]any{"index": p.Index}
			if p.Key != "" {
				entry["key"] = p.Key
			}
			if showGains {
				entry["gain"] = p.Gain
			}
			picks = append(picks, entry)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"picks": picks,
			"auto":  out.Auto,
		})
	}

	for _, p := range out.Picks {
		line := fmt.Sprintf("%d", p.Index)
		if p.Key != "" {
			line += "  " + p.Key
		}
		if showGains {
			line += fmt.Sprintf("  %.4f", p.Gain)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
