package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tailored-agentic-units/sieve"
	"github.com/tailored-agentic-units/sieve/config"
)

var (
	filterInput  string
	filterConfig string
	filterRoot   string
	filterText   bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter a JSON Lines event stream by severity thresholds",
	Long: `Read events as JSON Lines, drop those below their namespace's
severity threshold, and write the survivors to stdout.

Thresholds come from a config file (--config); --root-level overrides
the resolution backstop. Events missing a severity or namespace are
dropped as malformed.`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVarP(&filterInput, "in", "i", "-", "input file (- for stdin)")
	filterCmd.Flags().StringVar(&filterConfig, "config", "", "config file (.json, .yaml, .toml)")
	filterCmd.Flags().StringVar(&filterRoot, "root-level", "", "root threshold overriding the config")
	filterCmd.Flags().BoolVar(&filterText, "text", false, "write classic log text instead of JSON Lines")
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if filterConfig != "" {
		loaded, err := config.Load(filterConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	predicate, err := cfg.Predicate()
	if err != nil {
		return err
	}
	if filterRoot != "" {
		lvl, err := sieve.ParseLevel(filterRoot)
		if err != nil {
			return err
		}
		if err := predicate.SetRootThreshold(lvl); err != nil {
			return err
		}
	}

	in, err := openInput(filterInput)
	if err != nil {
		return err
	}
	defer in.Close()
	events, err := sieve.ReadJSONLog(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var target sieve.Observer
	if filterText {
		target = sieve.NewWriterObserver(out)
	} else {
		target = sieve.NewJSONObserver(out)
	}
	filtered := sieve.NewFilteringObserver(target, predicate)
	for _, e := range events {
		filtered.OnEvent(cmd.Context(), e)
	}
	return nil
}
