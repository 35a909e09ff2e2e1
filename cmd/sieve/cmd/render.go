package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tailored-agentic-units/sieve"
)

var (
	renderInput string
	renderColor bool
)

var levelStyles = map[sieve.Level]lipgloss.Style{
	sieve.LevelDebug:    lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")), // Gray
	sieve.LevelInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")), // Cyan
	sieve.LevelWarn:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")), // Amber
	sieve.LevelError:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")), // Red
	sieve.LevelCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true),
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a JSON Lines event stream as classic log text",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "-", "input file (- for stdin)")
	renderCmd.Flags().BoolVar(&renderColor, "color", false, "colorize lines by severity")
}

func runRender(cmd *cobra.Command, args []string) error {
	in, err := openInput(renderInput)
	if err != nil {
		return err
	}
	defer in.Close()
	events, err := sieve.ReadJSONLog(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		line := sieve.ClassicLogText(e)
		if renderColor {
			if lvl, ok := e.Level(); ok {
				if style, styled := levelStyles[lvl]; styled {
					line = style.Render(strings.TrimSuffix(line, "\n")) + "\n"
				}
			}
		}
		fmt.Fprint(out, line)
	}
	return nil
}
