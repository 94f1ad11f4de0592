package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

//go:embed guide.md
var guideMarkdown string

var guideWidth int

// guideCmd prints the control guide
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show how each control behaves",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderGuide(guideWidth, term.IsTerminal(int(os.Stdout.Fd())))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	guideCmd.Flags().IntVar(&guideWidth, "width", 80, "Word-wrap width")
}

// renderGuide renders the guide for a terminal, or as plain markdown when
// styled is false.
func renderGuide(width int, styled bool) (string, error) {
	if !styled {
		return guideMarkdown, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	return renderer.Render(guideMarkdown)
}
