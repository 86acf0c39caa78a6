// Package tutorial prints the pipeboard quick start guide
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
)

//go:embed tutorial.md
var tutorialContent string

const tutorialWidth = 90

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show a quick start guide",
		Long: `Show a walkthrough of the pipeboard workflow: sub-accounts, pipelines,
lanes, tickets and reordering. Use --raw for plain markdown.`,
		Run: func(cmd *cobra.Command, args []string) {
			raw, _ := cmd.Flags().GetBool("raw")
			outputTutorial(raw)
		},
	}
	cmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
	return cmd
}

func outputTutorial(raw bool) {
	if raw {
		fmt.Print(tutorialContent)
		return
	}
	fmt.Print(cli.RenderMarkdown(tutorialContent, tutorialWidth))
}
