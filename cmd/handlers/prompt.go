package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"marketspy/internal/query"
)

// NewPromptCmd creates the prompt command, which prints the request sent to the model.
func NewPromptCmd() *cobra.Command {
	var userOnly bool

	cmd := &cobra.Command{
		Use:   "prompt [topic]",
		Short: "Print the prompt that would be sent for a topic",
		Long:  `Print the system instruction and user prompt built for a topic without calling the model.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := ""
			if len(args) == 1 {
				topic = args[0]
			}
			q := query.Build(topic)
			out := cmd.OutOrStdout()

			if !userOnly {
				fmt.Fprintln(out, "=== SYSTEM INSTRUCTION ===")
				fmt.Fprintln(out, q.SystemInstruction)
				fmt.Fprintln(out)
				fmt.Fprintf(out, "=== TOOLS === web_search=%t maps_search=%t\n\n", q.Tools.WebSearch, q.Tools.MapsSearch)
				fmt.Fprintln(out, "=== USER PROMPT ===")
			}
			fmt.Fprintln(out, q.UserPrompt)
			return nil
		},
	}

	cmd.Flags().BoolVar(&userOnly, "user-only", false, "Print only the user prompt")

	return cmd
}
