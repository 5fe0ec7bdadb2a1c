package handlers

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"marketspy/internal/config"
	"marketspy/internal/export"
	"marketspy/internal/research"
	"marketspy/internal/tui"
)

// NewTUICmd creates the TUI command
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive research dashboard",
		Long:  `Launch the terminal dashboard to research niches one after another. Only the latest search is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := newResearchService(ctx, config.Get())
			if err != nil {
				return err
			}
			return tui.Run(ctx, research.NewSession(svc), export.SystemClipboard{})
		},
	}
}
