package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"marketspy/internal/config"
	"marketspy/internal/core"
	"marketspy/internal/export"
	"marketspy/internal/logger"
	"marketspy/internal/render"
	"marketspy/internal/research"
)

type researchOptions struct {
	format    string
	outputDir string
	save      bool
	copy      bool
	email     bool
	noColor   bool
}

// NewResearchCmd creates the research command
func NewResearchCmd() *cobra.Command {
	var opts researchOptions

	researchCmd := &cobra.Command{
		Use:   "research [topic]",
		Short: "Research validated info-products in a niche",
		Long: `Ask Gemini for a grounded market report on a niche and print it.

Without a topic the model scans the whole market for 3 to 5 high-demand opportunities.

Examples:
  marketspy research "emagrecimento feminino"
  marketspy research                                   # broad market scan
  marketspy research "yoga" --format csv --output reports
  marketspy research "yoga" --format html --save       # write into output.directory
  marketspy research "yoga" --format markdown --copy   # copy the report for Google Docs
  marketspy research "yoga" --email                    # print an email link`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := ""
			if len(args) == 1 {
				topic = args[0]
			}
			return runResearch(cmd.Context(), topic, opts, cmd.OutOrStdout())
		},
	}

	researchCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: dashboard, json, text, slides, csv, markdown, html (default from config)")
	researchCmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Write the report into this directory instead of stdout")
	researchCmd.Flags().BoolVarP(&opts.save, "save", "s", false, "Write the report into output.directory from config instead of stdout")
	researchCmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the report to the clipboard (slides summary for --format slides)")
	researchCmd.Flags().BoolVar(&opts.email, "email", false, "Print a link that opens an email with the report")
	researchCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Plain dashboard without colors or borders")

	return researchCmd
}

func runResearch(ctx context.Context, topic string, opts researchOptions, out io.Writer) error {
	cfg := config.Get()
	if opts.format == "" {
		opts.format = cfg.Output.Format
	}
	if !isKnownFormat(opts.format) {
		return fmt.Errorf("unknown format %q. Supported: %s", opts.format, strings.Join(outputFormats, ", "))
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newResearchService(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Info("Researching niche", "topic", render.Heading(topic))
	outcome, err := svc.PerformResearch(ctx, topic)
	if err != nil {
		// The service already logged the details.
		return errors.New(research.UserMessage)
	}

	content, err := formatOutcome(outcome, opts.format, opts.noColor)
	if err != nil {
		return err
	}

	if dir, ok := outputDirectory(opts, cfg.Output); ok {
		path, err := export.WriteFile(content, dir, export.Filename(topic, opts.format))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Relatório salvo em %s\n", path)
	} else {
		fmt.Fprint(out, content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Fprintln(out)
		}
	}

	cb := export.SystemClipboard{}
	if opts.copy {
		if err := copyForFormat(cb, outcome, opts.format); err != nil {
			logger.Warn("Could not copy report", "error", err)
		} else if opts.format == "slides" {
			fmt.Fprintf(out, "Resumo copiado! Cole em %s\n", export.SlidesURL)
		} else {
			fmt.Fprintf(out, "Relatório copiado! Cole em %s\n", export.DocsURL)
		}
	}

	if opts.email {
		draft := export.EmailLink(topic, outcome.Data)
		if draft.CopyToClipboard {
			if err := cb.WriteAll(draft.Body); err != nil {
				logger.Warn("Could not copy report for email", "error", err)
			} else {
				fmt.Fprintln(out, "Relatório copiado! Cole no corpo do email.")
			}
		}
		fmt.Fprintln(out, draft.URL)
	}

	return nil
}

// outputDirectory picks where to save the report. An explicit --output wins over
// --save, which uses the configured output directory.
func outputDirectory(opts researchOptions, out config.Output) (string, bool) {
	switch {
	case opts.outputDir != "":
		return opts.outputDir, true
	case opts.save:
		return out.Directory, true
	default:
		return "", false
	}
}

var outputFormats = []string{"dashboard", "json", "text", "slides", "csv", "markdown", "html"}

func isKnownFormat(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// formatOutcome renders outcome in one of outputFormats.
func formatOutcome(outcome *core.ResearchOutcome, format string, plain bool) (string, error) {
	switch format {
	case "dashboard":
		return render.Dashboard(outcome, render.Options{Plain: plain, Width: 100}), nil
	case "json":
		raw, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		return string(raw), nil
	case "text":
		return export.ReportText(outcome.Topic, outcome.Data), nil
	case "slides":
		return export.SlidesSummary(outcome.Topic, outcome.Data), nil
	case "csv":
		return export.CSV(outcome.Data), nil
	case "markdown":
		return export.Markdown(outcome.Topic, outcome.Data, outcome.Sources), nil
	case "html":
		return export.PrintableHTML(outcome.Topic, outcome.Data, outcome.Sources)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func copyForFormat(cb export.Clipboard, outcome *core.ResearchOutcome, format string) error {
	text := export.ReportText(outcome.Topic, outcome.Data)
	if format == "slides" {
		text = export.SlidesSummary(outcome.Topic, outcome.Data)
	}
	return cb.WriteAll(text)
}
