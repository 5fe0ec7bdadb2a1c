package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"marketspy/internal/core"
)

// PrintableHTML renders the markdown report as a standalone page styled for print-to-PDF.
func PrintableHTML(niche string, data core.MarketResearchResult, sources []core.SourceCitation) (string, error) {
	page := printPage{
		Title: "Relatório de Mercado: " + displayNiche(niche),
		Body:  renderMarkdown(Markdown(niche, data, sources)),
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to render printable report: %w", err)
	}
	return buf.String(), nil
}

type printPage struct {
	Title string
	Body  template.HTML
}

// renderMarkdown converts markdown to HTML. Raw HTML in the input is dropped and only
// safe link schemes become anchors, since the text comes from the model.
func renderMarkdown(text string) template.HTML {
	if text == "" {
		return template.HTML("")
	}

	mdParser := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML | mdhtml.Safelink,
	})

	return template.HTML(markdown.ToHTML([]byte(text), mdParser, renderer))
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; color: #1e293b; max-width: 820px; margin: 0 auto; padding: 32px; line-height: 1.55; }
h1 { color: #0891b2; border-bottom: 2px solid #e2e8f0; padding-bottom: 8px; }
h2 { color: #0f172a; margin-top: 32px; }
h3 { color: #0e7490; }
h4 { color: #475569; margin-bottom: 4px; }
a { color: #2563eb; word-break: break-all; }
@media print {
  body { padding: 0; max-width: none; }
  h2, h3 { page-break-after: avoid; }
  h3 { page-break-before: auto; }
  a { color: inherit; text-decoration: none; }
}
</style>
</head>
<body>
<article class="report">
{{.Body}}
</article>
</body>
</html>
`))
