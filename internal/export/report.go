// Package export formats a research report for sharing: plain text, slide bullets, CSV,
// markdown, a printable HTML page and email links.
package export

import (
	"fmt"
	"strings"

	"marketspy/internal/core"
)

const (
	// DocsURL opens a blank Google Doc to paste the report into.
	DocsURL = "https://docs.new"
	// SlidesURL opens a blank Google Slides deck to paste the summary into.
	SlidesURL = "https://slides.new"
)

// ReportText builds the plain-text intelligence report.
func ReportText(niche string, data core.MarketResearchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "RELATÓRIO DE INTELIGÊNCIA DE MERCADO: %s\n\n", strings.ToUpper(niche))
	fmt.Fprintf(&sb, "VISÃO GERAL: %s\n\n", data.NicheOverview)

	sb.WriteString("=== MELHOR OPORTUNIDADE ===\n")
	fmt.Fprintf(&sb, "Produto Original: %s\n", data.BestProduct.OriginalName)
	fmt.Fprintf(&sb, "Novo Nome Sugerido: %s\n", data.BestProduct.EnhancedVersion.NewName)
	fmt.Fprintf(&sb, "Conceito: %s\n\n", data.BestProduct.EnhancedVersion.Concept)

	sb.WriteString("=== CONCORRENTES MAPEADOS ===\n")
	for i, p := range data.Products {
		fmt.Fprintf(&sb, "\n%d. %s (%s)\n", i+1, p.Name, p.AdvertiserName)
		fmt.Fprintf(&sb, "   Preço: %s\n", p.Price)
		fmt.Fprintf(&sb, "   Headline: %s\n", p.Copy.Headline)
		fmt.Fprintf(&sb, "   Por que vende: %s\n", p.StrategicReasoning)
	}

	return sb.String()
}

// SlidesSummary builds the short bullet summary meant for a slide deck.
func SlidesSummary(niche string, data core.MarketResearchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "NICHO: %s\n\n", niche)
	fmt.Fprintf(&sb, "VENCEDOR: %s\n", data.BestProduct.EnhancedVersion.NewName)
	sb.WriteString("\nCONCORRENTES:\n")
	for _, p := range data.Products {
		fmt.Fprintf(&sb, "- %s (%s)\n", p.Name, p.Price)
	}

	return sb.String()
}
