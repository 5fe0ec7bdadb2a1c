package export

import (
	"fmt"
	"strings"

	"marketspy/internal/core"
)

// Markdown renders the full report, every product field included, with the sources last.
func Markdown(niche string, data core.MarketResearchResult, sources []core.SourceCitation) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Relatório de Inteligência de Mercado: %s\n\n", displayNiche(niche))
	sb.WriteString("## Visão geral\n\n")
	sb.WriteString(data.NicheOverview + "\n\n")

	best := data.BestProduct
	sb.WriteString("## Melhor oportunidade\n\n")
	fmt.Fprintf(&sb, "**Produto original:** %s\n\n", best.OriginalName)
	if best.ReasonSelected != "" {
		fmt.Fprintf(&sb, "**Por que foi escolhido:** %s\n\n", best.ReasonSelected)
	}
	ev := best.EnhancedVersion
	fmt.Fprintf(&sb, "### %s\n\n", ev.NewName)
	writeField(&sb, "Conceito", ev.Concept)
	writeField(&sb, "Nova headline", ev.NewCopyHeadline)
	writeList(&sb, "Diferenciais", ev.Differentials)
	writeField(&sb, "Lógica", ev.Logic)

	sb.WriteString("## Concorrentes mapeados\n\n")
	for i, p := range data.Products {
		writeProduct(&sb, i+1, p)
	}

	if len(sources) > 0 {
		sb.WriteString("## Fontes\n\n")
		for _, s := range sources {
			fmt.Fprintf(&sb, "- [%s](%s)\n", s.Title, s.URI)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeProduct(sb *strings.Builder, n int, p core.Product) {
	fmt.Fprintf(sb, "### %d. %s\n\n", n, p.Name)
	fmt.Fprintf(sb, "- **Anunciante:** %s\n", p.AdvertiserName)
	fmt.Fprintf(sb, "- **Preço:** %s\n", p.Price)
	fmt.Fprintf(sb, "- **Tipo:** %s\n", p.Type)
	fmt.Fprintf(sb, "- **Dor:** %s\n", p.PainPoint)
	fmt.Fprintf(sb, "- **Tempo de veiculação:** %s\n", p.AdsData.ActiveTime)
	fmt.Fprintf(sb, "- **Escala:** %s\n\n", p.AdsData.QuantityEstimation)
	writeField(sb, "Por que vende", p.StrategicReasoning)

	sb.WriteString("#### Público\n\n")
	writeField(sb, "Demografia", p.Audience.Demographics)
	writeField(sb, "Psicografia", p.Audience.Psychographics)
	writeField(sb, "Nível de consciência", p.Audience.AwarenessLevel)

	sb.WriteString("#### Copy\n\n")
	writeField(sb, "Headline", p.Copy.Headline)
	writeField(sb, "Subheadline", p.Copy.Subheadline)
	writeList(sb, "Bullets", p.Copy.Bullets)
	writeField(sb, "CTA", p.Copy.CTA)
	writeList(sb, "Promessas", p.Copy.Promises)
	writeField(sb, "Mecanismo único", p.Copy.UniqueMechanism)

	if len(p.PageStructure) > 0 {
		sb.WriteString("#### Estrutura da página\n\n")
		for i, section := range p.PageStructure {
			fmt.Fprintf(sb, "%d. %s\n", i+1, section)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("#### Estratégia\n\n")
	writeList(sb, "Gatilhos", p.Strategy.Triggers)
	writeList(sb, "Vieses", p.Strategy.Biases)
	writeList(sb, "Emoções", p.Strategy.Emotions)
	writeList(sb, "Argumentos-chave", p.Strategy.KeyArguments)

	sb.WriteString("#### Oportunidades\n\n")
	writeField(sb, "Brechas", p.MarketInsights.Opportunities)
	writeField(sb, "Melhorias", p.MarketInsights.Improvements)
}

// writeField skips empty values so optional fields leave no dangling labels.
func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "**%s:** %s\n\n", label, value)
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "**%s:**\n\n", label)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

func displayNiche(niche string) string {
	if strings.TrimSpace(niche) == "" {
		return "Varredura geral"
	}
	return niche
}
