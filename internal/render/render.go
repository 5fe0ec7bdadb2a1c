// Package render draws a finished research outcome as a static terminal dashboard.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"marketspy/internal/core"
)

// Options controls dashboard layout.
type Options struct {
	Width int  // card width in columns; zero leaves lines unwrapped
	Plain bool // no colors or borders
}

type styles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	label    lipgloss.Style
	muted    lipgloss.Style
	bestCard lipgloss.Style
	card     lipgloss.Style
	price    lipgloss.Style
}

func newStyles(opts Options) styles {
	if opts.Plain {
		plain := lipgloss.NewStyle()
		return styles{
			title:    plain,
			section:  plain,
			label:    plain,
			muted:    plain,
			bestCard: plain.MarginBottom(1),
			card:     plain.MarginBottom(1),
			price:    plain,
		}
	}

	s := styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22D3EE")),
		section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8FAFC")).MarginTop(1),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B")).Italic(true),
		bestCard: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#FACC15")).Padding(0, 1).MarginBottom(1),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#334155")).Padding(0, 1).MarginBottom(1),
		price:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ADE80")),
	}
	if opts.Width > 0 {
		s.bestCard = s.bestCard.Width(opts.Width)
		s.card = s.card.Width(opts.Width)
	}
	return s
}

// Dashboard renders the overview, the best opportunity, every product and the sources.
func Dashboard(outcome *core.ResearchOutcome, opts Options) string {
	st := newStyles(opts)
	data := outcome.Data

	var sb strings.Builder
	sb.WriteString(st.title.Render("MARKET SPY // "+Heading(outcome.Topic)) + "\n\n")

	sb.WriteString(st.section.Render("Visão geral") + "\n")
	sb.WriteString(data.NicheOverview + "\n\n")

	sb.WriteString(st.bestCard.Render(bestProductCard(st, data.BestProduct)) + "\n")

	sb.WriteString(st.section.Render(fmt.Sprintf("Concorrentes mapeados (%d)", len(data.Products))) + "\n")
	if len(data.Products) == 0 {
		sb.WriteString(st.muted.Render("Nenhum produto validado encontrado.") + "\n")
	}
	for i, p := range data.Products {
		sb.WriteString(st.card.Render(productCard(st, i+1, p)) + "\n")
	}

	sb.WriteString(st.section.Render("Fontes") + "\n")
	if len(outcome.Sources) == 0 {
		sb.WriteString(st.muted.Render("Nenhuma fonte citada.") + "\n")
	}
	for _, src := range outcome.Sources {
		sb.WriteString(fmt.Sprintf("- %s %s\n", src.Title, st.muted.Render(src.URI)))
	}

	return sb.String()
}

// Heading is the title shown for topic; an empty topic is a broad scan.
func Heading(topic string) string {
	if strings.TrimSpace(topic) == "" {
		return "Varredura geral do mercado"
	}
	return topic
}

func bestProductCard(st styles, best core.BestProduct) string {
	ev := best.EnhancedVersion
	lines := []string{
		st.title.Render("★ MELHOR OPORTUNIDADE"),
		field(st, "Original", best.OriginalName),
		field(st, "Por quê", best.ReasonSelected),
		field(st, "Nova versão", ev.NewName),
		field(st, "Conceito", ev.Concept),
		field(st, "Headline", ev.NewCopyHeadline),
	}
	for _, d := range ev.Differentials {
		lines = append(lines, "  + "+d)
	}
	lines = append(lines, field(st, "Lógica", ev.Logic))
	return joinNonEmpty(lines)
}

func productCard(st styles, n int, p core.Product) string {
	lines := []string{
		fmt.Sprintf("%d. %s  %s", n, p.Name, st.price.Render(p.Price)),
		field(st, "Anunciante", p.AdvertiserName),
		field(st, "Tipo", p.Type),
		field(st, "Dor", p.PainPoint),
		field(st, "Anúncios", strings.TrimSpace(p.AdsData.ActiveTime+" · "+p.AdsData.QuantityEstimation)),
		field(st, "Headline", p.Copy.Headline),
		field(st, "Por que vende", p.StrategicReasoning),
		field(st, "Oportunidade", p.MarketInsights.Opportunities),
	}
	return joinNonEmpty(lines)
}

func field(st styles, label, value string) string {
	value = strings.Trim(value, " ·")
	if value == "" {
		return ""
	}
	return st.label.Render(label+":") + " " + value
}

func joinNonEmpty(lines []string) string {
	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
