package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"marketspy/internal/core"
)

func sampleOutcome() *core.ResearchOutcome {
	return &core.ResearchOutcome{
		Topic: "fitness",
		Data: core.MarketResearchResult{
			NicheOverview: "Nicho em alta.",
			Products: []core.Product{
				{Name: "Secar 21", Price: "R$ 97", AdvertiserName: "Fit", AdsData: core.AdsData{ActiveTime: "+6 meses"}},
				{Name: "Yoga Já", Price: "R$ 47"},
			},
			BestProduct: core.BestProduct{
				OriginalName:    "Secar 21",
				EnhancedVersion: core.EnhancedVersion{NewName: "Secar PRO", Differentials: []string{"App"}},
			},
		},
		Sources: []core.SourceCitation{{Title: "Hotmart", URI: "https://hotmart.com"}},
	}
}

func TestDashboard_Plain(t *testing.T) {
	out := Dashboard(sampleOutcome(), Options{Plain: true})

	for _, want := range []string{
		"MARKET SPY // fitness",
		"Nicho em alta.",
		"★ MELHOR OPORTUNIDADE",
		"Nova versão: Secar PRO",
		"  + App",
		"Concorrentes mapeados (2)",
		"1. Secar 21  R$ 97",
		"Anúncios: +6 meses",
		"2. Yoga Já  R$ 47",
		"- Hotmart https://hotmart.com",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, "Conceito:", "empty fields are omitted")
}

func TestDashboard_EmptyOutcome(t *testing.T) {
	out := Dashboard(&core.ResearchOutcome{}, Options{Plain: true})
	assert.Contains(t, out, "Varredura geral do mercado")
	assert.Contains(t, out, "Nenhum produto validado encontrado.")
	assert.Contains(t, out, "Nenhuma fonte citada.")
}

func TestDashboard_StyledKeepsContent(t *testing.T) {
	out := Dashboard(sampleOutcome(), Options{Width: 60})
	assert.Contains(t, out, "Secar PRO")
	assert.True(t, strings.Count(out, "Secar 21") >= 2)
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "emagrecimento", Heading("emagrecimento"))
	assert.Equal(t, "Varredura geral do mercado", Heading("   "))
}
