// Package query builds the prompt/instruction pair sent to the generative model for a research run.
package query

import (
	"fmt"
	"strings"

	"marketspy/internal/core"
)

// MaxProducts is the product ceiling written into the system instruction.
const MaxProducts = 5

const (
	// BroadScanPrompt asks for the best validated opportunities when no niche is given.
	BroadScanPrompt = "Realize uma pesquisa ampla de mercado para identificar de 3 a 5 das melhores oportunidades de infoprodutos VALIDADOS e LUCRATIVOS no momento atual (Brasil e Mundo). Pesquise por tendências de alta demanda."

	// FocusedPromptTemplate asks for a deep dive on a single niche.
	FocusedPromptTemplate = `Realize uma pesquisa profunda de mercado para o nicho: "%s". Identifique de 3 a 5 infoprodutos mais validados, com alta demanda e concorrência forte.`
)

// Tools lists the grounding tools the model is allowed to use.
type Tools struct {
	WebSearch  bool `json:"web_search"`
	MapsSearch bool `json:"maps_search"`
}

// Query is the full instruction set for one research call.
type Query struct {
	UserPrompt        string `json:"user_prompt"`
	SystemInstruction string `json:"system_instruction"`
	Tools             Tools  `json:"tools"`
}

// Build produces the prompt pair for a topic. An empty or whitespace-only topic
// switches to broad scan mode.
func Build(topic string) Query {
	return Query{
		UserPrompt:        UserPrompt(topic),
		SystemInstruction: SystemInstruction(),
		Tools:             Tools{WebSearch: true, MapsSearch: true},
	}
}

// UserPrompt returns only the user-facing half of the query.
func UserPrompt(topic string) string {
	q := core.ResearchQuery{Topic: topic}
	if q.IsBroad() {
		return BroadScanPrompt
	}
	return fmt.Sprintf(FocusedPromptTemplate, strings.TrimSpace(topic))
}

// SystemInstruction returns the fixed persona, research checklist and output schema.
func SystemInstruction() string {
	var b strings.Builder

	b.WriteString("Você é um Pesquisador de Mercado Sênior e Estrategista Digital especializado em infoprodutos.\n")
	b.WriteString("Sua missão é mapear produtos reais que estão vendendo agora e identificar sinais de validação financeira e de tráfego.\n\n")

	b.WriteString("INSTRUÇÕES DE PESQUISA:\n")
	b.WriteString("1. Use a ferramenta Google Search (e Google Maps quando fizer sentido) para encontrar infoprodutos reais (ebooks, cursos, mentorias, apps).\n")
	b.WriteString("2. Identifique o PREÇO atual de venda.\n")
	b.WriteString("3. Identifique o NOME DO ANUNCIANTE/ESPECIALISTA.\n")
	b.WriteString("4. SINAIS DE VALIDAÇÃO (CRUCIAL):\n")
	b.WriteString("   - Tempo de veiculação: Tente inferir há quanto tempo o produto/anúncio roda. (Ex: \"Anúncios ativos desde 2022\" ou \"Produto perene\").\n")
	b.WriteString("   - Quantidade de anúncios: Tente inferir a escala (Ex: \"Muitas variações de criativos\", \"Escala alta\").\n")
	b.WriteString("5. Analise a copy, o público, a estrutura da página de vendas, os gatilhos psicológicos e os insights de mercado.\n")
	b.WriteString("6. Traga apenas produtos validados (com vendas provadas).\n\n")

	b.WriteString("FORMATO DE SAÍDA:\n")
	b.WriteString("Primeiro, realize a pesquisa e a análise (pense passo a passo).\n")
	b.WriteString("EM SEGUIDA, gere um bloco de código JSON contendo EXATAMENTE a estrutura abaixo.\n\n")
	b.WriteString("```json\n")
	b.WriteString(schemaExample)
	b.WriteString("\n```\n\n")

	b.WriteString(fmt.Sprintf("IMPORTANTE: Limite a lista 'products' a no máximo %d itens para evitar cortes na resposta.\n", MaxProducts))

	return b.String()
}

// schemaExample mirrors core.MarketResearchResult field for field.
const schemaExample = `{
  "niche_overview": "Breve visão geral do mercado",
  "products": [
    {
      "name": "Nome do produto",
      "advertiser_name": "Nome do especialista ou empresa",
      "type": "Tipo (ebook, curso, etc)",
      "price": "Preço (Ex: R$ 97,00)",
      "ads_data": {
        "active_time": "Ex: Rodando anúncios há +6 meses",
        "quantity_estimation": "Ex: +15 variações ativas / Alta escala"
      },
      "pain_point": "Dor principal resolvida",
      "strategic_reasoning": "Por que vende",
      "audience": {
        "demographics": "Demografia",
        "psychographics": "Psicografia",
        "awareness_level": "Nível de consciência"
      },
      "copy": {
        "headline": "Manchete",
        "subheadline": "Submanchete",
        "bullets": ["bullet 1", "bullet 2"],
        "cta": "Chamada para ação",
        "promises": ["promessa 1"],
        "unique_mechanism": "Mecanismo único"
      },
      "page_structure": ["Seção 1", "Seção 2"],
      "strategy": {
        "triggers": ["Gatilho 1"],
        "biases": ["Viés 1"],
        "emotions": ["Emoção 1"],
        "key_arguments": ["Argumento 1"]
      },
      "market_insights": {
        "opportunities": "Oportunidades",
        "improvements": "Melhorias"
      }
    }
  ],
  "best_product": {
    "original_name": "Nome do melhor produto",
    "reason_selected": "Razão da escolha",
    "enhanced_version": {
      "new_name": "Novo nome sugerido",
      "concept": "Novo conceito",
      "new_copy_headline": "Nova headline aprimorada",
      "differentials": ["Diferencial 1", "Diferencial 2"],
      "logic": "Lógica por trás da melhoria"
    }
  }
}`
