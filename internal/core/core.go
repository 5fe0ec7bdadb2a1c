package core

import (
	"strings"
	"time"
)

// ResearchQuery is the caller's request for one research run.
type ResearchQuery struct {
	Topic string `json:"topic"` // Niche to research; empty means a broad market scan
}

// IsBroad reports whether the query asks for a broad market scan rather than a focused niche.
func (q ResearchQuery) IsBroad() bool {
	return strings.TrimSpace(q.Topic) == ""
}

// TargetAudience describes who a product is sold to.
type TargetAudience struct {
	Demographics   string `json:"demographics"`
	Psychographics string `json:"psychographics"`
	AwarenessLevel string `json:"awareness_level"`
}

// CopyAnalysis is the breakdown of a product's sales copy.
type CopyAnalysis struct {
	Headline        string   `json:"headline"`
	Subheadline     string   `json:"subheadline,omitempty"`
	Bullets         []string `json:"bullets"`
	CTA             string   `json:"cta"`
	Promises        []string `json:"promises"`
	UniqueMechanism string   `json:"unique_mechanism"`
}

// StrategicAnalysis lists the persuasion levers a product relies on.
type StrategicAnalysis struct {
	Triggers     []string `json:"triggers"`
	Biases       []string `json:"biases"`
	Emotions     []string `json:"emotions"`
	KeyArguments []string `json:"key_arguments"`
}

// AdsData holds the inferred advertising signals. Both fields are free text.
type AdsData struct {
	ActiveTime         string `json:"active_time"`         // e.g. "Rodando anúncios há +6 meses"
	QuantityEstimation string `json:"quantity_estimation"` // e.g. "+15 variações ativas"
}

// MarketInsights captures where a product leaves room for a competitor.
type MarketInsights struct {
	Opportunities string `json:"opportunities"`
	Improvements  string `json:"improvements"`
}

// Product is one validated offer found in the niche.
type Product struct {
	Name               string            `json:"name"`
	AdvertiserName     string            `json:"advertiser_name"`
	Price              string            `json:"price"` // Currency string as found, never parsed
	Type               string            `json:"type"`
	PainPoint          string            `json:"pain_point"`
	StrategicReasoning string            `json:"strategic_reasoning"`
	Audience           TargetAudience    `json:"audience"`
	Copy               CopyAnalysis      `json:"copy"`
	PageStructure      []string          `json:"page_structure"`
	Strategy           StrategicAnalysis `json:"strategy"`
	AdsData            AdsData           `json:"ads_data"`
	MarketInsights     MarketInsights    `json:"market_insights"`
}

// EnhancedVersion is the model's proposal for an improved take on the best product.
type EnhancedVersion struct {
	NewName         string   `json:"new_name"`
	Concept         string   `json:"concept"`
	NewCopyHeadline string   `json:"new_copy_headline"`
	Differentials   []string `json:"differentials"`
	Logic           string   `json:"logic"`
}

// BestProduct is the single highlighted opportunity selected by the model.
type BestProduct struct {
	OriginalName    string          `json:"original_name"`
	ReasonSelected  string          `json:"reason_selected"`
	EnhancedVersion EnhancedVersion `json:"enhanced_version"`
}

// MarketResearchResult is the structured report returned by the model.
// Products are ordered by relevance.
type MarketResearchResult struct {
	NicheOverview string      `json:"niche_overview"`
	Products      []Product   `json:"products"`
	BestProduct   BestProduct `json:"best_product"`
}

// Truncate keeps at most n products. A non-positive n leaves the result untouched.
func (r *MarketResearchResult) Truncate(n int) bool {
	if n <= 0 || len(r.Products) <= n {
		return false
	}
	r.Products = r.Products[:n]
	return true
}

// SourceCitation is a deduplicated grounding source shown with the report.
type SourceCitation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// CitationRef is a single web or maps reference inside a grounding chunk.
type CitationRef struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// RawCitation is one grounding chunk as reported by the generative service.
// A chunk may carry a web reference, a maps reference, both, or neither.
type RawCitation struct {
	Web  *CitationRef `json:"web,omitempty"`
	Maps *CitationRef `json:"maps,omitempty"`
}

// ResearchOutcome is what a completed research run hands to the display layer.
type ResearchOutcome struct {
	RequestID   string               `json:"request_id"`
	Sequence    uint64               `json:"sequence"`
	Topic       string               `json:"topic"`
	Model       string               `json:"model,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
	Data        MarketResearchResult `json:"data"`
	Sources     []SourceCitation     `json:"sources"`
}
