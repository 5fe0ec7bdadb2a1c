package llm

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Pricing is the list price of a Gemini model in USD per million tokens.
// Grounding requests are billed separately and are not included.
type Pricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// PricingTable holds prices for prompts up to 200k tokens.
var PricingTable = map[string]Pricing{
	"gemini-2.5-pro":        {InputPer1M: 1.25, OutputPer1M: 10.00},
	"gemini-2.5-flash":      {InputPer1M: 0.30, OutputPer1M: 2.50},
	"gemini-2.5-flash-lite": {InputPer1M: 0.10, OutputPer1M: 0.40},
	"gemini-2.0-flash":      {InputPer1M: 0.10, OutputPer1M: 0.40},
}

// LookupPricing finds the price of model, matching versioned names such as
// "gemini-2.5-flash-001" by their longest known prefix.
func LookupPricing(model string) (Pricing, bool) {
	model = strings.TrimPrefix(model, "models/")

	best := ""
	for name := range PricingTable {
		if strings.HasPrefix(model, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return Pricing{}, false
	}
	return PricingTable[best], true
}

// EstimateTokenCount approximates the token count of text at about 3.5 characters per token.
func EstimateTokenCount(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(utf8.RuneCountInString(text)) / 3.5))
}

// EstimateCost returns the approximate USD cost of one call, or false for an unknown model.
func EstimateCost(model string, inputTokens, outputTokens int) (float64, bool) {
	p, ok := LookupPricing(model)
	if !ok {
		return 0, false
	}
	return float64(inputTokens)/1e6*p.InputPer1M + float64(outputTokens)/1e6*p.OutputPer1M, true
}
