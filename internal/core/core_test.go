package core

import (
	"encoding/json"
	"testing"
)

func TestResearchQueryIsBroad(t *testing.T) {
	tests := []struct {
		topic string
		want  bool
	}{
		{"", true},
		{"   \t\n", true},
		{"emagrecimento para mães", false},
		{"  fitness ", false},
	}

	for _, tt := range tests {
		if got := (ResearchQuery{Topic: tt.topic}).IsBroad(); got != tt.want {
			t.Errorf("IsBroad(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestMarketResearchResultTruncate(t *testing.T) {
	result := MarketResearchResult{
		Products: make([]Product, 7),
	}
	for i := range result.Products {
		result.Products[i].Name = string(rune('A' + i))
	}

	if !result.Truncate(5) {
		t.Fatal("Expected Truncate to report a change")
	}
	if len(result.Products) != 5 {
		t.Fatalf("Expected 5 products, got %d", len(result.Products))
	}
	if result.Products[4].Name != "E" {
		t.Errorf("Expected order to be preserved, last product is %q", result.Products[4].Name)
	}

	if result.Truncate(5) {
		t.Error("Truncate should be a no-op when already within the limit")
	}
	if result.Truncate(0) {
		t.Error("Truncate(0) should leave the result untouched")
	}
}

func TestProductJSONFieldNames(t *testing.T) {
	payload := `{
		"name": "Método X",
		"advertiser_name": "Ana",
		"price": "R$ 97,00",
		"ads_data": {"active_time": "+6 meses", "quantity_estimation": "Alta escala"},
		"copy": {"headline": "H", "bullets": ["b1"], "cta": "Compre", "promises": [], "unique_mechanism": "M"},
		"strategy": {"key_arguments": ["k"]},
		"market_insights": {"opportunities": "o", "improvements": "i"}
	}`

	var p Product
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if p.AdvertiserName != "Ana" {
		t.Errorf("Expected advertiser 'Ana', got %q", p.AdvertiserName)
	}
	if p.AdsData.QuantityEstimation != "Alta escala" {
		t.Errorf("Expected quantity estimation, got %q", p.AdsData.QuantityEstimation)
	}
	if p.Copy.Subheadline != "" {
		t.Errorf("Expected missing subheadline to stay empty, got %q", p.Copy.Subheadline)
	}
	if len(p.Strategy.KeyArguments) != 1 {
		t.Errorf("Expected 1 key argument, got %d", len(p.Strategy.KeyArguments))
	}
	if p.MarketInsights.Improvements != "i" {
		t.Errorf("Expected improvements 'i', got %q", p.MarketInsights.Improvements)
	}
}
