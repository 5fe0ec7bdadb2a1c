package extract

import (
	"fmt"

	"marketspy/internal/core"
)

// FieldIssue names a field the model left empty.
type FieldIssue struct {
	Field   string `json:"field"`
	Problem string `json:"problem"`
}

func (i FieldIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Problem)
}

// Validate reports missing fields that the display layer relies on. It never rejects
// a result; callers decide whether the issues matter.
func Validate(r core.MarketResearchResult) []FieldIssue {
	var issues []FieldIssue
	missing := func(field string) {
		issues = append(issues, FieldIssue{Field: field, Problem: "missing"})
	}

	if r.NicheOverview == "" {
		missing("niche_overview")
	}
	if len(r.Products) == 0 {
		issues = append(issues, FieldIssue{Field: "products", Problem: "empty"})
	}
	for i, p := range r.Products {
		prefix := fmt.Sprintf("products[%d]", i)
		if p.Name == "" {
			missing(prefix + ".name")
		}
		if p.Price == "" {
			missing(prefix + ".price")
		}
		if p.Copy.Headline == "" {
			missing(prefix + ".copy.headline")
		}
	}
	if r.BestProduct.OriginalName == "" {
		missing("best_product.original_name")
	}
	if r.BestProduct.EnhancedVersion.NewName == "" {
		missing("best_product.enhanced_version.new_name")
	}

	return issues
}
