package export

import (
	"regexp"
	"strings"

	"marketspy/internal/core"
)

// CSVHeaders are the column names of the competitor sheet.
var CSVHeaders = []string{"Nome", "Anunciante", "Preço", "Tipo", "Dor", "Headline", "Tempo Veiculação", "Escala"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CSV renders one row per product under CSVHeaders. Every data field is quoted with
// internal quotes doubled, and rows are joined with a bare newline.
func CSV(data core.MarketResearchResult) string {
	rows := make([]string, 0, len(data.Products)+1)
	rows = append(rows, strings.Join(CSVHeaders, ","))

	for _, p := range data.Products {
		fields := []string{
			p.Name,
			p.AdvertiserName,
			p.Price,
			p.Type,
			p.PainPoint,
			p.Copy.Headline,
			p.AdsData.ActiveTime,
			p.AdsData.QuantityEstimation,
		}
		for i, f := range fields {
			fields[i] = quoteField(f)
		}
		rows = append(rows, strings.Join(fields, ","))
	}

	return strings.Join(rows, "\n")
}

// CSVFilename is the download name for the competitor sheet of niche. Path separators
// in the niche become underscores so the name stays a single path element.
func CSVFilename(niche string) string {
	return "spy_infoprodutos_" + pathSeparators.Replace(whitespaceRun.ReplaceAllString(niche, "_")) + ".csv"
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
