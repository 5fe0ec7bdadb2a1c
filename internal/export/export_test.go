package export

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketspy/internal/core"
)

func sampleData() core.MarketResearchResult {
	return core.MarketResearchResult{
		NicheOverview: "Mercado aquecido de treinos em casa.",
		Products: []core.Product{
			{
				Name:               "Secar em 21 Dias",
				AdvertiserName:     "Fit Academy",
				Price:              `R$97" especial`,
				Type:               "Curso",
				PainPoint:          "Falta de tempo",
				StrategicReasoning: "Prova social forte",
				Copy:               core.CopyAnalysis{Headline: "Seque sem academia", Bullets: []string{"Treinos de 15 min"}},
				PageStructure:      []string{"VSL", "Depoimentos"},
				AdsData:            core.AdsData{ActiveTime: "+6 meses", QuantityEstimation: "+15 variações"},
			},
			{
				Name:               "Yoga Express",
				AdvertiserName:     "Studio Zen",
				Price:              "R$ 47,00",
				Type:               "Ebook",
				StrategicReasoning: "Preço baixo",
				Copy:               core.CopyAnalysis{Headline: "Yoga, rápido"},
			},
		},
		BestProduct: core.BestProduct{
			OriginalName:   "Secar em 21 Dias",
			ReasonSelected: "Maior escala",
			EnhancedVersion: core.EnhancedVersion{
				NewName: "Secar 21 PRO",
				Concept: "Versão com app",
			},
		},
	}
}

func TestReportText(t *testing.T) {
	want := "RELATÓRIO DE INTELIGÊNCIA DE MERCADO: FITNESS EM CASA\n\n" +
		"VISÃO GERAL: Mercado aquecido de treinos em casa.\n\n" +
		"=== MELHOR OPORTUNIDADE ===\n" +
		"Produto Original: Secar em 21 Dias\n" +
		"Novo Nome Sugerido: Secar 21 PRO\n" +
		"Conceito: Versão com app\n\n" +
		"=== CONCORRENTES MAPEADOS ===\n" +
		"\n1. Secar em 21 Dias (Fit Academy)\n" +
		"   Preço: R$97\" especial\n" +
		"   Headline: Seque sem academia\n" +
		"   Por que vende: Prova social forte\n" +
		"\n2. Yoga Express (Studio Zen)\n" +
		"   Preço: R$ 47,00\n" +
		"   Headline: Yoga, rápido\n" +
		"   Por que vende: Preço baixo\n"

	assert.Equal(t, want, ReportText("fitness em casa", sampleData()))
}

func TestSlidesSummary(t *testing.T) {
	want := "NICHO: fitness\n\n" +
		"VENCEDOR: Secar 21 PRO\n" +
		"\nCONCORRENTES:\n" +
		"- Secar em 21 Dias (R$97\" especial)\n" +
		"- Yoga Express (R$ 47,00)\n"

	assert.Equal(t, want, SlidesSummary("fitness", sampleData()))
}

func TestCSV(t *testing.T) {
	out := CSV(sampleData())
	rows := strings.Split(out, "\n")

	require.Len(t, rows, 3, "header plus one row per product")
	assert.Equal(t, "Nome,Anunciante,Preço,Tipo,Dor,Headline,Tempo Veiculação,Escala", rows[0])
	assert.Equal(t, `"Secar em 21 Dias","Fit Academy","R$97"" especial","Curso","Falta de tempo","Seque sem academia","+6 meses","+15 variações"`, rows[1])
	assert.Equal(t, `"Yoga Express","Studio Zen","R$ 47,00","Ebook","","Yoga, rápido","",""`, rows[2])
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestCSV_NoProducts(t *testing.T) {
	assert.Equal(t, strings.Join(CSVHeaders, ","), CSV(core.MarketResearchResult{}))
}

func TestCSVFilename(t *testing.T) {
	assert.Equal(t, "spy_infoprodutos_emagrecimento_feminino.csv", CSVFilename("emagrecimento  feminino"))
	assert.Equal(t, "spy_infoprodutos_a_b.csv", CSVFilename("a\tb"))
	assert.Equal(t, "spy_infoprodutos_.csv", CSVFilename(""))
	assert.Equal(t, "spy_infoprodutos_saúde_fitness.csv", CSVFilename("saúde/fitness"))
	assert.Equal(t, "spy_infoprodutos_a_b.csv", CSVFilename(`a\b`))
}

func TestEmailLink_Mailto(t *testing.T) {
	data := sampleData()
	draft := EmailLink("fitness", data)

	require.True(t, strings.HasPrefix(draft.URL, "mailto:?subject="))
	assert.False(t, draft.CopyToClipboard)
	assert.Contains(t, draft.URL, "Relat%C3%B3rio%20de%20Mercado%3A%20fitness")
	assert.NotContains(t, draft.URL, "+")

	body := draft.URL[strings.Index(draft.URL, "&body=")+len("&body="):]
	decoded, err := url.PathUnescape(body)
	require.NoError(t, err)
	assert.Equal(t, ReportText("fitness", data), decoded)
}

func TestEmailLink_TooLongFallsBackToGmail(t *testing.T) {
	data := sampleData()
	data.NicheOverview = strings.Repeat("mercado enorme ", 200)

	draft := EmailLink("fitness", data)
	assert.True(t, draft.CopyToClipboard)
	assert.True(t, strings.HasPrefix(draft.URL, "https://mail.google.com/mail/?view=cm&fs=1&su="))
	assert.True(t, strings.HasSuffix(draft.URL, "&body=(Cole+o+relat%C3%B3rio+aqui)"))
	assert.Equal(t, ReportText("fitness", data), draft.Body)
	assert.Equal(t, "Relatório de Mercado: fitness", draft.Subject)
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a%20b!(x)*'", encodeURIComponent("a b!(x)*'"))
	assert.Equal(t, "1%2B1%3D2%26%0A", encodeURIComponent("1+1=2&\n"))
}

func TestMarkdown(t *testing.T) {
	sources := []core.SourceCitation{{Title: "Hotmart", URI: "https://hotmart.com/x"}}
	md := Markdown("fitness", sampleData(), sources)

	assert.True(t, strings.HasPrefix(md, "# Relatório de Inteligência de Mercado: fitness\n"))
	assert.Contains(t, md, "### 1. Secar em 21 Dias")
	assert.Contains(t, md, "### 2. Yoga Express")
	assert.Contains(t, md, "1. VSL\n2. Depoimentos")
	assert.Contains(t, md, "- [Hotmart](https://hotmart.com/x)")
	assert.NotContains(t, md, "**Subheadline:**", "empty optional fields are omitted")
	assert.NotContains(t, Markdown("", core.MarketResearchResult{}, nil), "## Fontes")
	assert.Contains(t, Markdown("  ", core.MarketResearchResult{}, nil), "Varredura geral")
}

func TestPrintableHTML(t *testing.T) {
	data := sampleData()
	data.NicheOverview = "<script>alert(1)</script>"
	sources := []core.SourceCitation{
		{Title: "Hotmart", URI: "https://hotmart.com/x"},
		{Title: "Loja", URI: "https://maps.google.com/?cid=1"},
	}

	page, err := PrintableHTML("fitness", data, sources)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Relatório de Mercado: fitness", doc.Find("title").Text())
	assert.Contains(t, doc.Find("article.report h1").Text(), "fitness")
	assert.Equal(t, 3, doc.Find("article.report h3").Length(), "enhanced version plus two products")
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Contains(t, doc.Find("style").Text(), "@media print")

	links := doc.Find(`a[href^="https://"]`)
	require.Equal(t, 2, links.Length())
	href, _ := links.First().Attr("href")
	assert.Equal(t, "https://hotmart.com/x", href)
	target, _ := links.First().Attr("target")
	assert.Equal(t, "_blank", target)
}

func TestPrintableHTML_UnsafeLinksAreNotAnchors(t *testing.T) {
	data := sampleData()
	data.NicheOverview = "Veja [aqui](javascript:alert(1)) os detalhes."
	sources := []core.SourceCitation{
		{Title: "Ruim", URI: "javascript:alert(2)"},
		{Title: "Hotmart", URI: "https://hotmart.com/x"},
	}

	page, err := PrintableHTML("fitness", data, sources)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find(`a[href^="javascript"]`).Length())
	assert.Equal(t, 1, doc.Find(`a[href="https://hotmart.com/x"]`).Length())
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := WriteFile("conteúdo", dir, "r.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "r.txt"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "conteúdo", string(got))
}

func TestWriteFile_CSVWithSlashInNiche(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile("x", dir, Filename("saúde/fitness", "csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spy_infoprodutos_saúde_fitness.csv"), path)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "spy_infoprodutos_fitness_em_casa.csv", Filename("fitness em casa", "csv"))
	assert.Equal(t, "relatorio_fitness_em_casa.md", Filename("fitness em casa", "markdown"))
	assert.Equal(t, "relatorio_a_b.html", Filename("a/b", "html"))
	assert.Equal(t, "spy_infoprodutos_a_b.csv", Filename("a/b", "csv"))
	assert.Equal(t, "relatorio_mercado.json", Filename(" ", "json"))
	assert.Equal(t, "relatorio_x.txt", Filename("x", "text"))
}

type recordingClipboard struct {
	text string
	err  error
}

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return c.err
}

func TestClipboardInterface(t *testing.T) {
	var cb Clipboard = &recordingClipboard{}
	require.NoError(t, cb.WriteAll("x"))
	assert.Equal(t, "x", cb.(*recordingClipboard).text)

	var _ Clipboard = SystemClipboard{}
	failing := &recordingClipboard{err: errors.New("no display")}
	assert.Error(t, failing.WriteAll("y"))
}
