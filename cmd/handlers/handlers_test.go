package handlers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketspy/internal/config"
	"marketspy/internal/core"
)

func sampleOutcome() *core.ResearchOutcome {
	return &core.ResearchOutcome{
		RequestID: "r1",
		Topic:     "yoga",
		Data: core.MarketResearchResult{
			NicheOverview: "Nicho estável",
			Products:      []core.Product{{Name: "Yoga 30", Price: "R$ 67"}},
			BestProduct:   core.BestProduct{EnhancedVersion: core.EnhancedVersion{NewName: "Yoga 30 Plus"}},
		},
		Sources: []core.SourceCitation{{Title: "Fonte Web", URI: "https://x.com"}},
	}
}

func TestFormatOutcome(t *testing.T) {
	outcome := sampleOutcome()

	for _, format := range outputFormats {
		t.Run(format, func(t *testing.T) {
			out, err := formatOutcome(outcome, format, true)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}

	out, err := formatOutcome(outcome, "json", false)
	require.NoError(t, err)
	var decoded core.ResearchOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "r1", decoded.RequestID)

	out, err = formatOutcome(outcome, "slides", false)
	require.NoError(t, err)
	assert.Contains(t, out, "VENCEDOR: Yoga 30 Plus")

	_, err = formatOutcome(outcome, "pptx", false)
	assert.Error(t, err)
}

func TestIsKnownFormat(t *testing.T) {
	assert.True(t, isKnownFormat("csv"))
	assert.False(t, isKnownFormat("CSV"))
	assert.False(t, isKnownFormat(""))
}

type recordingClipboard struct{ text string }

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func TestCopyForFormat(t *testing.T) {
	cb := &recordingClipboard{}

	require.NoError(t, copyForFormat(cb, sampleOutcome(), "slides"))
	assert.True(t, strings.HasPrefix(cb.text, "NICHO: yoga"))

	require.NoError(t, copyForFormat(cb, sampleOutcome(), "dashboard"))
	assert.True(t, strings.HasPrefix(cb.text, "RELATÓRIO DE INTELIGÊNCIA DE MERCADO: YOGA"))
}

func TestPromptCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewPromptCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"emagrecimento"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "=== SYSTEM INSTRUCTION ===")
	assert.Contains(t, out, "web_search=true maps_search=true")
	assert.Contains(t, out, "emagrecimento")

	buf.Reset()
	cmd = NewPromptCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--user-only"})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, buf.String(), "SYSTEM INSTRUCTION")
	assert.NotEmpty(t, strings.TrimSpace(buf.String()))
}

func TestOutputDirectory(t *testing.T) {
	out := config.Output{Directory: "/srv/reports"}

	dir, ok := outputDirectory(researchOptions{}, out)
	assert.False(t, ok)
	assert.Empty(t, dir)

	dir, ok = outputDirectory(researchOptions{save: true}, out)
	assert.True(t, ok)
	assert.Equal(t, "/srv/reports", dir)

	dir, ok = outputDirectory(researchOptions{save: true, outputDir: "tmp"}, out)
	assert.True(t, ok)
	assert.Equal(t, "tmp", dir)
}

func TestResearchCmdFlags(t *testing.T) {
	cmd := NewResearchCmd()
	save := cmd.Flags().Lookup("save")
	require.NotNil(t, save)
	assert.Equal(t, "s", save.Shorthand)
	require.NotNil(t, cmd.Flags().Lookup("output"))
}
