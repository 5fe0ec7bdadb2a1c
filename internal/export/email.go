package export

import (
	"net/url"
	"strings"

	"marketspy/internal/core"
)

// MaxMailtoBody is the longest encoded body still sent inline in a mailto link.
const MaxMailtoBody = 1800

const gmailPastePlaceholder = "(Cole+o+relat%C3%B3rio+aqui)"

// EmailDraft is a link that opens a prefilled message. When CopyToClipboard is set the
// report did not fit in the link and Body should be copied for the user to paste.
type EmailDraft struct {
	URL             string
	Subject         string
	Body            string
	CopyToClipboard bool
}

// EmailSubject is the message subject used for niche.
func EmailSubject(niche string) string {
	return "Relatório de Mercado: " + niche
}

// EmailLink builds a mailto link, or a Gmail compose link when the report is too long.
func EmailLink(niche string, data core.MarketResearchResult) EmailDraft {
	subject := EmailSubject(niche)
	body := ReportText(niche, data)
	encodedSubject := encodeURIComponent(subject)
	encodedBody := encodeURIComponent(body)

	draft := EmailDraft{Subject: subject, Body: body}
	if len(encodedBody) > MaxMailtoBody {
		draft.URL = "https://mail.google.com/mail/?view=cm&fs=1&su=" + encodedSubject + "&body=" + gmailPastePlaceholder
		draft.CopyToClipboard = true
		return draft
	}

	draft.URL = "mailto:?subject=" + encodedSubject + "&body=" + encodedBody
	return draft
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers escape a URI component: spaces become
// %20 and the marks !'()* stay literal.
func encodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
