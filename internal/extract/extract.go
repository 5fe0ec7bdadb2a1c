// Package extract isolates and decodes the JSON report embedded in a generative model answer.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"marketspy/internal/core"
)

var (
	// ErrEmptyResponse is returned when the model produced no text at all.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrNoJSONFound is returned when no fenced block or brace-delimited region exists.
	ErrNoJSONFound = errors.New("no JSON payload found in model response")
	// ErrMalformedJSON is matched by every *MalformedJSONError.
	ErrMalformedJSON = errors.New("malformed JSON payload")
)

const (
	// DefaultWebTitle labels a web source the model returned without a title.
	DefaultWebTitle = "Fonte Web"
	// DefaultMapsTitle labels a maps source the model returned without a title.
	DefaultMapsTitle = "Localização Maps"
)

var (
	jsonFencePattern     = regexp.MustCompile("(?s)```(?i:json)\\s*(.*?)\\s*```")
	untaggedFencePattern = regexp.MustCompile("(?s)```[ \\t]*\n(.*?)\\s*```")
)

// MalformedJSONError carries the decoder's diagnostic for a candidate payload that failed to parse.
type MalformedJSONError struct {
	Message string // Decoder message
	Offset  int64  // Byte offset of a syntax error inside the payload, -1 when unknown
	Payload string // Candidate payload that failed to decode
	Err     error
}

func (e *MalformedJSONError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (offset %d)", ErrMalformedJSON, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedJSON, e.Message)
}

// Unwrap exposes both the sentinel and the decoder error.
func (e *MalformedJSONError) Unwrap() []error {
	return []error{ErrMalformedJSON, e.Err}
}

// Result is a decoded report together with its deduplicated sources.
type Result struct {
	Data    core.MarketResearchResult `json:"data"`
	Sources []core.SourceCitation     `json:"sources"`
}

// Extract locates the JSON payload in rawText, decodes it and flattens the citations.
// It is a pure function: the same input always yields the same output.
func Extract(rawText string, rawCitations []core.RawCitation) (*Result, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyResponse
	}

	payload, ok := Candidate(rawText)
	if !ok {
		return nil, ErrNoJSONFound
	}

	var data core.MarketResearchResult
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, newMalformedJSONError(payload, err)
	}

	return &Result{
		Data:    data,
		Sources: FlattenCitations(rawCitations),
	}, nil
}

// Candidate isolates the JSON region of a model answer. A ```json fence wins, then
// a fence with no language tag, then the span from the first '{' to the last '}'.
// Fences tagged with another language are never candidates.
func Candidate(rawText string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{jsonFencePattern, untaggedFencePattern} {
		if m := pattern.FindStringSubmatch(rawText); m != nil && strings.TrimSpace(m[1]) != "" {
			return m[1], true
		}
	}

	first := strings.Index(rawText, "{")
	last := strings.LastIndex(rawText, "}")
	if first == -1 || last == -1 || last <= first {
		return "", false
	}
	return rawText[first : last+1], true
}

// FlattenCitations turns grounding chunks into display sources. Each chunk may yield a
// web and a maps source. Sources are deduplicated by URI: the position of the first
// occurrence is kept and the title of the last occurrence wins.
func FlattenCitations(raw []core.RawCitation) []core.SourceCitation {
	sources := make([]core.SourceCitation, 0, len(raw))
	index := make(map[string]int, len(raw))

	add := func(ref *core.CitationRef, fallbackTitle string) {
		if ref == nil || ref.URI == "" {
			return
		}
		title := ref.Title
		if title == "" {
			title = fallbackTitle
		}
		if i, seen := index[ref.URI]; seen {
			sources[i].Title = title
			return
		}
		index[ref.URI] = len(sources)
		sources = append(sources, core.SourceCitation{Title: title, URI: ref.URI})
	}

	for _, chunk := range raw {
		add(chunk.Web, DefaultWebTitle)
		add(chunk.Maps, DefaultMapsTitle)
	}

	return sources
}

func newMalformedJSONError(payload string, err error) *MalformedJSONError {
	offset := int64(-1)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		offset = typeErr.Offset
	}
	return &MalformedJSONError{
		Message: err.Error(),
		Offset:  offset,
		Payload: payload,
		Err:     err,
	}
}
