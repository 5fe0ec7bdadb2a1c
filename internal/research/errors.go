package research

import (
	"errors"

	"marketspy/internal/extract"
	"marketspy/internal/llm"
)

// UserMessage is the single retry text shown to people for any failed research run.
const UserMessage = "Falha ao analisar o nicho. A API pode estar sobrecarregada ou não retornou o formato esperado. Tente novamente."

// ErrorKind names the failure class of a research run for diagnostics.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindEmptyResponse ErrorKind = "empty_response"
	KindNoJSONFound   ErrorKind = "no_json_found"
	KindMalformedJSON ErrorKind = "malformed_json"
	KindTransport     ErrorKind = "transport_error"
	KindUnknown       ErrorKind = "unknown"
)

// Kind classifies err. A nil error has KindNone.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, llm.ErrTransport):
		return KindTransport
	case errors.Is(err, extract.ErrEmptyResponse):
		return KindEmptyResponse
	case errors.Is(err, extract.ErrNoJSONFound):
		return KindNoJSONFound
	case errors.Is(err, extract.ErrMalformedJSON):
		return KindMalformedJSON
	default:
		return KindUnknown
	}
}
