package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"marketspy/internal/core"
	"marketspy/internal/export"
	"marketspy/internal/research"
)

const maxRequestBody = 1 << 20

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// ResearchRequest is the body of POST /api/research.
type ResearchRequest struct {
	Topic string `json:"topic"`
}

// ExportRequest is the body of POST /api/export/{format}.
type ExportRequest struct {
	Niche   string                    `json:"niche"`
	Data    core.MarketResearchResult `json:"data"`
	Sources []core.SourceCitation     `json:"sources"`
}

// EmailResponse is returned for the email export.
type EmailResponse struct {
	URL             string `json:"url"`
	Subject         string `json:"subject"`
	Body            string `json:"body,omitempty"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
}

// ErrorBody is the error envelope for every failed request.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleResearch handles POST /api/research
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req ResearchRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	outcome, err := s.research.PerformResearch(r.Context(), req.Topic)
	if err != nil {
		// Details are logged by the research service.
		s.respondError(w, http.StatusBadGateway, research.UserMessage, string(research.Kind(err)))
		return
	}

	s.respondJSON(w, http.StatusOK, outcome)
}

// handleExport handles POST /api/export/{format}
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	var req ExportRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	switch format {
	case "csv":
		s.respondAttachment(w, "text/csv; charset=utf-8", export.CSVFilename(req.Niche), export.CSV(req.Data))
	case "text":
		s.respondText(w, "text/plain; charset=utf-8", export.ReportText(req.Niche, req.Data))
	case "slides":
		s.respondText(w, "text/plain; charset=utf-8", export.SlidesSummary(req.Niche, req.Data))
	case "markdown":
		s.respondAttachment(w, "text/markdown; charset=utf-8", export.Filename(req.Niche, "markdown"), export.Markdown(req.Niche, req.Data, req.Sources))
	case "html":
		page, err := export.PrintableHTML(req.Niche, req.Data, req.Sources)
		if err != nil {
			s.log.Error("Failed to render printable report", "error", err)
			s.respondError(w, http.StatusInternalServerError, "failed to render report", "")
			return
		}
		s.respondText(w, "text/html; charset=utf-8", page)
	case "email":
		draft := export.EmailLink(req.Niche, req.Data)
		resp := EmailResponse{URL: draft.URL, Subject: draft.Subject, CopyToClipboard: draft.CopyToClipboard}
		if draft.CopyToClipboard {
			resp.Body = draft.Body
		}
		s.respondJSON(w, http.StatusOK, resp)
	default:
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown export format %q", format), "")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body too large")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) respondAttachment(w http.ResponseWriter, contentType, filename, body string) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", strings.ReplaceAll(filename, `"`, "")))
	s.respondText(w, contentType, body)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message, kind string) {
	s.respondJSON(w, status, map[string]ErrorBody{
		"error": {Status: status, Message: message, Kind: kind},
	})
}
