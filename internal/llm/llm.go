package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"marketspy/internal/core"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash"
	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 120 * time.Second
	// DefaultRequestsPerMinute caps outgoing generation calls.
	DefaultRequestsPerMinute = 10
)

// ErrTransport is matched by every *TransportError.
var ErrTransport = errors.New("generative service call failed")

// TransportError reports that the generative call itself failed or was rejected.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the underlying SDK error.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Request is one generation call with optional grounding tools.
type Request struct {
	Prompt            string
	SystemInstruction string
	WebSearch         bool
	MapsSearch        bool
}

// Response is the raw model answer before any JSON extraction.
type Response struct {
	Text      string
	Citations []core.RawCitation
	Model     string
}

// Generator is the outbound collaborator used by the research service.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Config holds everything needed to construct a GeminiClient.
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	Temperature       float32
	MaxOutputTokens   int32
	RequestsPerMinute int
}

// GeminiClient generates grounded research answers through the Gemini API.
type GeminiClient struct {
	gClient   *genai.Client
	modelName string
	cfg       Config
	limiter   *rate.Limiter
}

// NewGeminiClient creates the client handle. It is meant to be built once at startup
// and passed to whoever needs it.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or ai.gemini.api_key in config file.\nGet your API key from: https://aistudio.google.com/app/apikey")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	gClient, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		gClient:   gClient,
		modelName: cfg.Model,
		cfg:       cfg,
		limiter:   newLimiter(cfg.RequestsPerMinute),
	}, nil
}

// Generate sends the prompt with the requested grounding tools and returns the raw answer.
// Any failure of the call itself is reported as a *TransportError.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: "rate limit wait", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: req.Prompt}},
		Role:  genai.RoleUser,
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, buildConfig(req, c.cfg))
	if err != nil {
		return nil, &TransportError{Op: "generate content", Err: err}
	}

	out := convertResponse(resp)
	if out.Model == "" {
		out.Model = c.modelName
	}
	return out, nil
}

// ModelName returns the configured model.
func (c *GeminiClient) ModelName() string {
	return c.modelName
}

// buildConfig maps a Request onto the SDK's generation config.
func buildConfig(req Request, cfg Config) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	if req.WebSearch {
		config.Tools = append(config.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if req.MapsSearch {
		config.Tools = append(config.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}
	if cfg.MaxOutputTokens > 0 {
		config.MaxOutputTokens = cfg.MaxOutputTokens
	}
	if cfg.Temperature > 0 {
		temp := cfg.Temperature
		config.Temperature = &temp
	}

	return config
}

// convertResponse pulls the answer text and grounding chunks out of the first candidate.
// When the SDK's Text helper yields nothing, the candidate's text parts are joined instead.
func convertResponse(resp *genai.GenerateContentResponse) *Response {
	out := &Response{Citations: []core.RawCitation{}}
	if resp == nil {
		return out
	}
	out.Model = resp.ModelVersion

	out.Text = resp.Text()
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return out
	}
	candidate := resp.Candidates[0]

	if out.Text == "" && candidate.Content != nil {
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
		out.Text = sb.String()
	}

	if candidate.GroundingMetadata == nil {
		return out
	}
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		var raw core.RawCitation
		if chunk.Web != nil {
			raw.Web = &core.CitationRef{URI: chunk.Web.URI, Title: chunk.Web.Title}
		}
		if chunk.Maps != nil {
			raw.Maps = &core.CitationRef{URI: chunk.Maps.URI, Title: chunk.Maps.Title}
		}
		out.Citations = append(out.Citations, raw)
	}

	return out
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}
