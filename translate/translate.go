// Package translate implements the batch translation collaborator: an
// HTTP client for Google AI (Gemini, JSON mode) and OpenAI-compatible chat
// services, driven through a per-unit conversation Session.
//
// A batch is an ordered list of Items. The response must carry exactly the
// requested keys; anything else is a malformed response.
package translate

import (
	"context"
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Provider IDs
// ---------------------------------------------------------------------------

const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// ErrHardFailure marks a batch that failed outright: transport error,
	// non-2xx status, exhausted retries or an open breaker.
	ErrHardFailure = errors.New("translation failed")
	// ErrRateLimited is wrapped into the error returned when every retry
	// hit HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrMalformedResponse is wrapped when the response cannot be decoded
	// or its key set differs from the request.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNoResult means the service answered without a usable result
	// (empty or blocked response).
	ErrNoResult = errors.New("no result")
)

// ---------------------------------------------------------------------------
// Provider configuration
// ---------------------------------------------------------------------------

// Provider holds the configuration for an AI translation service.
type Provider struct {
	// ID is the provider identifier (google, openai).
	ID string
	// Name is the display name.
	Name string
	// BaseURL is the API base URL.
	BaseURL string
	// APIKey is the authentication key.
	APIKey string
	// Model is the model identifier.
	Model string
	// Proxy is an optional HTTP/HTTPS proxy URL.
	Proxy string
	// Timeout is the request timeout.
	Timeout time.Duration
}

// DefaultProviders returns the pre-configured provider definitions.
func DefaultProviders() map[string]Provider {
	return map[string]Provider{
		ProviderGoogle: {
			ID:      ProviderGoogle,
			Name:    "Google AI (Gemini)",
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-2.5-flash",
			Timeout: 300 * time.Second,
		},
		ProviderOpenAI: {
			ID:      ProviderOpenAI,
			Name:    "OpenAI-compatible",
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: 300 * time.Second,
		},
	}
}

// ResolveProvider returns the default definition for id with the non-empty
// overrides applied. Unknown ids are treated as OpenAI-compatible.
func ResolveProvider(id, baseURL, model, apiKey string) Provider {
	p, ok := DefaultProviders()[id]
	if !ok {
		p = DefaultProviders()[ProviderOpenAI]
		p.ID = id
		p.Name = id
	}
	if baseURL != "" {
		p.BaseURL = baseURL
	}
	if model != "" {
		p.Model = model
	}
	p.APIKey = apiKey
	return p
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// Item is one entry of a batch, in wire form.
type Item struct {
	Key            string  `json:"key"`
	SourceText     string  `json:"source_text"`
	TranslatedText string  `json:"translated_text"`
	ContextInfo    *string `json:"context_info"`
}

// NewItem builds a request item; an empty context is sent as null.
func NewItem(key, source, context string) Item {
	it := Item{Key: key, SourceText: source}
	if context != "" {
		it.ContextInfo = &context
	}
	return it
}

// Translator translates a batch within a session. On success the returned
// items are in request order with TranslatedText filled.
type Translator interface {
	Translate(ctx context.Context, s *Session, items []Item) ([]Item, error)
}
