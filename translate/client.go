package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jpillora/backoff"
)

// ---------------------------------------------------------------------------
// Client options
// ---------------------------------------------------------------------------

// Options configures a Client.
type Options struct {
	// Provider is the AI provider configuration.
	Provider Provider
	// Temperature is the sampling temperature.
	Temperature float64
	// MaxRetries is the total number of attempts on rate limit (429).
	MaxRetries int
	// RetryDelay is the base delay of the exponential backoff.
	RetryDelay time.Duration
	// Timeout is the per-request timeout (overrides provider timeout if set).
	Timeout time.Duration
	// HTTPClient replaces the default client (tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (o *Options) effectiveTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	if o.Provider.Timeout > 0 {
		return o.Provider.Timeout
	}
	return 300 * time.Second
}

func (o *Options) effectiveMaxRetries() int {
	if o.MaxRetries > 0 {
		return o.MaxRetries
	}
	return 5
}

func (o *Options) effectiveRetryDelay() time.Duration {
	if o.RetryDelay > 0 {
		return o.RetryDelay
	}
	return 5 * time.Second
}

func (o *Options) effectiveLogger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// Client is the HTTP Translator.
type Client struct {
	opts   Options
	http   *http.Client
	logger *slog.Logger
	// sleep waits between rate-limited attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient returns a Client for the configured provider.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = makeHTTPClient(opts.Provider.Proxy, opts.effectiveTimeout())
	}
	return &Client{
		opts:   opts,
		http:   hc,
		logger: opts.effectiveLogger(),
		sleep:  sleepContext,
	}
}

func makeHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if parsed, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryDelay returns the wait before the retry following attempt (0-based):
// base * 2^attempt plus up to one second of jitter.
func RetryDelay(base time.Duration, attempt int) time.Duration {
	b := &backoff.Backoff{Min: base, Max: base << 16, Factor: 2}
	return b.ForAttempt(float64(attempt)) + rand.N(time.Second)
}

// Translate sends one batch within the session. Line breaks travel as
// placeholders. The exchange is recorded in the session only on success.
func (c *Client) Translate(ctx context.Context, s *Session, items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if err := s.Wait(ctx); err != nil {
		return nil, err
	}

	wire := make([]Item, len(items))
	for i, it := range items {
		wire[i] = it
		wire[i].SourceText = EncodeLineBreaks(it.SourceText)
		wire[i].TranslatedText = ""
	}

	pretty, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding batch: %w", err)
	}
	userPrompt := "Translate the entries of the following JSON array:\n" + string(pretty)

	translated, err := s.Execute(func() ([]Item, error) {
		text, err := c.call(ctx, s.Turns(), userPrompt)
		if err != nil {
			return nil, err
		}
		return parseResponse(text, wire)
	})
	if err != nil {
		return nil, err
	}

	compact, _ := json.Marshal(wire)
	model, _ := json.MarshalIndent(struct {
		Translations []Item `json:"translations"`
	}{translated}, "", "  ")
	s.Record(string(compact), string(model))

	out := make([]Item, len(items))
	for i, it := range translated {
		out[i] = items[i]
		out[i].TranslatedText = DecodeLineBreaks(it.TranslatedText)
	}
	return out, nil
}

// call posts the conversation, retrying only on HTTP 429.
func (c *Client) call(ctx context.Context, turns []Turn, userPrompt string) (string, error) {
	endpoint, headers, body, err := c.buildRequest(turns, userPrompt)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %w", ErrHardFailure, err)
	}

	maxRetries := c.opts.effectiveMaxRetries()
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: creating request: %w", ErrHardFailure, err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		c.logger.Debug("posting batch", "provider", c.opts.Provider.ID, "attempt", attempt+1, "endpoint", endpoint)
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("%w: request: %w", ErrHardFailure, err)
		}
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == maxRetries-1 {
				break
			}
			delay := RetryDelay(c.opts.effectiveRetryDelay(), attempt)
			c.logger.Warn("rate limited, retrying", "attempt", attempt+1, "max", maxRetries, "delay", delay.Round(100*time.Millisecond))
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", fmt.Errorf("%w: status %d: %s", ErrHardFailure, resp.StatusCode, apiErrorMessage(respBody))
		}
		return c.extractText(respBody)
	}

	return "", fmt.Errorf("%w: %w after %d attempts", ErrHardFailure, ErrRateLimited, maxRetries)
}

// ---------------------------------------------------------------------------
// Request builders
// ---------------------------------------------------------------------------

func (c *Client) buildRequest(turns []Turn, userPrompt string) (string, map[string]string, []byte, error) {
	prov := c.opts.Provider
	headers := map[string]string{"Content-Type": "application/json"}
	base := strings.TrimRight(prov.BaseURL, "/")

	var (
		endpoint string
		body     []byte
		err      error
	)
	switch prov.ID {
	case ProviderGoogle:
		endpoint = fmt.Sprintf("%s/v1beta/models/%s:generateContent", base, prov.Model)
		if prov.APIKey != "" {
			headers["x-goog-api-key"] = prov.APIKey
		}
		body, err = buildGeminiRequest(turns, userPrompt, c.opts.Temperature)
	default:
		endpoint = base
		if !strings.HasSuffix(endpoint, "/chat/completions") {
			endpoint += "/chat/completions"
		}
		if prov.APIKey != "" {
			headers["Authorization"] = "Bearer " + prov.APIKey
		}
		body, err = buildOpenAIChatRequest(prov.Model, turns, userPrompt, c.opts.Temperature)
	}
	if err != nil {
		return "", nil, nil, err
	}
	return endpoint, headers, body, nil
}

func buildGeminiRequest(turns []Turn, userPrompt string, temperature float64) ([]byte, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Role  string `json:"role"`
		Parts []part `json:"parts"`
	}
	type genConfig struct {
		Temperature      float64        `json:"temperature"`
		ResponseMimeType string         `json:"responseMimeType"`
		ResponseSchema   map[string]any `json:"responseSchema"`
	}

	contents := make([]content, 0, len(turns)+1)
	for _, t := range turns {
		contents = append(contents, content{Role: t.Role, Parts: []part{{Text: t.Text}}})
	}
	contents = append(contents, content{Role: RoleUser, Parts: []part{{Text: userPrompt}}})

	req := struct {
		Contents         []content `json:"contents"`
		GenerationConfig genConfig `json:"generationConfig"`
	}{
		Contents: contents,
		GenerationConfig: genConfig{
			Temperature:      temperature,
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}
	return json.Marshal(req)
}

// responseSchema describes {"translations": [Item...]} for JSON mode.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"translations": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"key":             map[string]any{"type": "STRING"},
					"source_text":     map[string]any{"type": "STRING"},
					"translated_text": map[string]any{"type": "STRING"},
					"context_info":    map[string]any{"type": "STRING", "nullable": true},
				},
				"required": []string{"key", "source_text", "translated_text"},
			},
		},
	},
	"required": []string{"translations"},
}

func buildOpenAIChatRequest(model string, turns []Turn, userPrompt string, temperature float64) ([]byte, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type format struct {
		Type string `json:"type"`
	}

	messages := make([]msg, 0, len(turns)+1)
	for _, t := range turns {
		role := t.Role
		if role == RoleModel {
			role = "assistant"
		}
		messages = append(messages, msg{Role: role, Content: t.Text})
	}
	messages = append(messages, msg{Role: "user", Content: userPrompt})

	req := struct {
		Model          string  `json:"model"`
		Messages       []msg   `json:"messages"`
		Temperature    float64 `json:"temperature"`
		ResponseFormat format  `json:"response_format"`
		Stream         bool    `json:"stream"`
	}{
		Model:          model,
		Messages:       messages,
		Temperature:    temperature,
		ResponseFormat: format{Type: "json_object"},
	}
	return json.Marshal(req)
}

// ---------------------------------------------------------------------------
// Response parsing
// ---------------------------------------------------------------------------

// extractText pulls the model text out of a 2xx response body. An empty or
// blocked answer is ErrNoResult.
func (c *Client) extractText(body []byte) (string, error) {
	if c.opts.Provider.ID == ProviderGoogle {
		var resp struct {
			Candidates []struct {
				Content struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"content"`
				FinishReason string `json:"finishReason"`
			} `json:"candidates"`
			PromptFeedback struct {
				BlockReason string `json:"blockReason"`
			} `json:"promptFeedback"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("%w: %w: %w", ErrHardFailure, ErrMalformedResponse, err)
		}
		if resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: blocked (%s)", ErrNoResult, resp.PromptFeedback.BlockReason)
		}
		var text strings.Builder
		if len(resp.Candidates) > 0 {
			for _, p := range resp.Candidates[0].Content.Parts {
				text.WriteString(p.Text)
			}
		}
		if strings.TrimSpace(text.String()) == "" {
			return "", ErrNoResult
		}
		return text.String(), nil
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %w: %w", ErrHardFailure, ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoResult
	}
	if resp.Choices[0].FinishReason == "content_filter" {
		return "", fmt.Errorf("%w: blocked (content_filter)", ErrNoResult)
	}
	if strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrNoResult
	}
	return resp.Choices[0].Message.Content, nil
}

var markdownCodeBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseResponse decodes the model text and checks it answers exactly the
// requested keys. The result is in request order.
func parseResponse(text string, request []Item) ([]Item, error) {
	text = strings.TrimSpace(text)
	if m := markdownCodeBlock.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var items []Item
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &items); err != nil {
			return nil, fmt.Errorf("%w: %w: %w", ErrHardFailure, ErrMalformedResponse, err)
		}
	} else {
		var wrapped struct {
			Translations []Item `json:"translations"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %w: %w", ErrHardFailure, ErrMalformedResponse, err)
		}
		items = wrapped.Translations
	}
	if len(items) == 0 {
		return nil, ErrNoResult
	}

	byKey := make(map[string]Item, len(items))
	for _, it := range items {
		if _, dup := byKey[it.Key]; dup {
			return nil, fmt.Errorf("%w: %w: duplicate key %q", ErrHardFailure, ErrMalformedResponse, it.Key)
		}
		byKey[it.Key] = it
	}
	if len(byKey) != len(request) {
		return nil, fmt.Errorf("%w: %w: got %d keys, want %d", ErrHardFailure, ErrMalformedResponse, len(byKey), len(request))
	}

	out := make([]Item, len(request))
	for i, req := range request {
		it, ok := byKey[req.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %w: missing key %q", ErrHardFailure, ErrMalformedResponse, req.Key)
		}
		out[i] = req
		out[i].TranslatedText = it.TranslatedText
	}
	return out, nil
}

// apiErrorMessage extracts error.message from an error body.
func apiErrorMessage(body []byte) string {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return truncate(strings.TrimSpace(string(body)), 500)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
