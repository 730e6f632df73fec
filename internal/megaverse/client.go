package megaverse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"k8s.io/client-go/util/retry"

	mvstrings "github.com/esanchezm/megaverse/pkg/strings"
)

const (
	// DefaultBaseURL is the public challenge API.
	DefaultBaseURL = "https://challenge.crossmint.io"

	// DefaultHTTPTimeout bounds a single attempt, not the retry envelope.
	DefaultHTTPTimeout = 30 * time.Second

	// candidateIDField is the body field every mutating request carries.
	candidateIDField = "candidateId"

	// maxErrorBody caps how much of an error response is kept in APIError.
	maxErrorBody = 512
)

// RequestDecorator mutates the JSON payload of a create or delete request
// before it is encoded.
type RequestDecorator func(payload map[string]any)

// WithCandidateID returns a decorator setting the candidateId field.
func WithCandidateID(candidateID string) RequestDecorator {
	return func(payload map[string]any) {
		payload[candidateIDField] = candidateID
	}
}

// Client is the shared HTTP core behind the map and object clients. It
// owns the base URL, the retry envelope and the decorator chain applied to
// every mutating request.
type Client struct {
	candidateID string
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
	retry       RetryConfig

	// decorators run in order on every mutating payload; authenticate
	// always runs after them so the candidate id cannot be overridden.
	decorators   []RequestDecorator
	authenticate RequestDecorator
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides DefaultBaseURL. An empty value is ignored.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetry sets the retry envelope.
func WithRetry(cfg RetryConfig) ClientOption {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithRequestDecorator appends a decorator run on every create and delete
// payload, before the candidate id is injected.
func WithRequestDecorator(d RequestDecorator) ClientOption {
	return func(c *Client) {
		if d != nil {
			c.decorators = append(c.decorators, d)
		}
	}
}

// NewClient creates a client acting on behalf of candidateID.
func NewClient(candidateID string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(candidateID) == "" {
		return nil, errors.New("candidate id must not be empty")
	}

	c := &Client{
		candidateID:  candidateID,
		baseURL:      DefaultBaseURL,
		httpClient:   &http.Client{Timeout: DefaultHTTPTimeout},
		logger:       slog.Default(),
		retry:        DefaultRetryConfig(),
		authenticate: WithCandidateID(candidateID),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.retry.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// CandidateID returns the identity injected into every mutating request.
func (c *Client) CandidateID() string {
	return c.candidateID
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Map returns the read-only map client.
func (c *Client) Map() *MapClient {
	return &MapClient{client: c}
}

// Polyanets returns the polyanet client.
func (c *Client) Polyanets() *PolyanetClient {
	return &PolyanetClient{endpoint: endpoint{client: c, path: "/api/polyanets", kind: KindPolyanet}}
}

// Soloons returns the soloon client.
func (c *Client) Soloons() *SoloonClient {
	return &SoloonClient{endpoint: endpoint{client: c, path: "/api/soloons", kind: KindSoloon}}
}

// Comeths returns the cometh client.
func (c *Client) Comeths() *ComethClient {
	return &ComethClient{endpoint: endpoint{client: c, path: "/api/comeths", kind: KindCometh}}
}

// get fetches path and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// mutate sends payload, run through every decorator, with method to path.
func (c *Client) mutate(ctx context.Context, method, path string, payload map[string]any) error {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	for _, decorate := range c.decorators {
		decorate(body)
	}
	c.authenticate(body)

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
	}
	return c.do(ctx, method, path, data, nil)
}

// do performs one logical request, retrying transient statuses with a fixed
// interval. After the last attempt the final *APIError is returned as is.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	url := c.baseURL + path
	attempt := 0

	return retry.OnError(c.retry.backoff(), IsTransient, func() error {
		attempt++
		err := c.doOnce(ctx, method, url, body, out)
		if err != nil && IsTransient(err) && attempt < c.retry.MaxAttempts {
			c.logger.Warn("Transient API failure, retrying",
				"method", method,
				"url", url,
				"attempt", attempt,
				"max_attempts", c.retry.MaxAttempts,
				"retry_in", c.retry.Interval,
				"error", err)
		}
		return err
	})
}

func (c *Client) doOnce(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Sending API request", "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return &APIError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       mvstrings.Snippet(string(snippet), maxErrorBody),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s %s response: %w", method, url, err)
	}
	return nil
}
