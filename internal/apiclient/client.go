package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/model"
)

const (
	userAgent       = "chuckle/1.0"
	maxLoggedBody   = 512
	notHTTPResponse = "response type was not HTTP"
	emptyResponse   = "response data is empty"
)

// Session performs a GET on url and decodes the JSON response into dest.
// Every error it returns is a *RequestError.
type Session interface {
	Get(ctx context.Context, url string, dest any) error
}

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get fetches url through s and decodes the body into a T.
func Get[T any](ctx context.Context, s Session, url string) (T, error) {
	var out T
	if err := s.Get(ctx, url, &out); err != nil {
		var zero T
		return zero, AsRequestError(err)
	}
	return out, nil
}

// Client is the joke API HTTP client. A single Client is safe for concurrent
// use and is meant to be shared by every view model.
type Client struct {
	doer    Doer
	logger  *zap.Logger
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithDoer replaces the underlying HTTP transport.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.doer = &http.Client{Timeout: d} }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records every request on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client. Without options it uses an *http.Client with
// model.DefaultRequestTimeout and discards logs.
func NewClient(opts ...Option) *Client {
	c := &Client{
		doer:   &http.Client{Timeout: model.DefaultRequestTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a single GET request. No retries are performed.
func (c *Client) Get(ctx context.Context, url string, dest any) error {
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID), zap.String("url", url))
	log.Debug("GET")

	start := time.Now()
	err := c.get(ctx, url, requestID, dest, log)
	c.metrics.observe(err, time.Since(start))
	if err != nil {
		return err
	}
	log.Debug("GET complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (c *Client) get(ctx context.Context, url, requestID string, dest any, log *zap.Logger) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		log.Error("building request failed", zap.Error(err))
		return Wrapped(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.doer.Do(req)
	if err != nil {
		log.Error("request failed", zap.Error(err))
		return Wrapped(err)
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	if resp == nil || resp.StatusCode == 0 {
		log.Error("response was not an HTTP response")
		return Unexpected(notHTTPResponse)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("failure response code", zap.Int("status", resp.StatusCode))
		return ServerResponse(resp.StatusCode)
	}

	var data []byte
	if resp.Body != nil {
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			log.Error("reading response body failed", zap.Error(err))
			return Wrapped(err)
		}
	}
	if len(data) == 0 {
		log.Error("request succeeded but the response data is empty")
		return Unexpected(emptyResponse)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		log.Error("response could not be decoded", zap.Error(err), zap.ByteString("body", truncate(data)))
		return Wrapped(err)
	}
	return nil
}

func truncate(b []byte) []byte {
	if len(b) > maxLoggedBody {
		return b[:maxLoggedBody]
	}
	return b
}
