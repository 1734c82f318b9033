package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/vsrclient/internal/common"
	"github.com/dmitrijs2005/vsrclient/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// TokenSource returns the bearer token to attach, or "" for none.
type TokenSource func() string

// HTTPClient performs JSON requests and classifies replies. It is safe for
// concurrent use once constructed.
type HTTPClient struct {
	httpClient     *http.Client
	transport      *http.Transport
	limiter        *rate.Limiter
	token          TokenSource
	onUnauthorized func(ctx context.Context)
	logger         logging.Logger
	userAgent      string
	newRequestID   func() string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithRateLimit paces outgoing requests. rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.token = ts }
}

// WithUnauthorizedHandler registers fn to run whenever a 401 is received.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

// NewHTTPClient builds a client with its own transport so Close can release
// idle connections.
func NewHTTPClient(opts ...Option) *HTTPClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	c := &HTTPClient{
		httpClient:   &http.Client{Transport: transport, Timeout: 30 * time.Second},
		transport:    transport,
		token:        func() string { return "" },
		logger:       logging.Nop(),
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends body (JSON-encoded when non-nil) to url and classifies the reply.
// Transport failures match ErrUnavailable; 4xx/5xx become *APIError.
func (c *HTTPClient) Do(ctx context.Context, method, url string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	}
	if c.userAgent != "" {
		req.Header.Set(common.UserAgentHeaderName, c.userAgent)
	}
	c.applyAuth(req)

	requestID := c.newRequestID()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	log := c.logger.With("request_id", requestID, "method", method, "url", url)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	started := time.Now()
	log.Debug(ctx, "http request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "http transport error", "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	out, err := readResponse(resp)
	log.Debug(ctx, "http response", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		log.Info(ctx, "unauthorized response, expiring session")
		c.onUnauthorized(ctx)
	}
	return out, err
}

func (c *HTTPClient) applyAuth(req *http.Request) {
	if token := c.token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
}

// Close releases idle keep-alive connections.
func (c *HTTPClient) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}
