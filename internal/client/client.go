// Package client is the typed HTTP boundary to the crop advisory backend.
//
// Every operation takes an explicit *session.Session. The pipeline attaches
// the session's token as a Bearer credential, and a 401 response clears that
// token and surfaces as ErrSessionExpired. Presentation code decides what to
// do next; this package never prompts or navigates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

// maxResponseBody caps how much of a response is buffered. Swapped in tests.
var maxResponseBody int64 = 16 << 20

// SessionExpiredFunc is called once for every 401 response, after the
// session's token has been cleared.
type SessionExpiredFunc func(ctx context.Context, sess *session.Session)

// Client talks to the advisory API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	retry     config.RetryConfig
	onExpired SessionExpiredFunc
	logger    zerolog.Logger
	requestID func() string

	common service

	Auth          *AuthService
	Chat          *ChatService
	Image         *ImageService
	Market        *MarketService
	Community     *CommunityService
	Notifications *NotificationService
	Users         *UserService
	Weather       *WeatherService
	Crops         *CropService
	Soil          *SoilService
	Shops         *ShopService
}

type service struct {
	client *Client
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the transport. cfg.Timeout still applies when set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// OnSessionExpired registers fn to run after a 401 has cleared the token.
func OnSessionExpired(fn SessionExpiredFunc) Option {
	return func(c *Client) { c.onExpired = fn }
}

// New creates a client for cfg.BaseURL. Timeout, retry and rate limiting
// stay off unless cfg enables them.
func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(base.String(), "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{},
		retry:     cfg.Retry,
		logger:    log.Logger,
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Timeout > 0 {
		hc := *c.http
		hc.Timeout = cfg.Timeout
		c.http = &hc
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	c.common.client = c
	c.Auth = (*AuthService)(&c.common)
	c.Chat = (*ChatService)(&c.common)
	c.Image = (*ImageService)(&c.common)
	c.Market = (*MarketService)(&c.common)
	c.Community = (*CommunityService)(&c.common)
	c.Notifications = (*NotificationService)(&c.common)
	c.Users = (*UserService)(&c.common)
	c.Weather = (*WeatherService)(&c.common)
	c.Crops = (*CropService)(&c.common)
	c.Soil = (*SoilService)(&c.common)
	c.Shops = (*ShopService)(&c.common)

	return c, nil
}

// BaseURL returns the API root requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request is one API call. The body is kept as bytes so a retried
// attempt can resend it.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func jsonRequest(method, path string, payload any) (*request, error) {
	req := &request{method: method, path: path}
	if payload == nil {
		return req, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
	}
	req.body = body
	req.contentType = "application/json"
	return req, nil
}

type response struct {
	status int
	body   []byte
}

// errRetryableStatus marks a gateway failure worth another attempt.
var errRetryableStatus = errors.New("retryable status")

// do runs req through the pipeline and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, sess *session.Session, req *request, out any) error {
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return err
	}

	switch {
	case resp.status >= 200 && resp.status < 300:
		if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", req.method, req.path, err)
		}
		return nil

	case resp.status == http.StatusUnauthorized:
		apiErr := c.apiError(req, resp)
		c.expire(ctx, sess, apiErr)
		return &SessionExpiredError{Err: apiErr}

	default:
		return c.apiError(req, resp)
	}
}

func (c *Client) apiError(req *request, resp *response) *APIError {
	return &APIError{
		Method:     req.method,
		Path:       req.path,
		StatusCode: resp.status,
		Body:       resp.body,
		Detail:     parseDetail(resp.body),
	}
}

func (c *Client) expire(ctx context.Context, sess *session.Session, apiErr *APIError) {
	c.logger.Warn().
		Str("method", apiErr.Method).
		Str("path", apiErr.Path).
		Str("detail", apiErr.Detail).
		Msg("Session rejected, clearing token")

	if err := sess.Clear(ctx); err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear expired session")
	}
	if c.onExpired != nil {
		c.onExpired(ctx, sess)
	}
}

// send performs the HTTP exchange, retrying idempotent reads when the
// client is configured to.
func (c *Client) send(ctx context.Context, req *request, token string) (*response, error) {
	if c.retry.MaxAttempts <= 1 || req.method != http.MethodGet {
		return c.attempt(ctx, req, token)
	}

	backoff := retry.NewExponential(c.initialBackoff())
	if c.retry.MaxBackoff > 0 {
		backoff = retry.WithCappedDuration(c.retry.MaxBackoff, backoff)
	}
	backoff = retry.WithMaxRetries(uint64(c.retry.MaxAttempts-1), backoff)

	var last *response
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.attempt(ctx, req, token)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		last = resp
		switch resp.status {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return retry.RetryableError(errRetryableStatus)
		}
		return nil
	})
	if errors.Is(err, errRetryableStatus) && last != nil {
		return last, nil
	}
	if err != nil {
		return nil, err
	}
	return last, nil
}

func (c *Client) initialBackoff() time.Duration {
	if c.retry.InitialBackoff > 0 {
		return c.retry.InitialBackoff
	}
	return 200 * time.Millisecond
}

func (c *Client) attempt(ctx context.Context, req *request, token string) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", req.method, req.path, err)
	}

	requestID := c.requestID()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", req.method).
			Str("path", req.path).
			Str("request_id", requestID).
			Msg("API request failed")
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", req.method, req.path, err)
	}
	if int64(len(data)) > maxResponseBody {
		return nil, fmt.Errorf("%s %s: %w (limit %d bytes)", req.method, req.path, ErrResponseTooLarge, maxResponseBody)
	}

	c.logger.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Int("status", httpResp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("request_id", requestID).
		Msg("API request")

	return &response{status: httpResp.StatusCode, body: data}, nil
}

// get, post and friends keep the service files short.

func (c *Client) get(ctx context.Context, sess *session.Session, path string, q query, out any) error {
	return c.do(ctx, sess, &request{method: http.MethodGet, path: path, query: q.values()}, out)
}

func (c *Client) sendJSON(ctx context.Context, sess *session.Session, method, path string, payload, out any) error {
	req, err := jsonRequest(method, path, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, sess, req, out)
}

func (c *Client) upload(ctx context.Context, sess *session.Session, path, field string, q query, img domain.ImageUpload, out any) error {
	body, contentType, err := multipartBody(field, img)
	if err != nil {
		return err
	}
	return c.do(ctx, sess, &request{
		method:      http.MethodPost,
		path:        path,
		query:       q.values(),
		body:        body,
		contentType: contentType,
	}, out)
}
