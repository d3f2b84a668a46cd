// Package sdk provides the LingoFlow Go client for the language-learning API
// behind the LingoFlow Telegram Mini-App: flashcards, exercises, onboarding,
// tutor chat, and session authentication with transparent token refresh.
package sdk

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/lingoflow/lingoflow-go/headers"
)

const defaultBaseURL = "https://api.lingoflow.app/v1"
const defaultUserAgent = "lingoflow-go/0.1"
const defaultRequestTimeout = 30 * time.Second

// Config wires authentication, base URL, logging, and telemetry for the API
// client.
type Config struct {
	BaseURL string
	// AccessToken seeds the credential store. Optional: the composition root
	// can instead log in later via Auth.TelegramLogin.
	AccessToken string
	HTTPClient  *http.Client
	Logger      *zerolog.Logger
	Telemetry   TelemetryHooks
	UserAgent   string
	// RefreshSkew is how close to expiry a JWT access token may get before a
	// proactive refresh is attempted. Zero means the default of one minute.
	RefreshSkew time.Duration
	// Retry controls backoff for idempotent reads. The zero value enables
	// the default policy; set MaxAttempts to 1 to disable retries.
	Retry RetryConfig
}

// Client provides high-level helpers for interacting with the LingoFlow API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	creds       *CredentialStore
	refresher   *refreshCoordinator
	logger      zerolog.Logger
	telemetry   TelemetryHooks
	userAgent   string
	refreshSkew time.Duration
	retry       RetryConfig

	// Grouped service clients.
	Auth       *AuthClient
	Profile    *ProfileClient
	Onboarding *OnboardingClient
	Decks      *DecksClient
	Cards      *CardsClient
	Exercises  *ExercisesClient
	Chat       *ChatClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	skew := cfg.RefreshSkew
	if skew <= 0 {
		skew = defaultRefreshSkew
	}
	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry = defaultRetryConfig()
	}
	creds := &CredentialStore{}
	if cfg.AccessToken != "" {
		creds.SetToken(cfg.AccessToken)
	}
	client := &Client{
		baseURL:     normalized,
		httpClient:  httpClient,
		creds:       creds,
		refresher:   &refreshCoordinator{creds: creds},
		logger:      logger,
		telemetry:   cfg.Telemetry,
		userAgent:   ua,
		refreshSkew: skew,
		retry:       retry.normalized(),
	}
	client.Auth = &AuthClient{client: client}
	client.Profile = &ProfileClient{client: client}
	client.Onboarding = &OnboardingClient{client: client}
	client.Decks = &DecksClient{client: client}
	client.Cards = &CardsClient{client: client}
	client.Exercises = &ExercisesClient{client: client}
	client.Chat = &ChatClient{client: client}
	return client, nil
}

// Credentials exposes the credential store so the composition root can seed
// tokens and register the refresh function and unauthorized handler.
func (c *Client) Credentials() *CredentialStore { return c.creds }

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ConfigError{Reason: "base URL required"}
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", ConfigError{Reason: fmt.Sprintf("invalid base URL: %v", err)}
	}
	if u.Scheme == "" {
		return "", ConfigError{Reason: "base URL missing scheme (http/https)"}
	}
	if u.Host == "" {
		return "", ConfigError{Reason: "base URL missing host"}
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

// requestState carries the per-request control flags of the dispatch state
// machine. retried transitions false to true at most once per logical
// request and is never reset.
type requestState struct {
	// SkipAuth suppresses the Authorization header and makes the request
	// ineligible for the refresh-and-retry path.
	SkipAuth bool
	retried  bool
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// prepare performs the synchronous outgoing-descriptor mutations: default
// headers, traceparent, and the bearer credential unless suppressed. It
// never dispatches network I/O of its own, except that a JWT access token
// already inside the refresh skew window triggers a proactive refresh.
func (c *Client) prepare(req *http.Request, state *requestState) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Header.Get(headers.Client) == "" {
		req.Header.Set(headers.Client, c.userAgent)
	}
	// The correlation id survives the refresh-retry clone, so both dispatches
	// of one logical request share it.
	if req.Header.Get(headers.RequestID) == "" {
		req.Header.Set(headers.RequestID, uuid.NewString())
	}
	injectTraceparent(req.Context(), req)
	if state.SkipAuth {
		return
	}
	token := c.creds.Token()
	if token == "" {
		return
	}
	if tokenExpiringWithin(token, c.refreshSkew) {
		if fresh := c.refresher.refresh(req.Context()); fresh != "" {
			token = fresh
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// send dispatches the request and runs the response state machine: a 401 on
// an eligible request triggers exactly one coordinated refresh followed by
// exactly one re-dispatch of the same descriptor. Every failure surfaces as
// a normalized *APIError.
func (c *Client) send(req *http.Request, state *requestState) (*http.Response, error) {
	if state == nil {
		state = &requestState{}
	}
	c.prepare(req, state)
	resp, err := c.dispatch(req)
	if err != nil {
		return nil, NormalizeError(err)
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}
	apiErr := decodeAPIError(resp)
	_ = resp.Body.Close()
	if !retryEligible(apiErr, state) {
		return nil, apiErr
	}
	state.retried = true
	token := c.refresher.refresh(req.Context())
	c.telemetry.refreshed(req.Context(), token != "")
	if token == "" {
		c.logger.Warn().Str("path", req.URL.Path).Msg("token refresh failed, session is unauthenticated")
		c.telemetry.log(req.Context(), LogLevelError, "auth_refresh_failed", map[string]any{"path": req.URL.Path})
		c.creds.notifyUnauthorized()
		return nil, apiErr
	}
	retryReq, err := replayRequest(req)
	if err != nil {
		return nil, apiErr
	}
	retryReq.Header.Set("Authorization", "Bearer "+token)
	c.logger.Debug().Str("path", req.URL.Path).Msg("retrying request with refreshed token")
	resp, err = c.dispatch(retryReq)
	if err != nil {
		return nil, NormalizeError(err)
	}
	if resp.StatusCode >= 400 {
		// The retried request gets no second chance; its failure surfaces
		// directly, including a second 401.
		apiErr = decodeAPIError(resp)
		_ = resp.Body.Close()
		return nil, apiErr
	}
	return resp, nil
}

// retryEligible implements the one-shot rule: only an authentication failure
// on a request that carries the ambient credential and has not already been
// retried qualifies for the refresh path.
func retryEligible(apiErr *APIError, state *requestState) bool {
	return apiErr.IsAuthError() && !state.retried && !state.SkipAuth
}

func (c *Client) dispatch(req *http.Request) (*http.Response, error) {
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(req.Context(), req)
	}
	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("http request")
	c.telemetry.log(req.Context(), LogLevelInfo, "http_request", map[string]any{
		"method": req.Method,
		"url":    req.URL.String(),
	})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(req.Context(), req, resp, err, time.Since(start))
	}
	c.telemetry.metric(req.Context(), "client_http_request_latency_ms", float64(time.Since(start).Milliseconds()), map[string]string{
		"path": req.URL.Path,
	})
	return resp, err
}

// replayRequest rebuilds the request descriptor for the single post-refresh
// re-dispatch. Bodies built by newJSONRequest are replayable through
// GetBody; a request with a consumed, non-replayable body cannot be retried.
func replayRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("request body cannot be replayed")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

// doJSON issues a JSON request and decodes the response body into out, when
// out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any, state *requestState) error {
	req, err := c.newJSONRequest(ctx, method, path, payload)
	if err != nil {
		return NormalizeError(err)
	}
	resp, err := c.send(req, state)
	if err != nil {
		return err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NormalizeError(err)
	}
	return nil
}

// getJSON is doJSON for idempotent reads, with the client's generic retry
// policy applied. Each attempt is a fresh logical request; authentication
// failures are excluded from this policy entirely.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	cfg := c.retry
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if delay := cfg.backoffDelay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return NormalizeError(ctx.Err())
			case <-time.After(delay):
			}
		}
		err := c.doJSON(ctx, http.MethodGet, path, nil, out, &requestState{})
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}
	return lastErr
}

func decodeJSONBody(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NormalizeError(err)
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func joinQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func injectTraceparent(ctx context.Context, req *http.Request) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return
	}
	req.Header.Set("Traceparent", fmt.Sprintf("00-%s-%s-01", sc.TraceID().String(), sc.SpanID().String()))
}
