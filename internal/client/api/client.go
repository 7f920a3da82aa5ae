package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"course-api/internal/client/session"
)

// ErrSessionExpired is returned when no usable refresh token exists or a
// refresh exchange fails; the session has been cleared.
var ErrSessionExpired = errors.New("session expired")

const defaultRefreshTimeout = 15 * time.Second

// Config configures the guarded API client.
type Config struct {
	BaseUrl      string
	SessionStore *session.Store

	// EnableRefresh gates the whole 401-refresh protocol. When false any
	// 401 clears the session immediately; no retry logic runs.
	EnableRefresh bool

	// OnSessionExpired is invoked after the session is cleared, the
	// redirect-to-login analogue. Optional.
	OnSessionExpired func()

	// RefreshTimeout bounds the refresh exchange so a hung call cannot
	// stall every queued request. Defaults to 15s.
	RefreshTimeout time.Duration

	HttpClient *http.Client
}

// Client wraps outbound requests with session handling: it attaches the
// bearer token read fresh from durable storage, intercepts 401 responses
// and performs at most one concurrent refresh exchange, replaying the
// failed request exactly once with the new token.
type Client struct {
	httpClient       *http.Client
	baseUrl          string
	sessionStore     *session.Store
	enableRefresh    bool
	onSessionExpired func()
	refreshTimeout   time.Duration
	refreshGroup     singleflight.Group
}

func NewClient(config Config) *Client {
	httpClient := config.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	refreshTimeout := config.RefreshTimeout
	if refreshTimeout <= 0 {
		refreshTimeout = defaultRefreshTimeout
	}

	return &Client{
		httpClient:       httpClient,
		baseUrl:          config.BaseUrl,
		sessionStore:     config.SessionStore,
		enableRefresh:    config.EnableRefresh,
		onSessionExpired: config.OnSessionExpired,
		refreshTimeout:   refreshTimeout,
	}
}

type requestOptions struct {
	skipAuth bool
}

type Option func(*requestOptions)

// WithSkipAuth marks a request as unauthenticated: no bearer token is
// attached and a 401 response is propagated unchanged.
func WithSkipAuth() Option {
	return func(options *requestOptions) {
		options.skipAuth = true
	}
}

func (c *Client) Get(ctx context.Context, path string, result interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodGet, path, nil, result, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, result interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodPost, path, body, result, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, result interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodPut, path, body, result, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, result interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodPatch, path, body, result, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, result interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodDelete, path, nil, result, opts...)
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	body, result interface{},
	opts ...Option,
) error {
	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	var bearerToken string
	if !options.skipAuth {
		// Always read through durable storage, never in-memory state.
		bearerToken = c.sessionStore.AccessToken()
	}

	statusCode, respBody, err := c.send(ctx, method, path, body, bearerToken)
	if err != nil {
		return err
	}

	if statusCode == http.StatusUnauthorized && !options.skipAuth {
		if !c.enableRefresh {
			c.expireSession()
			return decodeError(statusCode, respBody)
		}

		accessToken, refreshErr := c.refreshAccessToken()
		if refreshErr != nil {
			return refreshErr
		}

		// Replay exactly once with the fresh token; a second 401 falls
		// through as a plain error below.
		statusCode, respBody, err = c.send(ctx, method, path, body, accessToken)
		if err != nil {
			return err
		}
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return decodeError(statusCode, respBody)
	}

	return decodeSuccess(respBody, result)
}

// refreshAccessToken exchanges the stored refresh token for a new pair.
// Concurrent callers share one in-flight exchange; the group entry is
// forgotten once it settles, so a later 401 starts a fresh one.
func (c *Client) refreshAccessToken() (string, error) {
	accessToken, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		refreshToken := c.sessionStore.RefreshToken()
		if refreshToken == "" {
			c.expireSession()
			return nil, ErrSessionExpired
		}

		// Detached from caller contexts: an abandoned caller must not
		// cancel the exchange other waiters depend on.
		ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
		defer cancel()

		statusCode, respBody, err := c.send(
			ctx,
			http.MethodPost,
			"/auth/refresh",
			refreshRequest{RefreshToken: refreshToken},
			"",
		)
		if err != nil {
			c.expireSession()
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}

		if statusCode != http.StatusOK {
			c.expireSession()
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, decodeError(statusCode, respBody))
		}

		var tokenResponse TokenResponse
		err = decodeSuccess(respBody, &tokenResponse)
		if err != nil {
			c.expireSession()
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}

		err = c.sessionStore.SetCredentials(
			tokenResponse.AccessToken,
			tokenResponse.RefreshToken,
			tokenResponse.ExpiresIn,
			tokenResponse.RefreshExpiresIn,
		)
		if err != nil {
			return nil, err
		}

		if tokenResponse.User != nil {
			c.sessionStore.SetUser(tokenResponse.User)
		}

		return tokenResponse.AccessToken, nil
	})
	if err != nil {
		return "", err
	}

	return accessToken.(string), nil
}

func (c *Client) expireSession() {
	_ = c.sessionStore.RemoveCredentials()
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func (c *Client) send(
	ctx context.Context,
	method, path string,
	body interface{},
	bearerToken string,
) (int, []byte, error) {
	requestUrl := c.baseUrl + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestUrl, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

func decodeSuccess(respBody []byte, result interface{}) error {
	if result == nil {
		return nil
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	err := json.Unmarshal(respBody, &envelope)
	if err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, result)
	}

	return json.Unmarshal(respBody, result)
}

func decodeError(statusCode int, respBody []byte) error {
	var envelope errorEnvelope
	err := json.Unmarshal(respBody, &envelope)
	if err == nil && envelope.Error.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    envelope.Error.Message,
			Code:       envelope.Error.Code,
			Details:    envelope.Error.Details,
		}
	}

	// Last-resort wording when the response is not envelope shaped.
	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("request failed with status %d", statusCode),
	}
}

// Register creates an account. Unauthenticated by design.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp, WithSkipAuth())
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var resp TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, WithSkipAuth())
	if err != nil {
		return nil, err
	}

	err = c.sessionStore.SetCredentials(
		resp.AccessToken,
		resp.RefreshToken,
		resp.ExpiresIn,
		resp.RefreshExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	if resp.User != nil {
		c.sessionStore.SetUser(resp.User)
	}

	return &resp, nil
}

func (c *Client) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	var resp MessageResponse
	path := "/auth/verify-email?token=" + url.QueryEscape(token)
	err := c.do(ctx, http.MethodGet, path, &resp, WithSkipAuth())
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	var resp MessageResponse
	body := map[string]string{"email": email}
	err := c.do(ctx, http.MethodPost, "/auth/resend-verification", body, &resp, WithSkipAuth())
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// Me fetches the authenticated profile and caches it in the store.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var resp session.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp)
	if err != nil {
		return nil, err
	}

	c.sessionStore.SetUser(&resp)
	return &resp, nil
}

// Logout is client-side only: the server holds no revocation list.
func (c *Client) Logout() error {
	return c.sessionStore.RemoveCredentials()
}
