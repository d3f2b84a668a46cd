package sdk

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-go/headers"
	"github.com/lingoflow/lingoflow-go/routes"
)

// SessionTokens is the token pair issued by the auth endpoints.
type SessionTokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	ExpiresIn    int       `json:"expires_in"`
	TokenType    string    `json:"token_type"`
	UserID       uuid.UUID `json:"user_id"`
	IsNewUser    bool      `json:"is_new_user"`
}

// AuthClient wraps session-authentication endpoints.
type AuthClient struct {
	client *Client
}

// TelegramLogin exchanges a signed Telegram WebApp init payload for a session
// token pair and stores the access token on the client's credential store.
func (a *AuthClient) TelegramLogin(ctx context.Context, initData string) (SessionTokens, error) {
	if a == nil || a.client == nil {
		return SessionTokens{}, ConfigError{Reason: "auth client not initialized"}
	}
	if strings.TrimSpace(initData) == "" {
		return SessionTokens{}, ConfigError{Reason: "telegram init data is required"}
	}
	req, err := a.client.newJSONRequest(ctx, http.MethodPost, routes.AuthTelegram, nil)
	if err != nil {
		return SessionTokens{}, NormalizeError(err)
	}
	req.Header.Set(headers.TelegramInitData, initData)
	tokens, err := a.exchange(req)
	if err != nil {
		return SessionTokens{}, err
	}
	return tokens, nil
}

type refreshSessionRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshSession rotates a refresh token into a new session token pair and
// stores the new access token. The request skips bearer auth: the stored
// access token is exactly what is being replaced, and a rejected rotation
// must never recurse into another refresh.
func (a *AuthClient) RefreshSession(ctx context.Context, refreshToken string) (SessionTokens, error) {
	if a == nil || a.client == nil {
		return SessionTokens{}, ConfigError{Reason: "auth client not initialized"}
	}
	if strings.TrimSpace(refreshToken) == "" {
		return SessionTokens{}, ConfigError{Reason: "refresh token is required"}
	}
	req, err := a.client.newJSONRequest(ctx, http.MethodPost, routes.AuthRefresh, refreshSessionRequest{RefreshToken: refreshToken})
	if err != nil {
		return SessionTokens{}, NormalizeError(err)
	}
	return a.exchange(req)
}

func (a *AuthClient) exchange(req *http.Request) (SessionTokens, error) {
	resp, err := a.client.send(req, &requestState{SkipAuth: true})
	if err != nil {
		return SessionTokens{}, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	var tokens SessionTokens
	if err := decodeJSONBody(resp, &tokens); err != nil {
		return SessionTokens{}, err
	}
	if tokens.AccessToken != "" {
		a.client.creds.SetToken(tokens.AccessToken)
	}
	return tokens, nil
}

// NewSessionRefreshFunc adapts RefreshSession into the RefreshFunc shape the
// credential store expects, carrying refresh-token rotation across calls.
// Register the result with Credentials().SetRefreshFunc.
func NewSessionRefreshFunc(auth *AuthClient, refreshToken string) RefreshFunc {
	var mu sync.Mutex
	current := refreshToken
	return func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if current == "" {
			return "", nil
		}
		tokens, err := auth.RefreshSession(ctx, current)
		if err != nil {
			return "", err
		}
		if tokens.RefreshToken != "" {
			current = tokens.RefreshToken
		}
		return tokens.AccessToken, nil
	}
}
