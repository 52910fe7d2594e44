package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/logger"
	"github.com/white3332/ai-planner/internal/session"
)

// AuthService is the authentication surface of the backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Signup(ctx context.Context, name, email, password string) error
	SocialLoginURL(provider domain.AuthProvider) (string, error)
}

// LoginResult is what a successful credential login yields.
type LoginResult struct {
	Message string
	Session session.Session
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Provider string `json:"provider"`
	} `json:"user"`
}

// Login verifies credentials against the backend and returns the session
// to cache. The backend owns password checking; nothing is verified here.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, "auth.login", http.MethodPost, "/api/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Message: resp.Message,
		Session: session.Session{
			Token: resp.Token,
			User: domain.UserProfile{
				Name:     resp.User.Name,
				Email:    resp.User.Email,
				Provider: domain.AuthProvider(resp.User.Provider),
			},
		},
	}, nil
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. The caller logs in separately.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	return c.do(ctx, "auth.signup", http.MethodPost, "/api/signup", signupRequest{Name: name, Email: email, Password: password}, nil)
}

// SocialLoginURL returns the backend URL that starts the OAuth redirect
// dance for the given provider. The user opens it in a browser; the
// backend eventually redirects to a callback URL carrying a token.
func (c *Client) SocialLoginURL(provider domain.AuthProvider) (string, error) {
	switch provider {
	case domain.ProviderGoogle:
		return c.baseURL + "/auth/google", nil
	case domain.ProviderKakao:
		return c.baseURL + "/auth/kakao", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
}

// SessionFromCallback extracts the session from an OAuth callback URL
// (or a bare token pasted by the user). The JWT payload is decoded for
// the cached profile but never verified — signature checking belongs to
// the backend. An undecodable payload still yields a valid session.
func SessionFromCallback(raw string) (*session.Session, error) {
	token := raw
	if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		if t := u.Query().Get("token"); t != "" {
			token = t
		}
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoToken
	}

	s := &session.Session{Token: token}
	if profile, ok := decodeJWTProfile(token); ok {
		s.User = profile
	}
	return s, nil
}

// jwtClaims is the subset of the backend's JWT payload we cache locally.
type jwtClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

func decodeJWTProfile(token string) (domain.UserProfile, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domain.UserProfile{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		logger.Debug("jwt payload not decodable", "err", err)
		return domain.UserProfile{}, false
	}
	var claims jwtClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		logger.Debug("jwt claims not parseable", "err", err)
		return domain.UserProfile{}, false
	}
	return domain.UserProfile{
		Name:     claims.Name,
		Email:    claims.Email,
		Provider: domain.AuthProvider(claims.Provider),
	}, true
}
