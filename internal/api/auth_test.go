package api_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/session"
	"github.com/white3332/ai-planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ReturnsSession(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.LoginToken = "issued-token"

	c := api.NewClient(backend.URL(), 5000, session.NewMemory(), api.NoopObserver{})
	res, err := c.Login(context.Background(), "kim@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "issued-token", res.Session.Token)
	assert.Equal(t, "kim@example.com", res.Session.User.Email)
}

func TestSignup_Created(t *testing.T) {
	backend := testutil.NewFakeBackend(t)

	c := api.NewClient(backend.URL(), 5000, session.NewMemory(), api.NoopObserver{})
	err := c.Signup(context.Background(), "Kim", "kim@example.com", "secret")
	assert.NoError(t, err)
}

func TestSocialLoginURL(t *testing.T) {
	c := api.NewClient("http://backend:8000", 5000, session.NewMemory(), api.NoopObserver{})

	u, err := c.SocialLoginURL(domain.ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8000/auth/google", u)

	u, err = c.SocialLoginURL(domain.ProviderKakao)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8000/auth/kakao", u)

	_, err = c.SocialLoginURL(domain.AuthProvider("github"))
	assert.ErrorIs(t, err, api.ErrUnknownProvider)
}

// fakeJWT builds an unsigned token with the given JSON payload.
func fakeJWT(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"none"}`)) + "." + enc([]byte(payload)) + ".sig"
}

func TestSessionFromCallback_URLWithToken(t *testing.T) {
	token := fakeJWT(`{"name":"Kim","email":"kim@example.com","provider":"kakao"}`)

	s, err := api.SessionFromCallback("http://localhost:3000/auth/callback?token=" + token)
	require.NoError(t, err)

	assert.Equal(t, token, s.Token)
	assert.Equal(t, "Kim", s.User.Name)
	assert.Equal(t, "kim@example.com", s.User.Email)
	assert.Equal(t, domain.ProviderKakao, s.User.Provider)
}

func TestSessionFromCallback_BareToken(t *testing.T) {
	token := fakeJWT(`{"email":"lee@example.com"}`)

	s, err := api.SessionFromCallback(token)
	require.NoError(t, err)
	assert.Equal(t, "lee@example.com", s.User.Email)
}

func TestSessionFromCallback_UndecodablePayloadStillSignsIn(t *testing.T) {
	s, err := api.SessionFromCallback("not.a-jwt")
	require.NoError(t, err)
	assert.Equal(t, "not.a-jwt", s.Token)
	assert.Empty(t, s.User.Email)
}

func TestSessionFromCallback_NoToken(t *testing.T) {
	_, err := api.SessionFromCallback("")
	assert.ErrorIs(t, err, api.ErrNoToken)
}

func TestStats_Decodes(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Stats = domain.StudyStats{TodayHours: 3.5, WeeklyProgress: 60, StreakDays: 12, TotalPoints: 900}

	c := api.NewClient(backend.URL(), 5000, session.NewMemory(), api.NoopObserver{})
	stats, err := c.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3.5, stats.TodayHours)
	assert.Equal(t, 12, stats.StreakDays)
}
