package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatube/app/models"
	"yatube/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)

	token, err := m.GenerateToken(42)
	require.NoError(t, err)

	id, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestParseTokenRejects(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)

	other := NewSessionManager("other", time.Hour, nil)
	forged, err := other.GenerateToken(1)
	require.NoError(t, err)
	_, err = m.ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewSessionManager("secret", -time.Minute, nil)
	old, err := expired.GenerateToken(1)
	require.NoError(t, err)
	_, err = m.ParseToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionCookie(t *testing.T) {
	users := mock.NewUserRepository()
	user := &models.User{Username: "auth", PasswordHash: "h"}
	require.NoError(t, users.Create(context.Background(), user))
	m := NewSessionManager("secret", time.Hour, users)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, user))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	got, ok := m.CurrentUser(req)
	require.True(t, ok)
	assert.Equal(t, "auth", got.Username)

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok = m.CurrentUser(anon)
	assert.False(t, ok)

	rec = httptest.NewRecorder()
	m.Clear(rec)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestSessionForDeletedUser(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, mock.NewUserRepository())
	token, err := m.GenerateToken(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	_, ok := m.CurrentUser(req)
	assert.False(t, ok)
}

func TestUserContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), &models.User{ID: 1, Username: "u"})
	user, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u", user.Username)
}
