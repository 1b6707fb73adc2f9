package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"yatube/app/models"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "yatube_session"

var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the user id in the subject.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"uid"`
}

// UserLookup loads a user by id.
type UserLookup interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// SessionManager keeps the user id in a signed HttpOnly cookie.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
}

func NewSessionManager(secret string, ttl time.Duration, users UserLookup) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, users: users}
}

func (m *SessionManager) GenerateToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(m.secret)
}

func (m *SessionManager) ParseToken(tokenString string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// Issue logs user in by setting the session cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, user *models.User) error {
	token, err := m.GenerateToken(user.ID)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear logs the client out.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser implements IdentityProvider.
func (m *SessionManager) CurrentUser(r *http.Request) (*models.User, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	id, err := m.ParseToken(cookie.Value)
	if err != nil {
		return nil, false
	}
	user, err := m.users.GetByID(r.Context(), id)
	if err != nil {
		return nil, false
	}
	return user, true
}
