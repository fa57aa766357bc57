// Package session serializes the authenticated-user state carried between
// requests. A Session holds exactly the user id and role; on the wire it is
// a signed HS256 token stored in an HttpOnly cookie.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskr/internal/domain"
)

// CookieName is the cookie carrying the session token.
const CookieName = "taskr_session"

var (
	// ErrNoSession indicates the request carries no usable session.
	ErrNoSession = errors.New("not authenticated")
)

// Session is the authentication state for one client.
type Session struct {
	UserID int64
	Role   domain.Role
}

// Manager signs and verifies session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue encodes the session as a signed token.
func (m *Manager) Issue(sess Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": sess.UserID,
		"role":    string(sess.Role),
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the session it carries. Any failure
// (bad signature, wrong method, expiry, malformed claims) yields ErrNoSession:
// the caller is simply anonymous.
func (m *Manager) Parse(tokenString string) (Session, error) {
	if tokenString == "" {
		return Session{}, ErrNoSession
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrNoSession
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return Session{}, ErrNoSession
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(domain.RoleUser)
	}

	return Session{
		UserID: int64(userID),
		Role:   domain.Role(role),
	}, nil
}
