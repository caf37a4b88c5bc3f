// Package auth guards the admin surface with a single bcrypt-checked
// account and HS256 session tokens.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cesargomez89/praiseteam/internal/constants"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingToken       = errors.New("missing token")
)

// Claims is the session token payload.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// User identifies the authenticated admin.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Service struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewService(username, passwordHash, secret string) *Service {
	return &Service{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          constants.AdminTokenTTL,
		now:          time.Now,
	}
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(username, password string) (string, *User, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil || !userOK {
		return "", nil, ErrInvalidCredentials
	}

	user := &User{ID: constants.AdminUserID, Username: s.username}
	token, err := s.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) Issue(user *User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    constants.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token.
func (s *Service) Verify(tokenString string) (*User, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(constants.JWTIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, ErrInvalidToken
	}

	return &User{ID: claims.UserID, Username: claims.Username}, nil
}

// TokenFromRequest reads the session cookie, falling back to a bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(constants.AdminCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// SessionCookie wraps a token in the admin cookie. An empty token clears it.
func SessionCookie(token string, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     constants.AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(constants.AdminTokenTTL.Seconds()),
	}
	if token == "" {
		c.MaxAge = -1
	}
	return c
}

type ctxKey struct{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*User)
	return user, ok
}
