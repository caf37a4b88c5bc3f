package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cesargomez89/praiseteam/internal/constants"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("praise123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewService("admin", string(hash), testSecret)
}

func TestLogin(t *testing.T) {
	s := newTestService(t)

	token, user, err := s.Login("admin", "praise123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, constants.AdminUserID, user.ID)

	verified, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", verified.Username)

	_, _, err = s.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login("root", "praise123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_Rejects(t *testing.T) {
	s := newTestService(t)
	token, _, err := s.Login("admin", "praise123")
	require.NoError(t, err)

	other := NewService("admin", "", "another-secret-of-enough-length")
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = s.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired token must be rejected")
}

func TestVerify_RejectsOtherAlgorithm(t *testing.T) {
	s := newTestService(t)
	claims := Claims{
		UserID: constants.AdminUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   constants.AdminUserID,
			Issuer:    constants.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	s := newTestService(t)
	token, _, err := s.Login("admin", "praise123")
	require.NoError(t, err)

	var seen *User
	h := s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	// no token
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/songs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")

	// bad token
	req := httptest.NewRequest(http.MethodPost, "/api/songs", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")

	// cookie
	req = httptest.NewRequest(http.MethodPost, "/api/songs", nil)
	req.AddCookie(SessionCookie(token, false))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin", seen.Username)

	// bearer
	req = httptest.NewRequest(http.MethodPost, "/api/songs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie("abc", true)
	assert.Equal(t, constants.AdminCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, 7*24*60*60, c.MaxAge)

	cleared := SessionCookie("", false)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.True(t, strings.HasPrefix(cleared.Path, "/"))
}
