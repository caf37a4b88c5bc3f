package auth

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Middleware rejects requests without a valid admin session.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.Verify(TokenFromRequest(r))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, ErrMissingToken) {
				msg = "Unauthorized"
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}
