package middleware

import (
	"net/http"
	"strings"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/identity"
)

// TokenParser resolves a bearer token to the user it names.
type TokenParser interface {
	Parse(token string) (domain.ActingUser, error)
}

// NewIdentity returns a middleware that stores the acting user in the request
// context. The token comes from the Authorization header, or from the
// access_token query parameter for websocket upgrades that cannot set headers.
// Requests without a valid token proceed as the guest.
func NewIdentity(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			user, err := tokens.Parse(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("access_token")
}
