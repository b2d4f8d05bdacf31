package middleware

import (
	"net/http"
	"strings"

	"github.com/Hosi121/Bansho-sub000/internal/auth"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// PublicPaths are served without a session. Entries ending in "/" match
// every path below them.
var PublicPaths = []string{
	"/health",
	"/metrics",
	"/uploads/",
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/forgot-password",
	"/api/auth/reset-password",
}

// AuthMiddleware verifies the bearer token and stores the user ID in the
// request context. Paths in public skip the check.
func AuthMiddleware(verifier auth.JWTVerifier, public []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path, public) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func isPublic(path string, public []string) bool {
	for _, p := range public {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}
