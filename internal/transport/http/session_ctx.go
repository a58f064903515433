package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	apierrors "wodash/internal/errors"
	"wodash/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCtx resolves the Bearer token into a session and stores it in the
// request context. Requests without a valid token get a 401 problem.
func SessionCtx(auth AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := auth.Authenticate(bearerToken(r))
			if !ok {
				render.Render(w, r, apierrors.Unauthorized(r.URL.Path))
				return
			}
			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session placed by SessionCtx.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	return sess, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(after)
	}
	return ""
}
