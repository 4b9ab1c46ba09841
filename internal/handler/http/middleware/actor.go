package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-employee-import/internal/pkg/jwt"
	"github.com/go-chi/httplog/v3"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ResolveActor stores the caller named by a verified bearer token in the
// request context. Requests without a valid token pass through anonymously.
func ResolveActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := jwt.ActorFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		httplog.SetAttrs(r.Context(), slog.String("actor", actor))
		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Actor returns the caller resolved by ResolveActor, or "" when anonymous.
func Actor(ctx context.Context) string {
	actor, _ := ctx.Value(actorContextKey).(string)
	return actor
}
