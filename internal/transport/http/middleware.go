package http

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Identity headers are installed by the fronting session layer; this
// service trusts them and never sees credentials.
const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"

	roleAdmin = "admin"
)

type userIDKey struct{}
type userRoleKey struct{}

// Identity copies the authenticated user id and role from request headers
// into the context. Requests without a user id stay anonymous; individual
// routes decide whether that is acceptable.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := r.Header.Get(userIDHeader); id != "" {
			ctx = context.WithValue(ctx, userIDKey{}, id)
		}
		if role := r.Header.Get(userRoleHeader); role != "" {
			ctx = context.WithValue(ctx, userRoleKey{}, role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

func isAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(userRoleKey{}).(string)
	return role == roleAdmin
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userIDFromContext(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, codeUnidentifiedUser, "unidentified user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose identity is not an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r.Context()) {
			writeError(w, http.StatusForbidden, codeForbidden, "access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs basic request details and latency.
func RequestLogger(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Printf(
			"request method=%s path=%s status=%d duration=%s",
			r.Method,
			r.URL.Path,
			rec.status,
			time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
