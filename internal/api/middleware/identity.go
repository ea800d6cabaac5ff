package middleware

import (
	"context"
	"net/http"
)

const userIDHeader = "X-User-Id"

const userIDKey ctxKey = iota + 1

// Identity extracts the caller's user id from the X-User-Id header and puts
// it on the request context. Authentication itself happens upstream; this
// service trusts the header as an opaque identifier. Requests without the
// header proceed anonymously and handlers that need an identity reject them.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID retrieves the caller's user id from context. Returns an empty
// string for anonymous requests.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
