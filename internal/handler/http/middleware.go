package http

import (
	"context"
	"log/slog"
	"mime"
	"net/http"

	"github.com/FItraRizky/fro/internal/store"
	"github.com/FItraRizky/fro/pkg/httputil"
	"github.com/FItraRizky/fro/pkg/logger"
)

type contextKey string

const sessionKey contextKey = "session"

// LoadSession opens the shopper session named by the session header and
// stores it in the request context. Mount it after middleware.Session.
func LoadSession(sessions *store.Registry, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sess, err := sessions.Get(ctx, logger.SessionIDFromContext(ctx))
			if err != nil {
				httputil.WriteError(w, r, err, log)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey, sess)))
		})
	}
}

// sessionFromContext returns the session stored by LoadSession.
func sessionFromContext(ctx context.Context) *store.Session {
	sess, _ := ctx.Value(sessionKey).(*store.Session)
	return sess
}

// ContentTypeJSON rejects request bodies that are not JSON with 415.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength != 0 && r.Method != http.MethodGet {
			if ct := r.Header.Get("Content-Type"); ct != "" {
				mt, _, err := mime.ParseMediaType(ct)
				if err != nil || mt != "application/json" {
					httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
						Error: &httputil.ErrorResponse{
							Code:    "UNSUPPORTED_MEDIA_TYPE",
							Message: "Content-Type must be application/json",
						},
					})
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
