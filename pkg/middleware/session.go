package middleware

import (
	"net/http"

	apperrors "github.com/FItraRizky/fro/pkg/errors"
	"github.com/FItraRizky/fro/pkg/httputil"
	"github.com/FItraRizky/fro/pkg/logger"
)

// SessionHeader names the shopper session a request acts on.
const SessionHeader = "X-Session-ID"

// Session rejects requests without a valid session header and stores the
// session ID in the context for handlers and loggers.
func Session(valid func(string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				httputil.WriteError(w, r, apperrors.InvalidInput("missing "+SessionHeader+" header"), nil)
				return
			}
			if !valid(id) {
				httputil.WriteError(w, r, apperrors.InvalidInput("invalid "+SessionHeader+" header"), nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(logger.WithSessionID(r.Context(), id)))
		})
	}
}
