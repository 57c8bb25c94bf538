package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// ConfirmationHeader must be sent on destructive endpoints. Clients set it
// after showing the operator an explicit confirmation prompt.
const ConfirmationHeader = "X-Confirm"

// RequireConfirmation rejects destructive requests that do not carry the
// confirmation header
func RequireConfirmation(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(ConfirmationHeader) != "true" {
				logger.Debug("Destructive request missing confirmation header",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				respondWithError(w, http.StatusPreconditionRequired, "confirmation required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
