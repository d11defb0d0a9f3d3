package middleware

import (
	"fmt"
	"net/http"

	"github.com/api-sage/transfer-engine/src/internal/logger"
)

// Recover converts a handler panic into a logged 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.Error("http handler panic", fmt.Errorf("%v", rec), logger.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
