// AngelaMos | 2026
// recover.go

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/carterperez-dev/templates/user-registry/internal/core"
)

func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("panic recovered",
				"panic", rec,
				"path", r.URL.Path,
				"request_id", GetRequestID(r.Context()),
				"stack", string(debug.Stack()),
			)
			core.JSONError(w, core.InternalError(nil))
		}()

		next.ServeHTTP(w, r)
	})
}
