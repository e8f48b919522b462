package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				LoggerFrom(r).Error("panic recovered",
					slog.String("error", fmt.Sprint(err)),
					slog.String("stack", string(debug.Stack())),
				)

				var wroteHeader bool
				if rw, ok := w.(*responseWriter); ok {
					wroteHeader = rw.wroteHeader()
				}

				if !wroteHeader {
					internalError(w, r)
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}
