package httpmw

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/begamot/pethosting/pkg/logger"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogger пишет access-лог вида "метод путь -> статус длительность"
// с trace-атрибутами из контекста, если запрос пришел со span-ом.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.Duration("duration", time.Since(start)),
		}
		attrs = append(attrs, logger.AttrsFromCtx(r.Context())...)
		slog.LogAttrs(r.Context(), slog.LevelInfo, "http request", attrs...)
	})
}
