// internal/middleware/accesslog.go
//
// Per-request logger and access log.
//
// AccessLog derives a child of the base zap logger carrying the chi request
// id, stores it in the context for handlers (logger.FromContext), and
// writes one line when the response completes.  Status codes and latency
// also feed the Prometheus collectors in internal/metrics.
//
// Order: after middleware.RequestID and requestinfo.Enrich, so both the id
// and the parsed client data are available.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/folio/internal/logger"
	"github.com/yanizio/folio/internal/metrics"
	"github.com/yanizio/folio/internal/requestinfo"
)

// AccessLog returns the middleware bound to base.
func AccessLog(base *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := base.With("req_id", chimw.GetReqID(r.Context()))
			r = r.WithContext(logger.WithContext(r.Context(), reqLog))

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			metrics.HTTPRequests.WithLabelValues(strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.Observe(elapsed.Seconds())

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"dur", elapsed,
			}
			if info := requestinfo.FromContext(r.Context()); info != nil {
				fields = append(fields, "browser", info.Agent.Browser, "device", info.Agent.Device)
				if info.Geo.CountryISO != "" {
					fields = append(fields, "country", info.Geo.CountryISO)
				}
			}
			switch {
			case status >= 500:
				reqLog.Errorw("request", fields...)
			case status >= 400:
				reqLog.Warnw("request", fields...)
			default:
				reqLog.Infow("request", fields...)
			}
		})
	}
}
