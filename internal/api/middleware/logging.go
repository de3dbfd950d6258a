// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/BlackRoad-OS/roadyaml/internal/log"
)

// Logging returns a middleware that writes one structured access log entry
// per request and attaches a request-scoped logger to the context for
// downstream handlers.
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger := log.WithContext(r.Context(), log.Base())
			ctx := reqLogger.WithContext(r.Context())

			next.ServeHTTP(ww, r.WithContext(ctx))

			route := r.URL.Path
			if rctx := chi.RouteContext(ctx); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			reqLogger.Info().
				Str(log.FieldEvent, "http.request").
				Str(log.FieldMethod, r.Method).
				Str(log.FieldRoute, route).
				Int(log.FieldStatus, ww.Status()).
				Int(log.FieldBytes, ww.BytesWritten()).
				Int64(log.FieldDurationMS, time.Since(start).Milliseconds()).
				Str(log.FieldRemoteIP, r.RemoteAddr).
				Msg("request")
		})
	}
}
