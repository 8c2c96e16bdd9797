package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/openclintech/go-triage-server/internal/tracing"
)

func Tracing(route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := route(r)
			ctx, span := tracing.StartServerSpan(r.Context(), r.Method+" "+name,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", name),
				attribute.String("request.id", GetRequestID(r.Context())),
			)
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))
			tracing.SetStatusFromHTTPCode(span, rec.code())
		})
	}
}
