package telemetry

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HTTPMiddleware starts a server span around each request, named after the
// request path, the net/http equivalent of the gRPC unary server interceptor
// this platform used to install around every proto-generated RPC.
func HTTPMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := StartSpan(r.Context(), r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
			span.SetStatus(codes.Ok, "")
		})
	}
}
