package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "gateway-svc"

// Tracing starts one span per request, propagating any inbound trace
// headers and tagging the route's rate-limit category and caller.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tracer.Start(ctx, r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		category := MethodCategoryExtractor(r.URL.Path)
		span.SetAttributes(
			attribute.String("http.route", r.URL.Path),
			attribute.String("rpc.category", category),
		)

		sc := &statusCapture{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sc, r.WithContext(ctx))

		if userID := GetUserID(ctx); userID != "" {
			span.SetAttributes(attribute.String("user.id", userID))
		}

		if sc.status >= 400 {
			span.SetStatus(codes.Error, http.StatusText(sc.status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	})
}
