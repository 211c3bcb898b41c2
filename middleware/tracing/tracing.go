// Package tracing starts an OpenTelemetry span per request, named after the
// route pattern that answered it.
package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/zatxm/hroute"
)

const defaultInstrumentationName = "github.com/zatxm/hroute"

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

func (m *MiddlewareBuilder) Build() hroute.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(defaultInstrumentationName)
	}

	return func(next hroute.Handler) hroute.Handler {
		return func(c *hroute.Context) error {
			req := c.Request().Req()
			reqCtx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
			reqCtx, span := m.Tracer.Start(reqCtx, "unknown", trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", req.Method),
				attribute.String("http.host", req.Host),
				attribute.String("http.url", req.URL.String()),
				attribute.String("http.scheme", c.Request().Scheme()),
				attribute.String("http.proto", req.Proto),
				attribute.String("component", "web"),
			)
			c.SetContext(reqCtx)

			err := next(c)

			if route := c.HandlerPath(); route != "" {
				span.SetName(route)
				span.SetAttributes(attribute.String("http.route", route))
			}
			span.SetAttributes(attribute.Int("http.status_code", c.Status()))
			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case c.Status() >= http.StatusInternalServerError:
				span.SetStatus(codes.Error, http.StatusText(c.Status()))
			}
			return err
		}
	}
}
