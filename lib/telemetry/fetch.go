package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"catseek/lib/fetch"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FetchStage traces every exchange that passes through a fetch
// pipeline. Placed inside the redirect interceptor it produces one
// span per hop.
type FetchStage struct {
	tracer trace.Tracer
}

func NewFetchStage(tracerName string) FetchStage {
	return FetchStage{tracer: Tracer(tracerName)}
}

func (s FetchStage) Handle(ctx context.Context, req *fetch.Request, next fetch.Handler) (*fetch.Response, error) {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("http %s", req.Method))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", req.URL.String()),
	)
	instrumentHeaders(span, "request", req.Header)

	slog.DebugContext(ctx, "start request", "method", req.Method, "url", req.URL.String())

	res, err := next(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		slog.ErrorContext(
			ctx, "request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"err", err,
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))
	instrumentHeaders(span, "response", res.Header)

	slog.DebugContext(
		ctx, "request succeeded",
		"method", req.Method,
		"url", req.URL.String(),
		"status", res.StatusCode,
	)
	return res, nil
}

func instrumentHeaders(span trace.Span, prefix string, headers fetch.Header) {
	var attrs []attribute.KeyValue
	for header, values := range headers {
		if len(values) == 1 {
			attrs = append(attrs, attribute.KeyValue{
				Key:   attribute.Key(fmt.Sprintf("%s/header: %s", prefix, header)),
				Value: attribute.StringValue(values[0]),
			})
			continue
		}
		for i, v := range values {
			attrs = append(attrs, attribute.KeyValue{
				Key:   attribute.Key(fmt.Sprintf("%s/header: %s (%d)", prefix, header, i)),
				Value: attribute.StringValue(v),
			})
		}
	}
	span.SetAttributes(attrs...)
}
