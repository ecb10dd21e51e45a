// Package fetch defines the request/response shapes and the stage
// pipeline that catseek sends HTTP traffic through. A Transport
// performs exactly one exchange; everything else (redirect following,
// tracing, logging) is layered on top as pipeline stages.
package fetch

import (
	"context"
	"net/url"
)

// Request is one outbound HTTP request. Body is opaque, nil means no
// body. Requests are rewritten between pipeline hops, never mutated
// while in flight.
type Request struct {
	Method string
	URL    *url.URL
	Header Header
	Body   []byte
}

func NewRequest(method, rawurl string, body []byte) (*Request, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: method,
		URL:    u,
		Header: Header{},
		Body:   body,
	}, nil
}

// Clone returns a copy of r that shares no mutable state with it.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	u := *r.URL
	return &Request{
		Method: r.Method,
		URL:    &u,
		Header: r.Header.Clone(),
		Body:   r.Body,
	}
}

type Response struct {
	StatusCode int
	Header     Header
	Body       []byte
}

// Transport performs a single request/response exchange. It has no
// redirect awareness of its own and its errors are opaque to the
// stages above it.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
}

// Handler sends a request through the remainder of a pipeline.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Stage is one layer of a pipeline. It delegates to next and
// post-processes the result, possibly calling next more than once.
type Stage interface {
	Handle(ctx context.Context, req *Request, next Handler) (*Response, error)
}

// NewPipeline composes stages over transport at construction time.
// stages[0] is outermost; the transport terminates the chain.
func NewPipeline(transport Transport, stages ...Stage) Handler {
	h := Handler(transport.RoundTrip)
	for i := len(stages) - 1; i >= 0; i-- {
		stage := stages[i]
		inner := h
		h = func(ctx context.Context, req *Request) (*Response, error) {
			return stage.Handle(ctx, req, inner)
		}
	}
	return h
}
