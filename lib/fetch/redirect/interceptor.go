package redirect

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"catseek/lib/fetch"
)

const DefaultLimit = 3

// CookiePolicy controls whether cookies set by intermediate responses
// are carried to subsequent hops.
type CookiePolicy int

const (
	CookieAll CookiePolicy = iota
	CookieNone
)

type Config struct {
	// Limit is the maximum number of redirects followed in one
	// chain. Zero means DefaultLimit.
	Limit int
	// StandardsCompliant selects RFC-faithful 302 handling (replay)
	// over the browser-compatible demote-to-GET.
	StandardsCompliant bool
	Cookies            CookiePolicy
}

// LimitError reports an eligible redirect observed after the hop
// budget was already exhausted. LastResponse is the response of the
// hop that triggered it.
type LimitError struct {
	LastResponse *fetch.Response
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("redirect limit reached, last status %d", e.LastResponse.StatusCode)
}

// MissingLocationError reports a redirect status with no usable
// Location header.
type MissingLocationError struct {
	Response *fetch.Response
}

func (e *MissingLocationError) Error() string {
	return fmt.Sprintf("redirect status %d without a usable Location header", e.Response.StatusCode)
}

// Interceptor is the fetch.Stage that follows redirects. It holds
// configuration only; all per-chain state lives in the Handle call,
// so one Interceptor value is safe to share between concurrent
// chains.
type Interceptor struct {
	cfg Config
}

func NewInterceptor(cfg Config) *Interceptor {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	return &Interceptor{cfg: cfg}
}

// Handle sends req through next, transparently following redirects
// until a terminal response or the hop budget is exhausted. Errors
// returned by next pass through untouched; LimitError and
// MissingLocationError are the only failures raised here, and neither
// is retried.
func (i *Interceptor) Handle(ctx context.Context, req *fetch.Request, next fetch.Handler) (*fetch.Response, error) {
	current := req
	// the body of the initial request, captured once so a replay
	// resends it even if an intermediate hop dropped the body
	originalBody := req.Body
	hopsLeft := i.cfg.Limit
	jar := NewJar()

	for {
		res, err := next(ctx, current)
		if err != nil {
			return nil, err
		}

		action := Decide(current.Method, res.StatusCode, i.cfg.StandardsCompliant)
		if action == NoRedirect {
			return res, nil
		}
		if hopsLeft == 0 {
			return nil, &LimitError{LastResponse: res}
		}

		location := res.Header.Get("Location")
		if location == "" {
			return nil, &MissingLocationError{Response: res}
		}
		ref, err := url.Parse(location)
		if err != nil {
			// an unparseable Location is as unusable as a missing one
			return nil, &MissingLocationError{Response: res}
		}

		// relative references resolve against the url of the hop
		// that produced the redirect, not the original url
		nextReq := current.Clone()
		nextReq.URL = current.URL.ResolveReference(ref)

		if i.cfg.Cookies == CookieAll {
			if cookie, ok := jar.Collect(res.Header); ok {
				nextReq.Header.Set("Cookie", cookie)
			}
		}

		switch action {
		case FollowAsGet:
			nextReq.Method = http.MethodGet
			nextReq.Body = nil
		case FollowAsReplay:
			nextReq.Body = originalBody
		}

		slog.DebugContext(
			ctx, "following redirect",
			"status", res.StatusCode,
			"action", action.String(),
			"location", nextReq.URL.String(),
			"hops_left", hopsLeft,
		)

		hopsLeft--
		current = nextReq
	}
}
