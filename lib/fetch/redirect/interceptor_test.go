package redirect

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"catseek/lib/fetch"

	"github.com/stretchr/testify/require"
)

// script replays a fixed sequence of responses and snapshots every
// request it is handed.
type script struct {
	t         *testing.T
	responses []*fetch.Response
	requests  []*fetch.Request
}

func (s *script) handler() fetch.Handler {
	return func(ctx context.Context, req *fetch.Request) (*fetch.Response, error) {
		require.Less(s.t, len(s.requests), len(s.responses), "more requests sent than scripted")
		s.requests = append(s.requests, req.Clone())
		return s.responses[len(s.requests)-1], nil
	}
}

func redirectTo(status int, location string) *fetch.Response {
	h := fetch.Header{}
	if location != "" {
		h.Set("Location", location)
	}
	return &fetch.Response{StatusCode: status, Header: h}
}

func ok(body string) *fetch.Response {
	return &fetch.Response{StatusCode: 200, Header: fetch.Header{}, Body: []byte(body)}
}

func newRequest(t *testing.T, method, rawurl string, body []byte) *fetch.Request {
	req, err := fetch.NewRequest(method, rawurl, body)
	require.NoError(t, err)
	return req
}

func TestFollowDemotesToGet(t *testing.T) {
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(301, "/moved"),
		ok("done"),
	}}
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodPost, "http://example.com/a", []byte("payload"))
	res, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)

	require.Len(t, s.requests, 2)
	second := s.requests[1]
	require.Equal(t, http.MethodGet, second.Method)
	require.Nil(t, second.Body)
	require.Equal(t, "http://example.com/moved", second.URL.String())
}

func TestFollowReplays307(t *testing.T) {
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(307, "http://example.com/retry"),
		ok("done"),
	}}
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodPut, "http://example.com/a", []byte("payload"))
	_, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)

	second := s.requests[1]
	require.Equal(t, http.MethodPut, second.Method)
	require.Equal(t, []byte("payload"), second.Body)
}

func TestStandardsCompliant302Replays(t *testing.T) {
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(302, "/next"),
		ok("done"),
	}}
	i := NewInterceptor(Config{StandardsCompliant: true})

	req := newRequest(t, http.MethodPost, "http://example.com/a", []byte("payload"))
	_, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)

	second := s.requests[1]
	require.Equal(t, http.MethodPost, second.Method)
	require.Equal(t, []byte("payload"), second.Body)
}

// a replay resends the body captured at chain start, not whatever an
// intermediate demotion left behind
func TestReplayUsesOriginalBody(t *testing.T) {
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(302, "/b"),
		redirectTo(307, "/c"),
		ok("done"),
	}}
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodPost, "http://example.com/a", []byte("payload"))
	_, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)
	require.Len(t, s.requests, 3)

	// hop 2: browser-style 302 demoted to a bodyless GET
	require.Equal(t, http.MethodGet, s.requests[1].Method)
	require.Nil(t, s.requests[1].Body)

	// hop 3: 307 replays the original body
	require.Equal(t, []byte("payload"), s.requests[2].Body)
}

func TestLimitExactlyReached(t *testing.T) {
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(301, "/1"),
		redirectTo(301, "/2"),
		ok("done"),
	}}
	i := NewInterceptor(Config{Limit: 2})

	req := newRequest(t, http.MethodGet, "http://example.com/0", nil)
	res, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)
	require.Len(t, s.requests, 3)
}

func TestLimitExceeded(t *testing.T) {
	last := redirectTo(301, "/3")
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(301, "/1"),
		redirectTo(301, "/2"),
		last,
	}}
	i := NewInterceptor(Config{Limit: 2})

	req := newRequest(t, http.MethodGet, "http://example.com/0", nil)
	_, err := i.Handle(context.Background(), req, s.handler())

	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	require.Same(t, last, limitErr.LastResponse)
	// the hop past the budget is never attempted
	require.Len(t, s.requests, 3)
}

func TestMissingLocation(t *testing.T) {
	res := redirectTo(301, "")
	s := &script{t: t, responses: []*fetch.Response{res}}
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodGet, "http://example.com/a", nil)
	_, err := i.Handle(context.Background(), req, s.handler())

	var missingErr *MissingLocationError
	require.ErrorAs(t, err, &missingErr)
	require.Same(t, res, missingErr.Response)
}

func TestIneligibleMethodNotRedirected(t *testing.T) {
	res := redirectTo(301, "/elsewhere")
	s := &script{t: t, responses: []*fetch.Response{res}}
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodOptions, "http://example.com/a", nil)
	got, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)
	require.Same(t, res, got)
	require.Len(t, s.requests, 1)
}

func TestCookiesCarriedToNextHop(t *testing.T) {
	first := redirectTo(302, "/b")
	first.Header.Add("Set-Cookie", "session=abc; Path=/")
	first.Header.Add("Set-Cookie", "theme=dark")
	s := &script{t: t, responses: []*fetch.Response{first, ok("done")}}
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodGet, "http://example.com/a", nil)
	_, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)

	require.Equal(t, "session=abc;theme=dark", s.requests[1].Header.Get("Cookie"))
}

func TestCookiePolicyNone(t *testing.T) {
	first := redirectTo(302, "/b")
	first.Header.Add("Set-Cookie", "session=abc")
	s := &script{t: t, responses: []*fetch.Response{first, ok("done")}}
	i := NewInterceptor(Config{Cookies: CookieNone})

	req := newRequest(t, http.MethodGet, "http://example.com/a", nil)
	_, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)

	require.Equal(t, "", s.requests[1].Header.Get("Cookie"))
}

// relative locations resolve against the url of the hop that produced
// them, not against the original url
func TestRelativeLocationResolution(t *testing.T) {
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(301, "http://other.example.com/x/y"),
		redirectTo(301, "../z"),
		ok("done"),
	}}
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodGet, "http://example.com/a", nil)
	_, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)

	require.Equal(t, "http://other.example.com/x/y", s.requests[1].URL.String())
	require.Equal(t, "http://other.example.com/z", s.requests[2].URL.String())
}

func TestTransportErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("connection refused")
	i := NewInterceptor(Config{})

	req := newRequest(t, http.MethodGet, "http://example.com/a", nil)
	_, err := i.Handle(context.Background(), req, func(context.Context, *fetch.Request) (*fetch.Response, error) {
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)
}

func TestSingleRedirectChain(t *testing.T) {
	s := &script{t: t, responses: []*fetch.Response{
		redirectTo(301, "/b"),
		ok("X"),
	}}
	i := NewInterceptor(Config{Limit: 3})

	req := newRequest(t, http.MethodGet, "http://example.com/a", nil)
	res, err := i.Handle(context.Background(), req, s.handler())
	require.NoError(t, err)

	require.Len(t, s.requests, 2)
	require.Equal(t, 200, res.StatusCode)
	require.Equal(t, []byte("X"), res.Body)
	require.Equal(t, "http://example.com/b", s.requests[1].URL.String())
}
