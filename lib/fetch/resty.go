package fetch

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type TransportOptions struct {
	// Proxy is a proxy url, e.g. "http://localhost:8888". Empty
	// means a direct connection.
	Proxy     string
	Timeout   time.Duration
	UserAgent string
}

// RestyTransport is a Transport backed by a resty client. The
// client's own redirect following is disabled: a redirect response is
// returned as-is so the pipeline's interceptor can decide what to do
// with it.
type RestyTransport struct {
	client *resty.Client
}

func NewRestyTransport(opts TransportOptions) *RestyTransport {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", opts.UserAgent)
	if opts.Proxy != "" {
		client.SetProxy(opts.Proxy)
	}
	client.GetClient().CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &RestyTransport{client: client}
}

func (t *RestyTransport) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	r := t.client.R().SetContext(ctx)
	if len(req.Header) > 0 {
		r.SetHeaderMultiValues(req.Header)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	res, err := r.Execute(req.Method, req.URL.String())
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: res.StatusCode(),
		Header:     Header(res.Header()).Clone(),
		Body:       res.Body(),
	}, nil
}
