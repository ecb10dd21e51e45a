// Package catalog is a client for the remote catalog's HTML search
// endpoint. It wires a fetch pipeline (tracing stage + redirect
// interceptor + resty transport) and turns result pages into line
// items.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"catseek/lib/fetch"
	"catseek/lib/fetch/redirect"
	"catseek/lib/telemetry"

	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("catseek.lib.catalog")

// Item is one line item of a catalog result page.
type Item struct {
	SKU          string
	Title        string
	Price        string
	Availability string
}

type ClientOptions struct {
	BaseUrl   string
	Transport fetch.TransportOptions
	Redirects redirect.Config
}

type Client struct {
	baseUrl *url.URL
	send    fetch.Handler
}

func NewClient(opts ClientOptions) (Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}

	// the interceptor sits outside the tracing stage so every hop of
	// a chain gets its own span
	send := fetch.NewPipeline(
		fetch.NewRestyTransport(opts.Transport),
		redirect.NewInterceptor(opts.Redirects),
		telemetry.NewFetchStage("catseek.lib.catalog.http"),
	)

	return Client{
		baseUrl: baseUrl,
		send:    send,
	}, nil
}

func searchQuery(q string, page int) url.Values {
	query := url.Values{}
	query.Add("q", q)
	query.Add("page", strconv.Itoa(page))
	query.Add("per_page", "50")
	return query
}

// Search runs one search against the catalog and returns its line
// items. Redirects issued by the catalog (legacy paths, session
// bootstrapping) are followed transparently by the pipeline.
func (c Client) Search(ctx context.Context, q string) ([]Item, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	link := *c.baseUrl
	link.Path = "/search"
	link.RawQuery = searchQuery(q, 1).Encode()

	req := &fetch.Request{
		Method: http.MethodGet,
		URL:    &link,
		Header: fetch.Header{},
	}
	res, err := c.send(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search request failed")
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		err := fmt.Errorf("search returned status %d", res.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected search status")
		return nil, err
	}

	return parseItems(res.Body)
}
