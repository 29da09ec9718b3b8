package pagination

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/seqledger/ledger-go/pkg/query"
)

// Prometheus metrics for page fetching.
var (
	ledgerPagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_pages_fetched_total",
		Help: "Total pages fetched by endpoint path",
	}, []string{"path"})

	ledgerItemsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_items_fetched_total",
		Help: "Total items received across fetched pages by endpoint path",
	}, []string{"path"})
)

// Requester issues one ledger API request: it serializes body as JSON,
// posts it to path, and decodes the response into result. It returns a
// client.APIError for structured server errors, a client.ConnectivityError
// when the transport fails, or a client.DecodeError when the response
// cannot be decoded. Implementations must be safe for concurrent use.
type Requester interface {
	Request(ctx context.Context, path string, body, result interface{}) error
}

// Page is one bounded batch of results plus continuation metadata.
type Page[T any] struct {
	// Items in server order. Order is preserved across pages.
	Items []T `json:"items"`

	// Cursor fetches the page after this one. Refetching the cursor of a
	// last page yields the same empty last page again.
	Cursor string `json:"cursor"`

	// LastPage reports whether this is the terminal page.
	LastPage bool `json:"last_page"`
}

// Next returns the continuation query for the page that follows this one.
// Per the server contract it carries the cursor and nothing else.
func (p *Page[T]) Next() query.Query {
	return query.FromCursor(p.Cursor)
}

// FetchPage issues one query against path and decodes the response page.
func FetchPage[T any](ctx context.Context, c Requester, path string, q query.Query) (*Page[T], error) {
	var page Page[T]
	if err := c.Request(ctx, path, q, &page); err != nil {
		return nil, err
	}

	ledgerPagesFetched.WithLabelValues(path).Inc()
	ledgerItemsFetched.WithLabelValues(path).Add(float64(len(page.Items)))

	return &page, nil
}
