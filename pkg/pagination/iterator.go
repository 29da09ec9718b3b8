package pagination

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/seqledger/ledger-go/pkg/query"
)

// ErrDone signals normal end of iteration. Check with errors.Is; any
// other error from Next means the fetch itself failed and the iterator
// is no longer usable.
var ErrDone = errors.New("pagination: no more results")

// ItemIterator yields individual items across page boundaries, fetching
// pages lazily as the consumer advances. It is single-pass: restarting
// means building a new iterator from the same builder.
//
// Not safe for concurrent use. The underlying Requester is.
type ItemIterator[T any] struct {
	client Requester
	path   string
	next   query.Query
	buf    []T
	pos    int
	done   bool
}

// NewItemIterator returns an iterator over path seeded with q.
// No request is made until the first call to Next.
func NewItemIterator[T any](client Requester, path string, q query.Query) *ItemIterator[T] {
	return &ItemIterator[T]{client: client, path: path, next: q}
}

// Next returns the next item, fetching further pages as needed.
// Items are yielded in exact server order. An intermediate empty page
// that is not the last page triggers the next fetch transparently; the
// consumer never sees it. After the last buffered item of the last page
// has been returned, Next returns ErrDone without a network call, and
// keeps doing so.
//
// A fetch error is returned as-is and terminates the iteration: the
// iterator yields ErrDone from then on rather than refetching.
func (it *ItemIterator[T]) Next(ctx context.Context) (T, error) {
	var zero T

	for {
		if it.pos < len(it.buf) {
			item := it.buf[it.pos]
			it.pos++
			return item, nil
		}

		if it.done {
			return zero, ErrDone
		}

		page, err := FetchPage[T](ctx, it.client, it.path, it.next)
		if err != nil {
			it.done = true
			it.buf = nil
			return zero, err
		}

		log.Debug().
			Str("path", it.path).
			Int("items", len(page.Items)).
			Bool("last_page", page.LastPage).
			Msg("Buffered page")

		it.next = page.Next()
		it.buf = page.Items
		it.pos = 0
		if page.LastPage {
			it.done = true
		}
	}
}

// PageIterator yields whole pages, one request per advance.
// It never fetches ahead of what the consumer has requested.
//
// Not safe for concurrent use.
type PageIterator[T any] struct {
	client Requester
	path   string
	next   query.Query
	done   bool
}

// NewPageIterator returns a page iterator over path seeded with q.
func NewPageIterator[T any](client Requester, path string, q query.Query) *PageIterator[T] {
	return &PageIterator[T]{client: client, path: path, next: q}
}

// Next fetches and returns the next page. After a page with LastPage set
// has been returned, Next returns ErrDone without a network call. A
// fetch error terminates the iteration.
func (it *PageIterator[T]) Next(ctx context.Context) (*Page[T], error) {
	if it.done {
		return nil, ErrDone
	}

	page, err := FetchPage[T](ctx, it.client, it.path, it.next)
	if err != nil {
		it.done = true
		return nil, err
	}

	if page.LastPage {
		it.done = true
	} else {
		it.next = page.Next()
	}

	return page, nil
}
