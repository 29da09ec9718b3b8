package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/seqledger/ledger-go/pkg/query"
)

// scriptedRequester serves canned JSON responses in order and records
// the serialized request bodies it received.
type scriptedRequester struct {
	responses []string
	errs      []error
	calls     int
	bodies    []map[string]json.RawMessage
	paths     []string
}

func (s *scriptedRequester) Request(ctx context.Context, path string, body, result interface{}) error {
	idx := s.calls
	s.calls++
	s.paths = append(s.paths, path)

	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	s.bodies = append(s.bodies, fields)

	if idx < len(s.errs) && s.errs[idx] != nil {
		return s.errs[idx]
	}
	if idx >= len(s.responses) {
		return errors.New("scripted requester: no response queued")
	}
	return json.Unmarshal([]byte(s.responses[idx]), result)
}

func TestItemIterator_YieldsAllPagesInOrder(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": ["a", "b"], "cursor": "c1", "last_page": false}`,
		`{"items": ["c"], "cursor": "c2", "last_page": false}`,
		`{"items": ["d", "e"], "cursor": "c3", "last_page": true}`,
	}}

	it := NewItemIterator[string](req, "list-actions", query.Query{})
	ctx := context.Background()

	var got []string
	for {
		item, err := it.Next(ctx)
		if errors.Is(err, ErrDone) {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		got = append(got, item)
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if req.calls != 3 {
		t.Errorf("requests = %d, want 3", req.calls)
	}
}

func TestItemIterator_LazyFirstFetch(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": ["a"], "cursor": "c1", "last_page": true}`,
	}}

	NewItemIterator[string](req, "list-actions", query.Query{})

	if req.calls != 0 {
		t.Errorf("requests before first Next = %d, want 0", req.calls)
	}
}

func TestItemIterator_SkipsEmptyIntermediatePages(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": ["a"], "cursor": "c1", "last_page": false}`,
		`{"items": [], "cursor": "c2", "last_page": false}`,
		`{"items": [], "cursor": "c3", "last_page": false}`,
		`{"items": ["b"], "cursor": "c4", "last_page": true}`,
	}}

	it := NewItemIterator[string](req, "list-actions", query.Query{})
	ctx := context.Background()

	first, err := it.Next(ctx)
	if err != nil || first != "a" {
		t.Fatalf("Next() = %q, %v, want a, nil", first, err)
	}

	// The empty-but-not-last pages must be crossed in a single advance.
	second, err := it.Next(ctx)
	if err != nil || second != "b" {
		t.Fatalf("Next() = %q, %v, want b, nil", second, err)
	}

	if _, err := it.Next(ctx); !errors.Is(err, ErrDone) {
		t.Errorf("Next() error = %v, want ErrDone", err)
	}
	if req.calls != 4 {
		t.Errorf("requests = %d, want 4", req.calls)
	}
}

func TestItemIterator_EmptyLastPage(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": [], "cursor": "c1", "last_page": true}`,
	}}

	it := NewItemIterator[string](req, "list-actions", query.Query{})

	if _, err := it.Next(context.Background()); !errors.Is(err, ErrDone) {
		t.Errorf("Next() error = %v, want ErrDone", err)
	}
	if req.calls != 1 {
		t.Errorf("requests = %d, want 1", req.calls)
	}
}

func TestItemIterator_DoneIsSticky(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": ["a"], "cursor": "c1", "last_page": true}`,
	}}

	it := NewItemIterator[string](req, "list-actions", query.Query{})
	ctx := context.Background()

	if _, err := it.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := it.Next(ctx); !errors.Is(err, ErrDone) {
			t.Fatalf("Next() after exhaustion error = %v, want ErrDone", err)
		}
	}

	if req.calls != 1 {
		t.Errorf("requests after exhaustion = %d, want 1", req.calls)
	}
}

func TestItemIterator_FetchErrorTerminates(t *testing.T) {
	fetchErr := errors.New("boom")
	req := &scriptedRequester{
		responses: []string{
			`{"items": ["a"], "cursor": "c1", "last_page": false}`,
		},
		errs: []error{nil, fetchErr},
	}

	it := NewItemIterator[string](req, "list-actions", query.Query{})
	ctx := context.Background()

	if _, err := it.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, err := it.Next(ctx); !errors.Is(err, fetchErr) {
		t.Fatalf("Next() error = %v, want %v", err, fetchErr)
	}

	// Terminated: no refetch, end of sequence from here on.
	if _, err := it.Next(ctx); !errors.Is(err, ErrDone) {
		t.Errorf("Next() after error = %v, want ErrDone", err)
	}
	if req.calls != 2 {
		t.Errorf("requests = %d, want 2", req.calls)
	}
}

func TestItemIterator_ContinuationIsCursorOnly(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": ["a"], "cursor": "c1", "last_page": false}`,
		`{"items": ["b"], "cursor": "c2", "last_page": true}`,
	}}

	seed := query.NewBuilder().
		SetFilter("type=$1").
		AddFilterParameter("issue").
		SetPageSize(1).
		Build()

	it := NewItemIterator[string](req, "list-actions", seed)
	ctx := context.Background()

	for {
		if _, err := it.Next(ctx); err != nil {
			break
		}
	}

	if len(req.bodies) != 2 {
		t.Fatalf("captured bodies = %d, want 2", len(req.bodies))
	}

	first := req.bodies[0]
	for _, field := range []string{"filter", "filter_params", "page_size"} {
		if _, ok := first[field]; !ok {
			t.Errorf("seed request missing %q", field)
		}
	}

	second := req.bodies[1]
	if len(second) != 1 {
		t.Errorf("continuation body fields = %v, want cursor only", second)
	}
	var cursor string
	if err := json.Unmarshal(second["cursor"], &cursor); err != nil || cursor != "c1" {
		t.Errorf("continuation cursor = %q, %v, want c1", cursor, err)
	}
}

func TestPageIterator_YieldsWholePages(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": ["a", "b"], "cursor": "c1", "last_page": false}`,
		`{"items": ["c"], "cursor": "c2", "last_page": true}`,
	}}

	it := NewPageIterator[string](req, "list-actions", query.Query{})
	ctx := context.Background()

	first, err := it.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(first.Items) != 2 || first.Cursor != "c1" || first.LastPage {
		t.Errorf("first page = %+v", first)
	}

	second, err := it.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if len(second.Items) != 1 || !second.LastPage {
		t.Errorf("second page = %+v", second)
	}

	if _, err := it.Next(ctx); !errors.Is(err, ErrDone) {
		t.Errorf("Next() error = %v, want ErrDone", err)
	}
	if req.calls != 2 {
		t.Errorf("requests = %d, want 2", req.calls)
	}
}

func TestPageIterator_NoFetchAhead(t *testing.T) {
	req := &scriptedRequester{responses: []string{
		`{"items": ["a"], "cursor": "c1", "last_page": false}`,
		`{"items": ["b"], "cursor": "c2", "last_page": true}`,
	}}

	it := NewPageIterator[string](req, "list-actions", query.Query{})

	if _, err := it.Next(context.Background()); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if req.calls != 1 {
		t.Errorf("requests after one advance = %d, want 1", req.calls)
	}
}

func TestPageIterator_FetchErrorTerminates(t *testing.T) {
	fetchErr := errors.New("boom")
	req := &scriptedRequester{errs: []error{fetchErr}}

	it := NewPageIterator[string](req, "list-actions", query.Query{})
	ctx := context.Background()

	if _, err := it.Next(ctx); !errors.Is(err, fetchErr) {
		t.Fatalf("Next() error = %v, want %v", err, fetchErr)
	}
	if _, err := it.Next(ctx); !errors.Is(err, ErrDone) {
		t.Errorf("Next() after error = %v, want ErrDone", err)
	}
	if req.calls != 1 {
		t.Errorf("requests = %d, want 1", req.calls)
	}
}

func TestPage_NextCarriesOnlyCursor(t *testing.T) {
	page := &Page[string]{Items: []string{"a"}, Cursor: "c9", LastPage: false}

	next := page.Next()
	if next.Cursor != "c9" {
		t.Errorf("Cursor = %q, want c9", next.Cursor)
	}
	if next.Filter != "" || next.FilterParams != nil || next.GroupBy != nil || next.PageSize != 0 {
		t.Errorf("continuation carries extra state: %+v", next)
	}
}
