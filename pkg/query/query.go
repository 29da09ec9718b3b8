// Package query defines the request descriptor sent to ledger query
// endpoints and the builder that accumulates it.
package query

// Query is the body of a single request against a ledger query endpoint.
//
// Fields are serialized only when set. A Query carrying a cursor carries
// nothing else: the cursor alone determines the next fetch, so
// continuation queries are built with FromCursor rather than by mutating
// a filtered Query.
type Query struct {
	// Filter is a filter expression with positional placeholders ($1, $2, ...).
	Filter string `json:"filter,omitempty"`

	// FilterParams are the values referenced by the filter placeholders,
	// in placeholder order (1-based).
	FilterParams []interface{} `json:"filter_params,omitempty"`

	// GroupBy lists the fields to aggregate over. Only meaningful for
	// sum endpoints; other endpoints reject it server-side.
	GroupBy []string `json:"group_by,omitempty"`

	// Cursor is an opaque server-issued continuation token.
	Cursor string `json:"cursor,omitempty"`

	// PageSize caps the number of items per page. The server may cap it
	// further; zero means server default.
	PageSize int `json:"page_size,omitempty"`
}

// FromCursor returns a continuation Query for the given cursor.
// All other fields are left unset per the server contract.
func FromCursor(cursor string) Query {
	return Query{Cursor: cursor}
}

// Builder accumulates query state before dispatch.
//
// A Builder is a plain mutable accumulator: dispatching does not consume
// its state, so the same builder can re-issue a query. It is not safe
// for concurrent use; each dispatch takes an independent snapshot via
// Build, so a live iterator never observes later builder mutation.
type Builder struct {
	q Query
}

// NewBuilder returns an empty query builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetFilter sets the filter expression, replacing any previous filter.
// Placeholders $1, $2, ... refer to parameters added with
// AddFilterParameter, in call order.
func (b *Builder) SetFilter(expr string) *Builder {
	b.q.Filter = expr
	return b
}

// AddFilterParameter appends one value to the filter parameter list.
// The value's position corresponds to the placeholder index in the
// filter expression. Placeholder/parameter arity is validated by the
// server, not here.
func (b *Builder) AddFilterParameter(value interface{}) *Builder {
	b.q.FilterParams = append(b.q.FilterParams, value)
	return b
}

// SetGroupBy sets the group-by field list, replacing any previous list.
func (b *Builder) SetGroupBy(fields []string) *Builder {
	b.q.GroupBy = append([]string(nil), fields...)
	return b
}

// AddGroupByField appends one field to the group-by list.
func (b *Builder) AddGroupByField(field string) *Builder {
	b.q.GroupBy = append(b.q.GroupBy, field)
	return b
}

// SetPageSize caps the number of items returned per page.
// n must be positive; no upper bound is enforced client-side.
func (b *Builder) SetPageSize(n int) *Builder {
	b.q.PageSize = n
	return b
}

// Build returns a snapshot of the accumulated query. The snapshot owns
// copies of the parameter and group-by slices, so mutating the builder
// afterwards does not affect queries already handed out.
func (b *Builder) Build() Query {
	q := b.q
	if b.q.FilterParams != nil {
		q.FilterParams = append([]interface{}(nil), b.q.FilterParams...)
	}
	if b.q.GroupBy != nil {
		q.GroupBy = append([]string(nil), b.q.GroupBy...)
	}
	return q
}
