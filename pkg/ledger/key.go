package ledger

import (
	"context"

	"github.com/seqledger/ledger-go/pkg/pagination"
	"github.com/seqledger/ledger-go/pkg/query"
)

const (
	pathCreateKey = "create-key"
	pathListKeys  = "list-keys"
)

// Key signs transactions. The ledger holds the private material; the
// client only ever sees the ID.
type Key struct {
	ID string `json:"id"`
}

// KeyBuilder creates a new key.
type KeyBuilder struct {
	ID string `json:"id,omitempty"`
}

// NewKeyBuilder returns an empty key builder.
func NewKeyBuilder() *KeyBuilder {
	return &KeyBuilder{}
}

// SetID sets the key's ID. If unset, the server assigns one.
func (b *KeyBuilder) SetID(id string) *KeyBuilder {
	b.ID = id
	return b
}

// Create creates the key in the ledger.
func (b *KeyBuilder) Create(ctx context.Context, c pagination.Requester) (*Key, error) {
	var key Key
	if err := c.Request(ctx, pathCreateKey, b, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// KeyListBuilder queries keys in the ledger.
type KeyListBuilder struct {
	query.Builder
}

// NewKeyListBuilder returns an empty key list builder.
func NewKeyListBuilder() *KeyListBuilder {
	return &KeyListBuilder{}
}

// GetPage executes the query, returning one page of matching keys.
func (b *KeyListBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[Key], error) {
	return pagination.FetchPage[Key](ctx, c, pathListKeys, b.Build())
}

// GetPageAt fetches the page at the given cursor, discarding the
// builder's accumulated state for this call.
func (b *KeyListBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[Key], error) {
	return pagination.FetchPage[Key](ctx, c, pathListKeys, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching keys.
func (b *KeyListBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[Key] {
	return pagination.NewItemIterator[Key](c, pathListKeys, b.Build())
}

// IteratePages returns an iterator over whole pages of matching keys.
func (b *KeyListBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[Key] {
	return pagination.NewPageIterator[Key](c, pathListKeys, b.Build())
}
