package ledger

import (
	"context"

	"github.com/seqledger/ledger-go/pkg/pagination"
	"github.com/seqledger/ledger-go/pkg/query"
)

const (
	pathListTokens = "list-tokens"
	pathSumTokens  = "sum-tokens"
)

// TokenGroup is a set of identical tokens: same flavor, same holding
// account, same tags. list-tokens returns groups rather than individual
// tokens.
type TokenGroup struct {
	Amount    int64                  `json:"amount"`
	FlavorID  string                 `json:"flavor_id"`
	AccountID string                 `json:"account_id"`

	// Tags on the tokens themselves.
	Tags map[string]interface{} `json:"tags"`

	// FlavorTags and AccountTags are snapshots of the flavor's and
	// account's tags at the time of the query.
	FlavorTags  map[string]interface{} `json:"flavor_tags"`
	AccountTags map[string]interface{} `json:"account_tags"`
}

// TokenSum is one aggregation bucket returned by the sum-tokens
// endpoint. Dimensions outside the group-by list are zero.
type TokenSum struct {
	Amount    int64                  `json:"amount"`
	FlavorID  string                 `json:"flavor_id"`
	AccountID string                 `json:"account_id"`
	Tags      map[string]interface{} `json:"tags"`
}

// TokenListBuilder queries token groups in the ledger.
type TokenListBuilder struct {
	query.Builder
}

// NewTokenListBuilder returns an empty token list builder.
func NewTokenListBuilder() *TokenListBuilder {
	return &TokenListBuilder{}
}

// GetPage executes the query, returning one page of matching token groups.
func (b *TokenListBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[TokenGroup], error) {
	return pagination.FetchPage[TokenGroup](ctx, c, pathListTokens, b.Build())
}

// GetPageAt fetches the page at the given cursor, discarding the
// builder's accumulated state for this call.
func (b *TokenListBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[TokenGroup], error) {
	return pagination.FetchPage[TokenGroup](ctx, c, pathListTokens, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching token groups.
func (b *TokenListBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[TokenGroup] {
	return pagination.NewItemIterator[TokenGroup](c, pathListTokens, b.Build())
}

// IteratePages returns an iterator over whole pages of matching token groups.
func (b *TokenListBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[TokenGroup] {
	return pagination.NewPageIterator[TokenGroup](c, pathListTokens, b.Build())
}

// TokenSumBuilder sums token amounts over the dimensions given by
// SetGroupBy/AddGroupByField.
type TokenSumBuilder struct {
	query.Builder
}

// NewTokenSumBuilder returns an empty token sum builder.
func NewTokenSumBuilder() *TokenSumBuilder {
	return &TokenSumBuilder{}
}

// GetPage executes the query, returning one page of token sums.
func (b *TokenSumBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[TokenSum], error) {
	return pagination.FetchPage[TokenSum](ctx, c, pathSumTokens, b.Build())
}

// GetPageAt fetches the page at the given cursor, discarding the
// builder's accumulated state for this call.
func (b *TokenSumBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[TokenSum], error) {
	return pagination.FetchPage[TokenSum](ctx, c, pathSumTokens, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching token sums.
func (b *TokenSumBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[TokenSum] {
	return pagination.NewItemIterator[TokenSum](c, pathSumTokens, b.Build())
}

// IteratePages returns an iterator over whole pages of token sums.
func (b *TokenSumBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[TokenSum] {
	return pagination.NewPageIterator[TokenSum](c, pathSumTokens, b.Build())
}
