// Package ledger defines the typed resources exposed by the ledger API
// and the builders used to query and mutate them.
//
// Every list/sum builder is a thin wrapper over the generic machinery in
// pkg/pagination and pkg/query: the builder accumulates filter state, a
// dispatch call snapshots it into a query, and iteration is handled by
// the shared iterators. No resource duplicates paging logic.
package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/seqledger/ledger-go/pkg/pagination"
	"github.com/seqledger/ledger-go/pkg/query"
)

const (
	pathListActions      = "list-actions"
	pathSumActions       = "sum-actions"
	pathUpdateActionTags = "update-action-tags"
)

// Action is one movement of tokens in the ledger: an issuance, a
// transfer, or a retirement.
type Action struct {
	// ID is a unique identifier for the action.
	ID string

	// Type is one of "issue", "transfer", or "retire".
	Type string

	// Amount is the number of flavor units moved.
	Amount int64

	// FlavorID identifies the flavor moved by the action.
	FlavorID string

	// TransactionID is the transaction the action appears in.
	TransactionID string

	// Timestamp of the action.
	Timestamp time.Time

	// SourceAccountID is the account executing the action (empty for issuances).
	SourceAccountID string

	// DestinationAccountID is the account affected by the action (empty for retirements).
	DestinationAccountID string

	// Snapshot is a copy of the associated tags as they existed at the
	// time of the transaction.
	Snapshot *ActionSnapshot

	// Tags is user-specified key-value data embedded in the action.
	Tags map[string]interface{}
}

// ActionSnapshot captures the tags of everything an action touched, as
// of the moment the action's transaction committed.
type ActionSnapshot struct {
	ActionTags             map[string]interface{} `json:"action_tags"`
	FlavorTags             map[string]interface{} `json:"flavor_tags"`
	SourceAccountTags      map[string]interface{} `json:"source_account_tags"`
	DestinationAccountTags map[string]interface{} `json:"destination_account_tags"`
	TokenTags              map[string]interface{} `json:"token_tags"`
	TransactionTags        map[string]interface{} `json:"transaction_tags"`
}

// actionWire is the decode shape for Action. Older servers emit the
// flavor under the legacy "asset_id" name; the mapping is confined here
// so the exported model carries only the current field.
type actionWire struct {
	ID                   string                 `json:"id"`
	Type                 string                 `json:"type"`
	Amount               int64                  `json:"amount"`
	FlavorID             string                 `json:"flavor_id"`
	AssetID              string                 `json:"asset_id"`
	TransactionID        string                 `json:"transaction_id"`
	Timestamp            time.Time              `json:"timestamp"`
	SourceAccountID      string                 `json:"source_account_id"`
	DestinationAccountID string                 `json:"destination_account_id"`
	Snapshot             *ActionSnapshot        `json:"snapshot"`
	Tags                 map[string]interface{} `json:"tags"`
}

// UnmarshalJSON decodes an action, folding the legacy asset_id field
// into FlavorID when flavor_id is absent.
func (a *Action) UnmarshalJSON(data []byte) error {
	var w actionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*a = Action{
		ID:                   w.ID,
		Type:                 w.Type,
		Amount:               w.Amount,
		FlavorID:             w.FlavorID,
		TransactionID:        w.TransactionID,
		Timestamp:            w.Timestamp,
		SourceAccountID:      w.SourceAccountID,
		DestinationAccountID: w.DestinationAccountID,
		Snapshot:             w.Snapshot,
		Tags:                 w.Tags,
	}
	if a.FlavorID == "" {
		a.FlavorID = w.AssetID
	}
	return nil
}

// ActionSum is one aggregation bucket returned by the sum-actions
// endpoint: the summed amount plus the group-by dimensions that key the
// bucket. Dimensions outside the group-by list are zero.
type ActionSum struct {
	Amount               int64                  `json:"amount"`
	Type                 string                 `json:"type"`
	FlavorID             string                 `json:"flavor_id"`
	SourceAccountID      string                 `json:"source_account_id"`
	DestinationAccountID string                 `json:"destination_account_id"`
	Tags                 map[string]interface{} `json:"tags"`
}

// ActionListBuilder queries individual actions in the ledger.
//
// List all actions after a certain time:
//
//	b := ledger.NewActionListBuilder()
//	b.SetFilter("timestamp > $1")
//	b.AddFilterParameter("1985-10-26T01:21:00Z")
//	it := b.Iterate(client)
type ActionListBuilder struct {
	query.Builder
}

// NewActionListBuilder returns an empty action list builder.
func NewActionListBuilder() *ActionListBuilder {
	return &ActionListBuilder{}
}

// GetPage executes the query, returning one page of matching actions.
func (b *ActionListBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[Action], error) {
	return pagination.FetchPage[Action](ctx, c, pathListActions, b.Build())
}

// GetPageAt fetches the page at the given cursor. The builder's
// accumulated filter, group-by, and page size are discarded for this
// call; the cursor alone determines the fetch.
func (b *ActionListBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[Action], error) {
	return pagination.FetchPage[Action](ctx, c, pathListActions, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching actions.
func (b *ActionListBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[Action] {
	return pagination.NewItemIterator[Action](c, pathListActions, b.Build())
}

// IteratePages returns an iterator over whole pages of matching actions.
func (b *ActionListBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[Action] {
	return pagination.NewPageIterator[Action](c, pathListActions, b.Build())
}

// ActionSumBuilder sums action amounts over the dimensions given by
// SetGroupBy/AddGroupByField.
type ActionSumBuilder struct {
	query.Builder
}

// NewActionSumBuilder returns an empty action sum builder.
func NewActionSumBuilder() *ActionSumBuilder {
	return &ActionSumBuilder{}
}

// GetPage executes the query, returning one page of action sums.
func (b *ActionSumBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[ActionSum], error) {
	return pagination.FetchPage[ActionSum](ctx, c, pathSumActions, b.Build())
}

// GetPageAt fetches the page at the given cursor, discarding the
// builder's accumulated state for this call.
func (b *ActionSumBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[ActionSum], error) {
	return pagination.FetchPage[ActionSum](ctx, c, pathSumActions, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching action sums.
func (b *ActionSumBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[ActionSum] {
	return pagination.NewItemIterator[ActionSum](c, pathSumActions, b.Build())
}

// IteratePages returns an iterator over whole pages of action sums.
func (b *ActionSumBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[ActionSum] {
	return pagination.NewPageIterator[ActionSum](c, pathSumActions, b.Build())
}

// ActionTagUpdateBuilder replaces an action's tags.
type ActionTagUpdateBuilder struct {
	ID   string                 `json:"id"`
	Tags map[string]interface{} `json:"tags"`
}

// NewActionTagUpdateBuilder returns an empty tag update builder.
func NewActionTagUpdateBuilder() *ActionTagUpdateBuilder {
	return &ActionTagUpdateBuilder{}
}

// ForID specifies the action to update.
func (b *ActionTagUpdateBuilder) ForID(id string) *ActionTagUpdateBuilder {
	b.ID = id
	return b
}

// SetTags specifies the new tag set.
func (b *ActionTagUpdateBuilder) SetTags(tags map[string]interface{}) *ActionTagUpdateBuilder {
	b.Tags = tags
	return b
}

// Update applies the tag update.
func (b *ActionTagUpdateBuilder) Update(ctx context.Context, c pagination.Requester) error {
	return c.Request(ctx, pathUpdateActionTags, b, nil)
}
