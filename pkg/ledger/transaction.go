package ledger

import (
	"context"
	"time"

	"github.com/seqledger/ledger-go/pkg/pagination"
	"github.com/seqledger/ledger-go/pkg/query"
)

const (
	pathTransact         = "transact"
	pathListTransactions = "list-transactions"
)

// Transaction is an atomic batch of actions committed to the ledger.
type Transaction struct {
	// ID is a unique transaction identifier.
	ID string `json:"id"`

	// Timestamp the transaction committed at.
	Timestamp time.Time `json:"timestamp"`

	// SequenceNumber is the transaction's position in the ledger.
	SequenceNumber uint64 `json:"sequence_number"`

	// Actions contained in the transaction, in submission order.
	Actions []Action `json:"actions"`

	// Tags is user-specified key-value data.
	Tags map[string]interface{} `json:"tags"`
}

// TransactionListBuilder queries transactions in the ledger.
type TransactionListBuilder struct {
	query.Builder
}

// NewTransactionListBuilder returns an empty transaction list builder.
func NewTransactionListBuilder() *TransactionListBuilder {
	return &TransactionListBuilder{}
}

// GetPage executes the query, returning one page of matching transactions.
func (b *TransactionListBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[Transaction], error) {
	return pagination.FetchPage[Transaction](ctx, c, pathListTransactions, b.Build())
}

// GetPageAt fetches the page at the given cursor, discarding the
// builder's accumulated state for this call.
func (b *TransactionListBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[Transaction], error) {
	return pagination.FetchPage[Transaction](ctx, c, pathListTransactions, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching transactions.
func (b *TransactionListBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[Transaction] {
	return pagination.NewItemIterator[Transaction](c, pathListTransactions, b.Build())
}

// IteratePages returns an iterator over whole pages of matching transactions.
func (b *TransactionListBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[Transaction] {
	return pagination.NewPageIterator[Transaction](c, pathListTransactions, b.Build())
}

// TransactionAction is one action to include in a transaction build:
// Issue, Transfer, or Retire.
type TransactionAction interface {
	wire() txActionWire
}

// txActionWire is the serialized shape of every builder action.
type txActionWire struct {
	Type                 string                 `json:"type"`
	FlavorID             string                 `json:"flavor_id,omitempty"`
	Amount               int64                  `json:"amount,omitempty"`
	SourceAccountID      string                 `json:"source_account_id,omitempty"`
	DestinationAccountID string                 `json:"destination_account_id,omitempty"`
	Filter               string                 `json:"filter,omitempty"`
	FilterParams         []interface{}          `json:"filter_params,omitempty"`
	TokenTags            map[string]interface{} `json:"token_tags,omitempty"`
	ActionTags           map[string]interface{} `json:"action_tags,omitempty"`
}

// Issue creates new tokens of a flavor in a destination account.
type Issue struct {
	FlavorID             string
	Amount               int64
	DestinationAccountID string
	TokenTags            map[string]interface{}
	ActionTags           map[string]interface{}
}

func (a Issue) wire() txActionWire {
	return txActionWire{
		Type:                 "issue",
		FlavorID:             a.FlavorID,
		Amount:               a.Amount,
		DestinationAccountID: a.DestinationAccountID,
		TokenTags:            a.TokenTags,
		ActionTags:           a.ActionTags,
	}
}

// Transfer moves tokens between accounts. Filter selects which of the
// source account's tokens to move, with the same positional placeholder
// semantics as query filters.
type Transfer struct {
	FlavorID             string
	Amount               int64
	SourceAccountID      string
	DestinationAccountID string
	Filter               string
	FilterParams         []interface{}
	TokenTags            map[string]interface{}
	ActionTags           map[string]interface{}
}

func (a Transfer) wire() txActionWire {
	return txActionWire{
		Type:                 "transfer",
		FlavorID:             a.FlavorID,
		Amount:               a.Amount,
		SourceAccountID:      a.SourceAccountID,
		DestinationAccountID: a.DestinationAccountID,
		Filter:               a.Filter,
		FilterParams:         a.FilterParams,
		TokenTags:            a.TokenTags,
		ActionTags:           a.ActionTags,
	}
}

// Retire destroys tokens held by a source account.
type Retire struct {
	FlavorID        string
	Amount          int64
	SourceAccountID string
	Filter          string
	FilterParams    []interface{}
	ActionTags      map[string]interface{}
}

func (a Retire) wire() txActionWire {
	return txActionWire{
		Type:            "retire",
		FlavorID:        a.FlavorID,
		Amount:          a.Amount,
		SourceAccountID: a.SourceAccountID,
		Filter:          a.Filter,
		FilterParams:    a.FilterParams,
		ActionTags:      a.ActionTags,
	}
}

// TransactionBuilder accumulates actions and commits them atomically.
type TransactionBuilder struct {
	Actions []txActionWire         `json:"actions"`
	Tags    map[string]interface{} `json:"transaction_tags,omitempty"`
}

// NewTransactionBuilder returns an empty transaction builder.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{}
}

// AddAction appends one action to the transaction.
func (b *TransactionBuilder) AddAction(a TransactionAction) *TransactionBuilder {
	b.Actions = append(b.Actions, a.wire())
	return b
}

// SetTags sets tags on the transaction itself.
func (b *TransactionBuilder) SetTags(tags map[string]interface{}) *TransactionBuilder {
	b.Tags = tags
	return b
}

// Transact commits the accumulated actions as one atomic transaction.
func (b *TransactionBuilder) Transact(ctx context.Context, c pagination.Requester) (*Transaction, error) {
	var tx Transaction
	if err := c.Request(ctx, pathTransact, b, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
