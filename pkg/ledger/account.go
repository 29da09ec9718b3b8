package ledger

import (
	"context"

	"github.com/seqledger/ledger-go/pkg/pagination"
	"github.com/seqledger/ledger-go/pkg/query"
)

const (
	pathCreateAccount     = "create-account"
	pathListAccounts      = "list-accounts"
	pathUpdateAccountTags = "update-account-tags"
)

// Account holds tokens in the ledger.
type Account struct {
	// ID is unique within the ledger. Assigned by the server if not
	// provided at creation.
	ID string `json:"id"`

	// KeyIDs are the keys authorized to transact for this account.
	KeyIDs []string `json:"key_ids"`

	// Quorum is the number of keys required to sign transactions
	// touching the account.
	Quorum int `json:"quorum"`

	// Tags is user-specified key-value data.
	Tags map[string]interface{} `json:"tags"`
}

// AccountBuilder creates a new account.
type AccountBuilder struct {
	ID     string                 `json:"id,omitempty"`
	KeyIDs []string               `json:"key_ids,omitempty"`
	Quorum int                    `json:"quorum,omitempty"`
	Tags   map[string]interface{} `json:"tags,omitempty"`
}

// NewAccountBuilder returns an empty account builder.
func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{}
}

// SetID sets the account's ID. If unset, the server assigns one.
func (b *AccountBuilder) SetID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// AddKeyID adds a key authorized to transact for the account.
func (b *AccountBuilder) AddKeyID(id string) *AccountBuilder {
	b.KeyIDs = append(b.KeyIDs, id)
	return b
}

// SetQuorum sets the number of keys required to sign.
func (b *AccountBuilder) SetQuorum(quorum int) *AccountBuilder {
	b.Quorum = quorum
	return b
}

// SetTags sets the account's tags.
func (b *AccountBuilder) SetTags(tags map[string]interface{}) *AccountBuilder {
	b.Tags = tags
	return b
}

// Create creates the account in the ledger.
func (b *AccountBuilder) Create(ctx context.Context, c pagination.Requester) (*Account, error) {
	var account Account
	if err := c.Request(ctx, pathCreateAccount, b, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// AccountListBuilder queries accounts in the ledger.
type AccountListBuilder struct {
	query.Builder
}

// NewAccountListBuilder returns an empty account list builder.
func NewAccountListBuilder() *AccountListBuilder {
	return &AccountListBuilder{}
}

// GetPage executes the query, returning one page of matching accounts.
func (b *AccountListBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[Account], error) {
	return pagination.FetchPage[Account](ctx, c, pathListAccounts, b.Build())
}

// GetPageAt fetches the page at the given cursor, discarding the
// builder's accumulated state for this call.
func (b *AccountListBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[Account], error) {
	return pagination.FetchPage[Account](ctx, c, pathListAccounts, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching accounts.
func (b *AccountListBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[Account] {
	return pagination.NewItemIterator[Account](c, pathListAccounts, b.Build())
}

// IteratePages returns an iterator over whole pages of matching accounts.
func (b *AccountListBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[Account] {
	return pagination.NewPageIterator[Account](c, pathListAccounts, b.Build())
}

// AccountTagUpdateBuilder replaces an account's tags.
type AccountTagUpdateBuilder struct {
	ID   string                 `json:"id"`
	Tags map[string]interface{} `json:"tags"`
}

// NewAccountTagUpdateBuilder returns an empty tag update builder.
func NewAccountTagUpdateBuilder() *AccountTagUpdateBuilder {
	return &AccountTagUpdateBuilder{}
}

// ForID specifies the account to update.
func (b *AccountTagUpdateBuilder) ForID(id string) *AccountTagUpdateBuilder {
	b.ID = id
	return b
}

// SetTags specifies the new tag set.
func (b *AccountTagUpdateBuilder) SetTags(tags map[string]interface{}) *AccountTagUpdateBuilder {
	b.Tags = tags
	return b
}

// Update applies the tag update.
func (b *AccountTagUpdateBuilder) Update(ctx context.Context, c pagination.Requester) error {
	return c.Request(ctx, pathUpdateAccountTags, b, nil)
}
