package ledger

import (
	"context"
	"encoding/json"

	"github.com/seqledger/ledger-go/pkg/pagination"
	"github.com/seqledger/ledger-go/pkg/query"
)

const (
	pathCreateFlavor     = "create-flavor"
	pathListFlavors      = "list-flavors"
	pathUpdateFlavorTags = "update-flavor-tags"
)

// Flavor is a type of value that can be issued into the ledger.
// Older API versions called flavors "assets"; decoding accepts both.
type Flavor struct {
	// ID is unique within the ledger.
	ID string

	// KeyIDs are the keys authorized to issue tokens of this flavor.
	KeyIDs []string

	// Quorum is the number of keys required to sign issuances.
	Quorum int

	// Tags is user-specified key-value data.
	Tags map[string]interface{}
}

type flavorWire struct {
	ID      string                 `json:"id"`
	AssetID string                 `json:"asset_id"`
	KeyIDs  []string               `json:"key_ids"`
	Quorum  int                    `json:"quorum"`
	Tags    map[string]interface{} `json:"tags"`
}

// UnmarshalJSON decodes a flavor, accepting the legacy asset_id name
// for the ID.
func (f *Flavor) UnmarshalJSON(data []byte) error {
	var w flavorWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*f = Flavor{
		ID:     w.ID,
		KeyIDs: w.KeyIDs,
		Quorum: w.Quorum,
		Tags:   w.Tags,
	}
	if f.ID == "" {
		f.ID = w.AssetID
	}
	return nil
}

// FlavorBuilder creates a new flavor.
type FlavorBuilder struct {
	ID     string                 `json:"id,omitempty"`
	KeyIDs []string               `json:"key_ids,omitempty"`
	Quorum int                    `json:"quorum,omitempty"`
	Tags   map[string]interface{} `json:"tags,omitempty"`
}

// NewFlavorBuilder returns an empty flavor builder.
func NewFlavorBuilder() *FlavorBuilder {
	return &FlavorBuilder{}
}

// SetID sets the flavor's ID. If unset, the server assigns one.
func (b *FlavorBuilder) SetID(id string) *FlavorBuilder {
	b.ID = id
	return b
}

// AddKeyID adds a key authorized to issue tokens of this flavor.
func (b *FlavorBuilder) AddKeyID(id string) *FlavorBuilder {
	b.KeyIDs = append(b.KeyIDs, id)
	return b
}

// SetQuorum sets the number of keys required to sign issuances.
func (b *FlavorBuilder) SetQuorum(quorum int) *FlavorBuilder {
	b.Quorum = quorum
	return b
}

// SetTags sets the flavor's tags.
func (b *FlavorBuilder) SetTags(tags map[string]interface{}) *FlavorBuilder {
	b.Tags = tags
	return b
}

// Create creates the flavor in the ledger.
func (b *FlavorBuilder) Create(ctx context.Context, c pagination.Requester) (*Flavor, error) {
	var flavor Flavor
	if err := c.Request(ctx, pathCreateFlavor, b, &flavor); err != nil {
		return nil, err
	}
	return &flavor, nil
}

// FlavorListBuilder queries flavors in the ledger.
type FlavorListBuilder struct {
	query.Builder
}

// NewFlavorListBuilder returns an empty flavor list builder.
func NewFlavorListBuilder() *FlavorListBuilder {
	return &FlavorListBuilder{}
}

// GetPage executes the query, returning one page of matching flavors.
func (b *FlavorListBuilder) GetPage(ctx context.Context, c pagination.Requester) (*pagination.Page[Flavor], error) {
	return pagination.FetchPage[Flavor](ctx, c, pathListFlavors, b.Build())
}

// GetPageAt fetches the page at the given cursor, discarding the
// builder's accumulated state for this call.
func (b *FlavorListBuilder) GetPageAt(ctx context.Context, c pagination.Requester, cursor string) (*pagination.Page[Flavor], error) {
	return pagination.FetchPage[Flavor](ctx, c, pathListFlavors, query.FromCursor(cursor))
}

// Iterate returns an iterator over all matching flavors.
func (b *FlavorListBuilder) Iterate(c pagination.Requester) *pagination.ItemIterator[Flavor] {
	return pagination.NewItemIterator[Flavor](c, pathListFlavors, b.Build())
}

// IteratePages returns an iterator over whole pages of matching flavors.
func (b *FlavorListBuilder) IteratePages(c pagination.Requester) *pagination.PageIterator[Flavor] {
	return pagination.NewPageIterator[Flavor](c, pathListFlavors, b.Build())
}

// FlavorTagUpdateBuilder replaces a flavor's tags.
type FlavorTagUpdateBuilder struct {
	ID   string                 `json:"id"`
	Tags map[string]interface{} `json:"tags"`
}

// NewFlavorTagUpdateBuilder returns an empty tag update builder.
func NewFlavorTagUpdateBuilder() *FlavorTagUpdateBuilder {
	return &FlavorTagUpdateBuilder{}
}

// ForID specifies the flavor to update.
func (b *FlavorTagUpdateBuilder) ForID(id string) *FlavorTagUpdateBuilder {
	b.ID = id
	return b
}

// SetTags specifies the new tag set.
func (b *FlavorTagUpdateBuilder) SetTags(tags map[string]interface{}) *FlavorTagUpdateBuilder {
	b.Tags = tags
	return b
}

// Update applies the tag update.
func (b *FlavorTagUpdateBuilder) Update(ctx context.Context, c pagination.Requester) error {
	return c.Request(ctx, pathUpdateFlavorTags, b, nil)
}
