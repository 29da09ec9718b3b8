package ledger

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/seqledger/ledger-go/internal/testutil"
)

func TestAccountBuilder_Create(t *testing.T) {
	mock := testutil.NewMockLedger()
	defer mock.Close()

	mock.QueueResponse("create-account", 200,
		`{"id": "alice", "key_ids": ["k1"], "quorum": 1, "tags": {"team": "ops"}}`)

	c := newTestClient(t, mock)

	account, err := NewAccountBuilder().
		SetID("alice").
		AddKeyID("k1").
		SetQuorum(1).
		SetTags(map[string]interface{}{"team": "ops"}).
		Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if account.ID != "alice" || account.Quorum != 1 {
		t.Errorf("account = %+v", account)
	}
	if len(account.KeyIDs) != 1 || account.KeyIDs[0] != "k1" {
		t.Errorf("KeyIDs = %v", account.KeyIDs)
	}

	fields := mock.RequestFields("create-account", 0)
	var keyIDs []string
	if err := json.Unmarshal(fields["key_ids"], &keyIDs); err != nil || len(keyIDs) != 1 {
		t.Errorf("key_ids = %v, %v", keyIDs, err)
	}
}

func TestKeyBuilder_Create(t *testing.T) {
	mock := testutil.NewMockLedger()
	defer mock.Close()

	mock.QueueResponse("create-key", 200, `{"id": "k1"}`)

	c := newTestClient(t, mock)

	key, err := NewKeyBuilder().Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if key.ID != "k1" {
		t.Errorf("ID = %q, want k1", key.ID)
	}

	// Unset ID is omitted so the server assigns one.
	fields := mock.RequestFields("create-key", 0)
	if _, ok := fields["id"]; ok {
		t.Error("unset id should not be serialized")
	}
}

func TestFlavor_LegacyAssetIDDecode(t *testing.T) {
	var flavor Flavor
	if err := json.Unmarshal([]byte(`{"asset_id": "gold", "quorum": 1}`), &flavor); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if flavor.ID != "gold" {
		t.Errorf("ID = %q, want gold", flavor.ID)
	}
}

func TestFlavorBuilder_Create(t *testing.T) {
	mock := testutil.NewMockLedger()
	defer mock.Close()

	mock.QueueResponse("create-flavor", 200, `{"id": "usd", "key_ids": ["k1"], "quorum": 1}`)

	c := newTestClient(t, mock)

	flavor, err := NewFlavorBuilder().
		SetID("usd").
		AddKeyID("k1").
		SetQuorum(1).
		Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if flavor.ID != "usd" {
		t.Errorf("ID = %q, want usd", flavor.ID)
	}
}

func TestTokenSumBuilder_GroupByAccount(t *testing.T) {
	mock := testutil.NewMockLedger()
	defer mock.Close()

	mock.QueuePage("sum-tokens", []string{
		`{"amount": 60, "account_id": "alice"}`,
		`{"amount": 40, "account_id": "bob"}`,
	}, "", true)

	c := newTestClient(t, mock)

	b := NewTokenSumBuilder()
	b.SetFilter("flavor_id=$1")
	b.AddFilterParameter("usd")
	b.AddGroupByField("account_id")

	page, err := b.GetPage(context.Background(), c)
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Items[0].AccountID != "alice" || page.Items[0].Amount != 60 {
		t.Errorf("first sum = %+v", page.Items[0])
	}
}

func TestGetStats(t *testing.T) {
	mock := testutil.NewMockLedger()
	defer mock.Close()

	mock.QueueResponse("stats", 200, `{"flavor_count": 2, "account_count": 4, "tx_count": 17}`)

	c := newTestClient(t, mock)

	stats, err := GetStats(context.Background(), c)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.FlavorCount != 2 || stats.AccountCount != 4 || stats.TxCount != 17 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAccountList_LastPageRefetchIdempotent(t *testing.T) {
	mock := testutil.NewMockLedger()
	defer mock.Close()

	// The server contract: refetching a terminal cursor yields the same
	// empty last page.
	mock.QueuePage("list-accounts", nil, "terminal", true)
	mock.QueuePage("list-accounts", nil, "terminal", true)

	c := newTestClient(t, mock)
	ctx := context.Background()

	b := NewAccountListBuilder()

	first, err := b.GetPageAt(ctx, c, "terminal")
	if err != nil {
		t.Fatalf("GetPageAt() error = %v", err)
	}
	second, err := b.GetPageAt(ctx, c, "terminal")
	if err != nil {
		t.Fatalf("GetPageAt() error = %v", err)
	}

	if len(first.Items) != 0 || !first.LastPage {
		t.Errorf("first = %+v", first)
	}
	if len(second.Items) != 0 || !second.LastPage {
		t.Errorf("second = %+v", second)
	}
}
