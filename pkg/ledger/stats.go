package ledger

import (
	"context"

	"github.com/seqledger/ledger-go/pkg/pagination"
)

const pathStats = "stats"

// Stats summarizes ledger-wide object counts.
type Stats struct {
	FlavorCount  int64 `json:"flavor_count"`
	AccountCount int64 `json:"account_count"`
	TxCount      int64 `json:"tx_count"`
}

// GetStats fetches the ledger's current stats.
func GetStats(ctx context.Context, c pagination.Requester) (*Stats, error) {
	var stats Stats
	if err := c.Request(ctx, pathStats, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
