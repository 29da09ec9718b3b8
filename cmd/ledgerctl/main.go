// Command ledgerctl prints ledger stats and recent actions.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/seqledger/ledger-go/pkg/client"
	"github.com/seqledger/ledger-go/pkg/ledger"
	"github.com/seqledger/ledger-go/pkg/logging"
	"github.com/seqledger/ledger-go/pkg/pagination"
)

func main() {
	// Configuration from environment
	baseURL := getEnv("LEDGER_URL", "http://localhost:1999")
	credential := getEnv("LEDGER_CREDENTIAL", "")
	filter := getEnv("LEDGER_FILTER", "")
	limit := getEnvInt("LEDGER_LIMIT", 20)

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: true,
	})

	c, err := client.New(client.DefaultConfig(baseURL, credential))
	if err != nil {
		log.Fatalf("Failed to create ledger client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stats, err := ledger.GetStats(ctx, c)
	if err != nil {
		log.Fatalf("Failed to fetch stats: %v", err)
	}
	fmt.Printf("flavors: %d  accounts: %d  transactions: %d\n",
		stats.FlavorCount, stats.AccountCount, stats.TxCount)

	b := ledger.NewActionListBuilder()
	if filter != "" {
		b.SetFilter(filter)
	}
	b.SetPageSize(limit)

	it := b.Iterate(c)
	printed := 0
	for printed < limit {
		action, err := it.Next(ctx)
		if errors.Is(err, pagination.ErrDone) {
			break
		}
		if err != nil {
			log.Fatalf("Failed to list actions: %v", err)
		}
		fmt.Printf("%s  %-8s  %12d  %s\n",
			action.Timestamp.Format(time.RFC3339), action.Type, action.Amount, action.FlavorID)
		printed++
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
