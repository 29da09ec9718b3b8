//go:build integration

package checkpoint

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client
func setupRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestStore_Integration_ResumeCycle(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	store, err := NewStore(Config{Redis: redisClient})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	ctx := context.Background()

	// Simulate a paged listing that checkpoints after every page.
	cursors := []string{"c1", "c2", "c3"}
	for _, cursor := range cursors {
		if err := store.Save(ctx, "transactions-export", cursor); err != nil {
			t.Fatalf("Save(%q) error = %v", cursor, err)
		}
	}

	// A restarted consumer resumes from the most recent checkpoint.
	resumed, err := store.Load(ctx, "transactions-export")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if resumed != "c3" {
		t.Errorf("resumed cursor = %q, want c3", resumed)
	}

	// Finished listings clean up after themselves.
	if err := store.Delete(ctx, "transactions-export"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(ctx, "transactions-export"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after delete error = %v, want ErrNotFound", err)
	}
}
