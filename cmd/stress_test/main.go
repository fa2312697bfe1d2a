package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/rl1809/shopping-assistant/internal/adapter/storage"
	"github.com/rl1809/shopping-assistant/internal/core/service"
	"github.com/rl1809/shopping-assistant/internal/port"
)

type options struct {
	backend   string
	redisAddr string
	requests  int
}

func main() {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "stress_test",
		Short: "Fire concurrent add-item calls and verify none are lost",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&opts.backend, "backend", "memory", "storage backend: memory or redis")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address")
	cmd.Flags().IntVar(&opts.requests, "requests", 50, "number of concurrent add-item calls")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	var store port.KeyValueStore
	namespace := "stress-" + uuid.NewString()

	switch opts.backend {
	case "memory":
		store = storage.NewMemoryStore(0)
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: opts.redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		defer rdb.Close()
		defer rdb.Del(ctx, namespace+":"+service.ListsKey)
		store = storage.NewRedisAdapter(rdb, namespace)
	default:
		return fmt.Errorf("unknown backend %q", opts.backend)
	}

	lists := service.NewListService(store, nil)
	if _, err := lists.CreateList(ctx, "stress "+namespace); err != nil {
		return fmt.Errorf("create list: %w", err)
	}

	var successCount atomic.Int32
	var failCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < opts.requests; i++ {
		wg.Add(1)
		go func(productID int64) {
			defer wg.Done()
			if err := lists.AddItem(ctx, productID); err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(int64(i))
	}

	wg.Wait()
	elapsed := time.Since(start)

	reloaded := service.NewListService(store, nil).Load(ctx)
	persisted := 0
	if len(reloaded) > 0 {
		persisted = len(reloaded[0].Items)
	}

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Backend:          %s\n", opts.backend)
	fmt.Printf("Total Requests:   %d\n", opts.requests)
	fmt.Printf("Successful:       %d\n", successCount.Load())
	fmt.Printf("Failed:           %d\n", failCount.Load())
	fmt.Printf("Persisted Items:  %d\n", persisted)
	fmt.Printf("Degraded:         %v\n", lists.Degraded())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if persisted != opts.requests {
		fmt.Printf("FAIL: expected %d persisted items, got %d\n", opts.requests, persisted)
		return fmt.Errorf("lost %d items", opts.requests-persisted)
	}
	fmt.Println("PASS: every add was persisted")
	return nil
}
