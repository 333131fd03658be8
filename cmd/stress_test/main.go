package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/harbor/internal/adapter/storage"
	"github.com/rl1809/harbor/internal/core/domain"
	"github.com/rl1809/harbor/internal/core/service"
)

const (
	redisAddr     = "localhost:6379"
	totalRequests = 50
	replayEvery   = 5
	maxRetries    = 50
	queueSize     = 200
)

// Fires concurrent speed orders at one vessel. Every replayEvery-th request
// reuses the previous request ID and must be rejected as a duplicate. Orders
// that lose a version conflict are resent with the same request ID, so each
// ID ends up applied exactly once.
func main() {
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store := storage.NewMemoryAdapter()
	cache := storage.NewRedisAdapter(rdb, time.Minute, time.Hour)

	vesselService := service.NewVesselService(store, cache, queueSize, logger)
	defer vesselService.Close()

	// Drain the log queue in background
	go func() {
		for range vesselService.LogQueue() {
		}
	}()

	v, err := vesselService.Commission(ctx, "S.S. Minnow", []string{"The Skipper", "Gilligan", "Mary-anne"}, 25.0)
	if err != nil {
		log.Fatalf("failed to commission vessel: %v", err)
	}

	requestIDs := make([]string, totalRequests)
	for i := range requestIDs {
		if i%replayEvery == replayEvery-1 {
			requestIDs[i] = requestIDs[i-1]
			continue
		}
		requestIDs[i] = uuid.NewString()
	}

	orders := []domain.SpeedOrder{domain.OrderFullSpeed, domain.OrderHalfSpeed, domain.OrderFullStop}

	var successCount, duplicateCount, conflictCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			var err error
			for attempt := 0; attempt < maxRetries; attempt++ {
				_, err = vesselService.Command(ctx, requestIDs[i], v.ID, orders[i%len(orders)])
				if !errors.Is(err, domain.ErrVersionConflict) {
					break
				}
				conflictCount.Add(1)
			}

			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, service.ErrDuplicateRequest):
				duplicateCount.Add(1)
			default:
				log.Printf("request %d failed: %v", i, err)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	final, err := vesselService.Get(ctx, v.ID)
	if err != nil {
		log.Fatalf("failed to read vessel: %v", err)
	}

	fmt.Printf("requests:   %d in %v\n", totalRequests, elapsed)
	fmt.Printf("applied:    %d\n", successCount.Load())
	fmt.Printf("duplicates: %d (expected %d)\n", duplicateCount.Load(), totalRequests/replayEvery)
	fmt.Printf("conflicts:  %d (resent)\n", conflictCount.Load())
	fmt.Printf("version:    %d\n", final.Version)

	if err := verify(int(successCount.Load()), int(duplicateCount.Load()), final.Version); err != nil {
		fmt.Printf("FAIL: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("PASS")
}

// verify checks the drill outcome: every replayed ID rejected once, every
// other request applied, and the vessel version counting the applied ones.
func verify(applied, duplicates, version int) error {
	var errs []error
	if applied != version {
		errs = append(errs, fmt.Errorf("applied orders %d and vessel version %d disagree", applied, version))
	}
	if want := totalRequests / replayEvery; duplicates != want {
		errs = append(errs, fmt.Errorf("rejected %d replayed requests, want %d", duplicates, want))
	}
	if applied+duplicates != totalRequests {
		errs = append(errs, fmt.Errorf("%d requests were neither applied nor rejected", totalRequests-applied-duplicates))
	}
	return errors.Join(errs...)
}
