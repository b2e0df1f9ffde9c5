package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"weightedlru/internal/cache"
)

const (
	maxEntries = 100
	maxBytes   = 4 << 10
	pace       = 10 * time.Millisecond
)

// payload weighs its byte length, turning the cache into a byte budget.
type payload struct {
	data []byte
}

func (p *payload) MemorySize() int { return len(p.data) }

func main() {
	// Signal-aware context is the root of ownership for the worker goroutines.
	// When SIGINT/SIGTERM arrives, ctx is canceled and the workers stop.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("weighted LRU demo starting")

	// -------------------------------------------------------------------
	// 1) Unit weights: two writers and two readers over the same key ranges
	// -------------------------------------------------------------------
	c := cache.New[int, string](maxEntries)
	defer func() {
		// Close is idempotent; safe to call in defer.
		if err := c.Close(); err != nil {
			log.Printf("cache close: %v", err)
		}
	}()
	log.Printf("config: maxWeight=%d pace=%s", maxEntries, pace)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return putRange(gctx, c, 0, 100) })
	g.Go(func() error { return putRange(gctx, c, 100, 200) })
	g.Go(func() error { return getRange(gctx, c, 0, 100) })
	g.Go(func() error { return getRange(gctx, c, 100, 200) })

	if err := g.Wait(); err != nil {
		log.Printf("workers stopped: %v", err)
		return
	}
	log.Printf("unit weights: size=%d/%d stats=%+v", c.Size(), c.MaxSize(), c.Stats())

	// -------------------------------------------------------------------
	// 2) Byte budget: values report their own size
	// -------------------------------------------------------------------
	blobs := cache.New[string, *payload](maxBytes)
	defer func() {
		if err := blobs.Close(); err != nil {
			log.Printf("blob cache close: %v", err)
		}
	}()

	faker := gofakeit.New(0)
	var first string
	for i := 0; i < 64; i++ {
		key := uuid.NewString()
		if i == 0 {
			first = key
		}

		p := &payload{data: []byte(faker.LetterN(uint(faker.Number(16, 512))))}
		if err := blobs.Set(key, p); err != nil {
			log.Printf("SET %s: %v", key, err)
		}
	}

	if err := blobs.Set("too-big", &payload{data: make([]byte, maxBytes+1)}); err != nil {
		log.Printf("SET too-big: %v", err)
	}
	if _, ok := blobs.Get(first); !ok {
		log.Printf("GET %s: missing (evicted as LRU)", first)
	}
	log.Printf("byte budget: entries=%d size=%d/%d stats=%+v",
		blobs.Len(), blobs.Size(), blobs.MaxSize(), blobs.Stats())

	fmt.Println("Done.")
}

func putRange(ctx context.Context, c *cache.Cache[int, string], from, to int) error {
	for i := from; i < to; i++ {
		data := fmt.Sprintf("value %d", i)
		if c.Put(i, data) {
			log.Printf("PUT %d ok", i)
		} else {
			log.Printf("PUT %d rejected", i)
		}

		if err := sleep(ctx, pace); err != nil {
			return err
		}
	}
	return nil
}

func getRange(ctx context.Context, c *cache.Cache[int, string], from, to int) error {
	for i := from; i < to; i++ {
		if v, ok := c.Get(i); ok {
			log.Printf("GET %d = %q", i, v)
		} else {
			log.Printf("GET %d: missing", i)
		}

		if err := sleep(ctx, pace); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
