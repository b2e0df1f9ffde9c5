package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Run with -race: every public method must be safe to call concurrently.
func TestConcurrentPutGet(t *testing.T) {
	const (
		workers   = 8
		perWorker = 2000
		maxWeight = 256
	)

	keys := make([]string, 64)
	for i := range keys {
		keys[i] = uuid.NewString()
	}

	c := New[string, blob](maxWeight)

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				k := keys[(w*31+i)%len(keys)]
				if i%3 == 0 {
					if !c.Put(k, make(blob, 1+(i%maxWeight))) {
						return fmt.Errorf("worker %d: put %s rejected", w, k)
					}
					continue
				}

				if v, ok := c.Get(k); ok && len(v) == 0 {
					return fmt.Errorf("worker %d: get %s returned empty value", w, k)
				}
				if size := c.Size(); size > maxWeight {
					return fmt.Errorf("worker %d: size %d exceeds %d", w, size, maxWeight)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("workers: %v", err)
	}
	checkInvariants(t, c)

	st := c.Stats()
	if st.Hits+st.Misses == 0 {
		t.Fatalf("expected reads to be counted")
	}
}

func TestConcurrentCloseIsSafe(t *testing.T) {
	c := New[int, int](16)

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 500; i++ {
				c.Put(w*1000+i, i)
				c.Get(w*1000 + i - 1)
			}
			return nil
		})
	}
	g.Go(c.Close)

	if err := g.Wait(); err != nil {
		t.Fatalf("workers: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("len after close = %d, want 0", c.Len())
	}
}
