package cache

import (
	"reflect"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

// model is a slow reference LRU: a slice ordered MRU -> LRU.
type model struct {
	maxWeight int
	order     []int
	weights   map[int]int
}

func (m *model) total() int {
	sum := 0
	for _, w := range m.weights {
		sum += w
	}
	return sum
}

func (m *model) touch(k int) {
	for i, key := range m.order {
		if key == k {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.order = append([]int{k}, m.order...)
}

func (m *model) put(k, w int) bool {
	if w > m.maxWeight {
		return false
	}
	m.weights[k] = w
	m.touch(k)
	for m.total() > m.maxWeight {
		last := m.order[len(m.order)-1]
		m.order = m.order[:len(m.order)-1]
		delete(m.weights, last)
	}
	return true
}

func (m *model) get(k int) bool {
	if _, ok := m.weights[k]; !ok {
		return false
	}
	m.touch(k)
	return true
}

func TestMatchesReferenceModel(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		f := gofakeit.New(seed)
		maxWeight := f.Number(1, 64)

		c := New[int, blob](maxWeight)
		m := &model{maxWeight: maxWeight, weights: make(map[int]int)}

		for op := 0; op < 500; op++ {
			key := f.Number(0, 30)

			if f.Bool() {
				// Occasionally oversized, sometimes weightless.
				v := blob(f.LetterN(uint(f.Number(0, maxWeight+4))))
				if got, want := c.Put(key, v), m.put(key, len(v)); got != want {
					t.Fatalf("seed %d op %d: put(%d, %d bytes) = %v, want %v", seed, op, key, len(v), got, want)
				}
			} else {
				_, got := c.Get(key)
				if want := m.get(key); got != want {
					t.Fatalf("seed %d op %d: get(%d) found = %v, want %v", seed, op, key, got, want)
				}
			}

			if got := c.Keys(); !reflect.DeepEqual(got, m.order) && !(len(got) == 0 && len(m.order) == 0) {
				t.Fatalf("seed %d op %d: keys = %v, want %v", seed, op, got, m.order)
			}
			if c.Size() != m.total() {
				t.Fatalf("seed %d op %d: size = %d, want %d", seed, op, c.Size(), m.total())
			}
			checkInvariants(t, c)
		}
	}
}

func TestRoundTripRandomPayloads(t *testing.T) {
	f := gofakeit.New(7)
	c := New[string, string](1 << 20)

	want := make(map[string]string)
	for i := 0; i < 200; i++ {
		k := f.UUID()
		v := f.Email()
		if !c.Put(k, v) {
			t.Fatalf("put %s rejected", k)
		}
		want[k] = v
	}

	for k, v := range want {
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("get %s = %q, %v; want %q, true", k, got, ok, v)
		}
	}
}
