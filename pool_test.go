package md2card

import "testing"

func TestServicePool(t *testing.T) {
	t.Run("lazy creation up to capacity", func(t *testing.T) {
		pool := NewServicePool(2, WithRenderer(&fakeRenderer{}))
		defer pool.Close()

		first := pool.Acquire()
		second := pool.Acquire()
		if first == nil || second == nil {
			t.Fatal("Acquire() returned nil")
		}
		if first == second {
			t.Error("pool handed out the same service twice")
		}

		pool.Release(first)
		if reused := pool.Acquire(); reused != first {
			t.Error("released service not reused")
		}
	})

	t.Run("minimum size is one", func(t *testing.T) {
		pool := NewServicePool(0)
		defer pool.Close()

		if pool.Size() != 1 {
			t.Errorf("Size() = %d, want 1", pool.Size())
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		pool := NewServicePool(1, WithRenderer(&fakeRenderer{}))
		pool.Acquire()

		if err := pool.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := pool.Close(); err != nil {
			t.Fatalf("second Close() error = %v", err)
		}
	})

	t.Run("close shuts created services down", func(t *testing.T) {
		renderer := &fakeRenderer{}
		pool := NewServicePool(1, WithRenderer(renderer))
		pool.Release(pool.Acquire())

		if err := pool.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if !renderer.closed {
			t.Error("renderer not closed by pool shutdown")
		}
	})
}

func TestResolvePoolSize(t *testing.T) {
	if got := ResolvePoolSize(3); got != 3 {
		t.Errorf("ResolvePoolSize(3) = %d, want explicit value", got)
	}

	got := ResolvePoolSize(0)
	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", got, MinPoolSize, MaxPoolSize)
	}
}
