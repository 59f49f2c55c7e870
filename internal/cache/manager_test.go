package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManagerSweeps(t *testing.T) {
	c := NewLRU[int](10, time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)

	m := NewManager()
	m.Register(c)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.Run(ctx, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run returned %v", err)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d after sweeps", c.Size())
	}
}
