package proxy

import "testing"

func TestPool_Rotation(t *testing.T) {
	pool := NewPool([]string{"p1:8080", "p2:8080", "p3:8080"})

	for _, want := range []string{"p1:8080", "p2:8080", "p3:8080", "p1:8080"} {
		if got := pool.Next(); got != want {
			t.Errorf("Next() = %s, want %s", got, want)
		}
	}
}

func TestPool_SkipsFailed(t *testing.T) {
	pool := NewPool([]string{"p1:8080", "p2:8080", "p3:8080"})
	pool.MarkFailed("p2:8080")

	// Starting from p1, p2 is benched so we see p1, p3, p1, p3...
	for _, want := range []string{"p1:8080", "p3:8080", "p1:8080"} {
		if got := pool.Next(); got != want {
			t.Errorf("Next() = %s, want %s", got, want)
		}
	}

	// After the sequence above the pointer sits on p2 again
	pool.MarkHealthy("p2:8080")
	for _, want := range []string{"p2:8080", "p3:8080", "p1:8080"} {
		if got := pool.Next(); got != want {
			t.Errorf("Next() after MarkHealthy = %s, want %s", got, want)
		}
	}
}

func TestPool_Empty(t *testing.T) {
	pool := NewPool(nil)
	if got := pool.Next(); got != "" {
		t.Errorf("Empty pool Next() = %q, want empty", got)
	}
}

func TestFromEnv(t *testing.T) {
	pool := FromEnv(" p1:8080, p2:8080 ,")
	if pool.Size() != 2 {
		t.Fatalf("Expected 2 proxies, got %d", pool.Size())
	}
	if got := pool.Next(); got != "p1:8080" {
		t.Errorf("Next() = %s, want p1:8080", got)
	}

	if FromEnv("").Size() != 0 {
		t.Error("Empty env value should yield empty pool")
	}
}
