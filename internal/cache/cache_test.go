package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string](10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache returned a value")
	}
	c.Set("a", "um")
	if v, ok := c.Get("a"); !ok || v != "um" {
		t.Fatalf("Get(a) = %q, %v", v, ok)
	}
	c.Set("a", "dois")
	if v, _ := c.Get("a"); v != "dois" {
		t.Fatalf("overwrite lost: %q", v)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](10, time.Minute)
	base := time.Unix(1000, 0)
	c.now = func() time.Time { return base }

	c.Set("k", 7)
	base = base.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired early")
	}
	base = base.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry survived past its TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not removed, Len = %d", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := New[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a, b becomes oldest
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry not evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("new entry missing")
	}
}

func TestCleanExpired(t *testing.T) {
	c := New[int](10, time.Minute)
	base := time.Unix(1000, 0)
	c.now = func() time.Time { return base }

	c.Set("a", 1)
	base = base.Add(30 * time.Second)
	c.Set("b", 2)
	base = base.Add(45 * time.Second)

	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("CleanExpired = %d, want 1", n)
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("live entry removed")
	}
}

func TestDelete(t *testing.T) {
	c := New[int](10, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("a")
	if c.Len() != 0 {
		t.Fatalf("Len = %d after delete", c.Len())
	}
}
