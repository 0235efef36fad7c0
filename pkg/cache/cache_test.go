package cache

import (
	"testing"
	"time"
)

func TestSetAndGet(t *testing.T) {
	c := New()
	c.Set("key1", "value1", 1*time.Second)
	val, ok := c.Get("key1")
	if !ok || val != "value1" {
		t.Fatalf("expected value1, got %v, exists=%v", val, ok)
	}
}

func TestExpiration(t *testing.T) {
	c := New()
	c.Set("key1", "value1", 100*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	_, ok := c.Get("key1")
	if ok {
		t.Fatalf("expected expired key to return false")
	}
}

func TestDelete(t *testing.T) {
	c := New()
	c.Set("key1", "value1", 1*time.Second)
	c.Delete("key1")
	_, ok := c.Get("key1")
	if ok {
		t.Fatalf("expected deleted key to return false")
	}
}

func TestInvalidate(t *testing.T) {
	c := New()
	c.Set("flash:sid1", "c1", 1*time.Second)
	c.Set("flash:sid2", "c2", 1*time.Second)
	c.Set("stats:latest", "s1", 1*time.Second)
	c.Invalidate("flash:")
	_, ok1 := c.Get("flash:sid1")
	_, ok2 := c.Get("flash:sid2")
	_, ok3 := c.Get("stats:latest")
	if ok1 || ok2 {
		t.Fatalf("expected flash keys to be invalidated")
	}
	if !ok3 {
		t.Fatalf("expected stats:latest to still exist")
	}
}

func TestTakeRemovesOnRead(t *testing.T) {
	c := New()
	c.Set("flash:sid1", "saved", 1*time.Second)
	val, ok := c.Take("flash:sid1")
	if !ok || val != "saved" {
		t.Fatalf("expected saved, got %v, exists=%v", val, ok)
	}
	_, ok = c.Take("flash:sid1")
	if ok {
		t.Fatalf("expected second take to miss")
	}
}
