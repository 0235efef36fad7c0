package ratelimit

import (
	"testing"
	"time"
)

func TestAllowDefaultBudget(t *testing.T) {
	limiter := NewLimiter(3, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("register:10.0.0.1") {
			t.Fatalf("request %d should be within the budget", i+1)
		}
	}
	if limiter.Allow("register:10.0.0.1") {
		t.Error("fourth request should exceed the budget")
	}
	if !limiter.Allow("register:10.0.0.2") {
		t.Error("a different key has its own budget")
	}
}

func TestAllowEmptyKey(t *testing.T) {
	limiter := NewLimiter(1, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if !limiter.Allow("") {
			t.Fatal("empty keys are never limited")
		}
	}
}

func TestAllowStrictSeparateFromDefault(t *testing.T) {
	limiter := NewLimiter(100, time.Minute)
	defer limiter.Stop()

	if !limiter.AllowStrict("login:10.0.0.1", 1, time.Minute) {
		t.Fatal("first strict request should pass")
	}
	if limiter.AllowStrict("login:10.0.0.1", 1, time.Minute) {
		t.Error("second strict request should be limited")
	}
	if !limiter.Allow("login:10.0.0.1") {
		t.Error("strict buckets must not bleed into the default budget")
	}
}
