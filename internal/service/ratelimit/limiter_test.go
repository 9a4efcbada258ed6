package ratelimit

import (
	"testing"
	"time"
)

func TestAllowDrainsBucket(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("espn:mlb", 3, 0) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if l.Allow("espn:mlb", 3, 0) {
		t.Fatalf("bucket should be empty after capacity requests")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("espn:mlb", 1, 0) {
		t.Fatalf("first key should be allowed")
	}
	if l.Allow("espn:mlb", 1, 0) {
		t.Fatalf("first key should be drained")
	}
	if !l.Allow("oddsapi:mlb", 1, 0) {
		t.Fatalf("second key should have its own bucket")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()

	if !l.Allow("k", 1, 1000) {
		t.Fatalf("initial request should be allowed")
	}
	if l.Allow("k", 1, 1000) {
		t.Fatalf("bucket should be drained")
	}
	time.Sleep(5 * time.Millisecond)
	if !l.Allow("k", 1, 1000) {
		t.Fatalf("bucket should have refilled")
	}
}

func TestReset(t *testing.T) {
	l := New()

	l.Allow("k", 1, 0)
	if l.Allow("k", 1, 0) {
		t.Fatalf("bucket should be drained")
	}
	l.Reset("k")
	if !l.Allow("k", 1, 0) {
		t.Fatalf("reset should restore a full bucket")
	}
}
