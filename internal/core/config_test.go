package core

import (
	"testing"
	"time"
)

func TestResolveSeed(t *testing.T) {
	now := time.Unix(0, 12345)

	if got := (RuntimeConfig{Seed: 42}).ResolveSeed(now); got != 42 {
		t.Errorf("ResolveSeed with explicit seed = %d, expected 42", got)
	}
	if got := DefaultConfig().ResolveSeed(now); got != 12345 {
		t.Errorf("ResolveSeed without seed = %d, expected 12345", got)
	}
}
