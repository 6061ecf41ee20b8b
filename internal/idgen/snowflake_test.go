package idgen

import (
	"testing"
	"time"
)

func TestOrderNo(t *testing.T) {
	Init(1)

	ts := time.Date(2023, 1, 1, 12, 0, 0, 0, time.Local)
	no := OrderNo(ts)
	if len(no) != 24 {
		t.Fatalf("order no length: got %d (%s), want 24", len(no), no)
	}
	if no[:14] != "20230101120000" {
		t.Errorf("order no prefix: got %s", no[:14])
	}

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n := OrderNo(ts)
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate order no: %s", n)
		}
		seen[n] = struct{}{}
	}
}
