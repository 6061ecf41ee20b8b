package utils

import "testing"

func TestYuanToFen(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0.01", 1, true},
		{"1", 100, true},
		{"19.90", 1990, true},
		{"0.001", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, err := YuanToFen(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("YuanToFen(%q) = %d, %v; want %d", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("YuanToFen(%q): expected error", c.in)
		}
	}
}

func TestGenerateNonce(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		n := GenerateNonce(32)
		if len(n) != 32 {
			t.Fatalf("nonce length: %d", len(n))
		}
		if !IsValidNonce(n) {
			t.Fatalf("nonce has invalid chars: %s", n)
		}
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate nonce: %s", n)
		}
		seen[n] = struct{}{}
	}
}
