package isa

import "testing"

func TestResolveAlias(t *testing.T) {
	tests := map[string]string{
		"ip": "r0",
		"RP": "r29",
		"Fp": "r30",
		"SP": "r31",
		"r7": "r7",
		"bp": "bp",
	}
	for in, want := range tests {
		if got := ResolveAlias(in); got != want {
			t.Errorf("ResolveAlias(%q) = %q, want %q", in, got, want)
		}
	}
}
