package services

import (
	"testing"

	"ventes-app/internal/validation"
)

func TestGenererFormat(t *testing.T) {
	s := NewNumeroService()
	for i := 0; i < 100; i++ {
		n, err := s.Generer(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !validation.IsNumeroBC(n) {
			t.Fatalf("generated %q is not a 6-digit number", n)
		}
		if n[0] == '0' {
			t.Fatalf("generated %q outside 100000..999999", n)
		}
	}
}

func TestGenererSkipsExisting(t *testing.T) {
	// deterministic draw sequence: collide twice, then succeed
	draws := []int{0, 0, 1}
	i := 0
	s := &NumeroService{intN: func(int) int { v := draws[i]; i++; return v }}
	existants := map[string]bool{"100000": true}
	n, err := s.Generer(existants)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != "100001" {
		t.Fatalf("expected 100001 got %s", n)
	}
}

func TestGenererExhaustion(t *testing.T) {
	s := &NumeroService{intN: func(int) int { return 0 }}
	if _, err := s.Generer(map[string]bool{"100000": true}); err != ErrNumerosEpuises {
		t.Fatalf("expected ErrNumerosEpuises got %v", err)
	}
}
