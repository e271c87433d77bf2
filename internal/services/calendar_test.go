package services

import (
	"testing"
	"time"

	"ventes-app/internal/models"
)

func TestEvenements(t *testing.T) {
	s := NewCalendarService()
	ventes := []models.Vente{
		{ID: 1, NomClient: "PAYET", Designation: "VERANDA", DateVente: "2024-03-05T10:00:00.000Z"},
		{ID: 2, NomClient: "RIVET", DateVente: "date cassée"},
		{ID: 3, NomClient: "HOARAU", DateVente: "2024-03-05T23:30:00+04:00"},
	}
	events := s.Evenements(ventes)
	if len(events) != 2 {
		t.Fatalf("expected broken date dropped silently, got %d events", len(events))
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, e := range events {
		if !e.Jour.Equal(want) {
			t.Errorf("event %d: jour = %v, want %v", e.VenteID, e.Jour, want)
		}
	}
	if events[0].Titre != "PAYET - VERANDA" {
		t.Fatalf("unexpected titre %q", events[0].Titre)
	}
}

func TestNouveauJour(t *testing.T) {
	s := NewCalendarService()
	got, err := s.NouveauJour(" 2024-03-12 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-03-12" {
		t.Fatalf("expected 2024-03-12 got %q", got)
	}
	for _, bad := range []string{"", "12/03/2024", "2024-13-01", "demain"} {
		if _, err := s.NouveauJour(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
