package services

import (
	"testing"

	"ventes-app/internal/models"
)

func ventesRecherche() []models.Vente {
	return []models.Vente{
		{ID: 1, NomClient: "HOARAU", Telephone: "0692145678", Adresse: "12 RUE DE LA RÉPUBLIQUE", Designation: "VÉRANDA ALU", NumeroBC: "000123"},
		{ID: 2, NomClient: "PAYET", Telephone: " 0262 45 67 89 ", Adresse: "3 CHEMIN DES LETCHIS", Designation: "PORTAIL", NumeroBC: "004567"},
		{ID: 3, NomClient: "GRONDIN", Telephone: "0693999999", Adresse: "VILLA BELLEVUE", Designation: "CUISINE ÉQUIPÉE", NumeroBC: "999999"},
	}
}

func TestFiltrerLoose(t *testing.T) {
	s := NewSearchService()
	got := s.Filtrer(ventesRecherche(), "republique", "")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("accent-insensitive loose match failed: %#v", got)
	}
	// order number is part of the loose field set
	got = s.Filtrer(ventesRecherche(), "4567", "")
	if len(got) != 2 {
		t.Fatalf("expected BC+phone matches, got %#v", got)
	}
	if got := s.Filtrer(ventesRecherche(), "zzz", ""); got != nil {
		t.Fatalf("expected nil for no results, got %#v", got)
	}
	if got := s.Filtrer(ventesRecherche(), "   ", ""); got != nil {
		t.Fatalf("blank query must return nothing")
	}
}

func TestFiltrerChampNomIsPrefix(t *testing.T) {
	s := NewSearchService()
	if got := s.Filtrer(ventesRecherche(), "hoa", ChampNom); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("prefix match failed: %#v", got)
	}
	// "oarau" is a substring but not a prefix of the name
	if got := s.Filtrer(ventesRecherche(), "oarau", ChampNom); got != nil {
		t.Fatalf("nom mode must be prefix-only, got %#v", got)
	}
}

func TestFiltrerChampTelephone(t *testing.T) {
	s := NewSearchService()
	got := s.Filtrer(ventesRecherche(), "  0262 45  ", ChampTelephone)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("telephone trim+substring failed: %#v", got)
	}
}

func TestFiltrerChampDesignation(t *testing.T) {
	s := NewSearchService()
	got := s.Filtrer(ventesRecherche(), "veranda", ChampDesignation)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("accent-folded designation match failed: %#v", got)
	}
	got = s.Filtrer(ventesRecherche(), "equipee", ChampDesignation)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected cuisine match, got %#v", got)
	}
}
