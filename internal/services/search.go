package services

import (
	"strings"

	"ventes-app/internal/models"
	"ventes-app/internal/textutil"
)

// Champ selects the per-field strict matching mode layered on top of the
// loose search.
type Champ string

const (
	ChampNom         Champ = "nom"
	ChampTelephone   Champ = "telephone"
	ChampAdresse     Champ = "adresse"
	ChampDesignation Champ = "designation"
)

// SearchService locates ventes matching a free-text query. Matching runs in
// memory over folded strings: SQL LOWER()/LIKE is ASCII-only on sqlite and
// cannot fold accents, and the data set is small-business sized.
type SearchService struct{}

func NewSearchService() *SearchService { return &SearchService{} }

// MatchLoose is the broad server-side match: case/accent-insensitive
// substring across client name, phone, order number, address, designation.
func (s *SearchService) MatchLoose(v *models.Vente, query string) bool {
	q := textutil.FoldTrim(query)
	if q == "" {
		return false
	}
	for _, field := range []string{v.NomClient, v.Telephone, v.NumeroBC, v.Adresse, v.Designation} {
		if strings.Contains(textutil.Fold(field), q) {
			return true
		}
	}
	return false
}

// MatchChamp applies the stricter per-field mode:
//   - nom: folded prefix match
//   - telephone: substring after trimming whitespace from query and value
//   - adresse/designation: folded substring
//
// An unknown champ falls back to the loose match.
func (s *SearchService) MatchChamp(v *models.Vente, champ Champ, query string) bool {
	switch champ {
	case ChampNom:
		return strings.HasPrefix(textutil.Fold(v.NomClient), textutil.FoldTrim(query))
	case ChampTelephone:
		q := strings.TrimSpace(query)
		if q == "" {
			return false
		}
		return strings.Contains(strings.TrimSpace(v.Telephone), q)
	case ChampAdresse:
		return strings.Contains(textutil.Fold(v.Adresse), textutil.FoldTrim(query))
	case ChampDesignation:
		return strings.Contains(textutil.Fold(v.Designation), textutil.FoldTrim(query))
	}
	return s.MatchLoose(v, query)
}

// Filtrer returns the ventes matching query, narrowed by champ when given.
// The loose match always applies first; the champ mode restricts on top of
// it, mirroring the original client-over-server layering.
func (s *SearchService) Filtrer(ventes []models.Vente, query string, champ Champ) []models.Vente {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	var out []models.Vente
	for i := range ventes {
		v := &ventes[i]
		if !s.MatchLoose(v, query) {
			continue
		}
		if champ != "" && !s.MatchChamp(v, champ, query) {
			continue
		}
		out = append(out, *v)
	}
	return out
}
