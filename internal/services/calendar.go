package services

import (
	"errors"
	"strings"
	"time"

	"ventes-app/internal/models"
)

// Evenement is one calendar entry: a vente pinned to its UTC calendar day.
type Evenement struct {
	VenteID   uint      `json:"venteId"`
	Titre     string    `json:"titre"`
	Vendeur   string    `json:"vendeur"`
	Etat      string    `json:"etat"`
	MontantHT float64   `json:"montantHT"`
	Jour      time.Time `json:"jour"`
}

var ErrJourInvalide = errors.New("jour invalide, format attendu YYYY-MM-DD")

// CalendarService maps ventes to planning events and validates reschedules.
type CalendarService struct{}

func NewCalendarService() *CalendarService { return &CalendarService{} }

// Evenements builds one event per vente with a parseable date. Ventes with
// broken dates are dropped silently rather than failing the whole view.
func (s *CalendarService) Evenements(ventes []models.Vente) []Evenement {
	events := make([]Evenement, 0, len(ventes))
	for i := range ventes {
		v := &ventes[i]
		jour, ok := v.Day()
		if !ok {
			continue
		}
		titre := v.NomClient
		if v.Designation != "" {
			titre += " - " + v.Designation
		}
		events = append(events, Evenement{
			VenteID:   v.ID,
			Titre:     titre,
			Vendeur:   v.Vendeur,
			Etat:      v.Etat,
			MontantHT: v.MontantHT,
			Jour:      jour,
		})
	}
	return events
}

// NouveauJour validates a drag-target day and returns the canonical date-only
// value written back to the vente. Only the date portion moves; any previous
// time-of-day is discarded.
func (s *CalendarService) NouveauJour(jour string) (string, error) {
	jour = strings.TrimSpace(jour)
	t, err := time.Parse("2006-01-02", jour)
	if err != nil {
		return "", ErrJourInvalide
	}
	return t.UTC().Format("2006-01-02"), nil
}
