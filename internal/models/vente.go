package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Vente is a sales-transaction record. DateVente is kept as the raw ISO
// string: legacy rows may carry unparseable values, and those must be treated
// as matching no period rather than rejected wholesale.
type Vente struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	DateVente string `gorm:"index" json:"dateVente"` // ISO 8601

	// client
	Civilite   string `json:"civilite"`
	NomClient  string `gorm:"not null;index" json:"nomClient"`
	Prenom     string `json:"prenom"`
	Telephone  string `gorm:"index" json:"telephone"`
	Adresse    string `json:"adresse"`
	Ville      string `json:"ville"`
	CodePostal string `json:"codePostal"`

	// commande
	NumeroBC    string `gorm:"index;size:6" json:"numeroBC"` // 6 chiffres, zéro-paddé
	Vendeur     string `gorm:"index" json:"vendeur"`         // plusieurs noms séparés par /
	Designation string `json:"designation"`
	Etat        string `json:"etat"` // EN ATTENTE, ANNULE, motifs libres

	// montants
	MontantHT     float64 `json:"montantHT"`
	MontantTTC    float64 `json:"montantTTC"`
	TauxTVA       float64 `json:"tauxTVA"`
	MontantAnnule float64 `json:"montantAnnule"`
	CAMensuel     float64 `json:"caMensuel"`
	BaremeCom     float64 `json:"baremeCom"`   // pourcentage
	MontantCom    float64 `json:"montantCom"`  // dérivé: bareme/100 * HT

	Paiements []Paiement `gorm:"foreignKey:VenteID" json:"paiements,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Paiement is an embedded payment entry on a vente.
type Paiement struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	VenteID     uint    `gorm:"not null;index" json:"venteId"`
	Montant     float64 `json:"montant"`
	Date        string  `json:"date"` // ISO 8601
	Commentaire string  `json:"commentaire"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VenteMasquee is the per-user "hidden sales" overlay. Hiding a vente removes
// it from that user's listings without touching the record itself.
type VenteMasquee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_masquee_user_vente,unique" json:"userId"`
	VenteID   uint      `gorm:"not null;index:idx_masquee_user_vente,unique" json:"venteId"`
	CreatedAt time.Time `json:"createdAt"`
}

var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-ish vente date into UTC. ok is false for values no
// layout accepts; callers treat those rows as dateless.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Day truncates the vente date to its UTC calendar day. UTC, not local time,
// so an event never shifts a day across timezones.
func (v *Vente) Day() (time.Time, bool) {
	t, ok := ParseDate(v.DateVente)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// UpperTextFields upper-cases the free-text client fields the way the entry
// form stores them.
func (v *Vente) UpperTextFields() {
	v.Civilite = strings.ToUpper(strings.TrimSpace(v.Civilite))
	v.NomClient = strings.ToUpper(strings.TrimSpace(v.NomClient))
	v.Prenom = strings.ToUpper(strings.TrimSpace(v.Prenom))
	v.Adresse = strings.ToUpper(strings.TrimSpace(v.Adresse))
	v.Ville = strings.ToUpper(strings.TrimSpace(v.Ville))
	v.Vendeur = strings.ToUpper(strings.TrimSpace(v.Vendeur))
	v.Designation = strings.ToUpper(strings.TrimSpace(v.Designation))
	v.Etat = strings.ToUpper(strings.TrimSpace(v.Etat))
}

// RecomputeCommission derives MontantCom from BaremeCom and MontantHT.
// Decimal arithmetic keeps 2.5% of 333.33 exact to the cent.
func (v *Vente) RecomputeCommission() {
	com := decimal.NewFromFloat(v.BaremeCom).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromFloat(v.MontantHT)).
		Round(2)
	v.MontantCom = com.InexactFloat64()
}
