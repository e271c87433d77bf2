package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ventes-app/internal/models"
	"ventes-app/internal/textutil"
)

// Periode is a closed date filter: calendar month, calendar year, or an
// inclusive day range. The zero value matches nothing.
type Periode struct {
	kind string // "mois", "annee", "plage"
	ref  time.Time
	du   time.Time
	au   time.Time
}

// Mois matches every date in the same calendar month as ref.
func Mois(ref time.Time) Periode { return Periode{kind: "mois", ref: ref.UTC()} }

// Annee matches every date in the same calendar year as ref.
func Annee(ref time.Time) Periode { return Periode{kind: "annee", ref: ref.UTC()} }

// Plage matches every date between du and au, both days included.
func Plage(du, au time.Time) Periode {
	return Periode{
		kind: "plage",
		du:   time.Date(du.Year(), du.Month(), du.Day(), 0, 0, 0, 0, time.UTC),
		au:   time.Date(au.Year(), au.Month(), au.Day(), 23, 59, 59, 999999999, time.UTC),
	}
}

func (p Periode) Contains(t time.Time) bool {
	t = t.UTC()
	switch p.kind {
	case "mois":
		return t.Year() == p.ref.Year() && t.Month() == p.ref.Month()
	case "annee":
		return t.Year() == p.ref.Year()
	case "plage":
		return !t.Before(p.du) && !t.After(p.au)
	}
	return false
}

// CumulVendeur is the running per-salesperson aggregate.
type CumulVendeur struct {
	Vendeur string  `json:"vendeur"`
	TotalHT float64 `json:"totalHT"`
	Parts   float64 `json:"parts"`
}

// Bilan is the aggregation output for a period.
type Bilan struct {
	// Classement ranks recognized vendeurs by descending TotalHT; ties keep
	// encounter order.
	Classement []CumulVendeur `json:"classement"`
	// TotalAgence sums HT over ALL in-period ventes, cancelled included.
	// The asymmetry with Classement is the historical business rule; do not
	// unify the two without a confirmed decision.
	TotalAgence float64 `json:"totalAgence"`
	NbVentes    int     `json:"nbVentes"`
}

// StatsService computes per-vendeur and agency-wide summaries.
type StatsService struct {
	reconnus map[string]bool // allow-list of folded vendeur names for display
}

func NewStatsService(vendeurs []string) *StatsService {
	m := make(map[string]bool, len(vendeurs))
	for _, v := range vendeurs {
		if n := textutil.FoldTrim(v); n != "" {
			m[n] = true
		}
	}
	return &StatsService{reconnus: m}
}

// EstExclue reports whether a vente is excluded from the vendeur ranking:
// any token of the folded Etat starts with "annule", or a cancelled amount
// was recorded.
func (s *StatsService) EstExclue(v *models.Vente) bool {
	if v.MontantAnnule > 0 {
		return true
	}
	for _, tok := range strings.Fields(textutil.Fold(v.Etat)) {
		if strings.HasPrefix(tok, "annule") {
			return true
		}
	}
	return false
}

// Bilan aggregates the in-period slice of ventes. Ventes with unparseable
// dates match no period. Ventes without a vendeur still count toward the
// agency total.
func (s *StatsService) Bilan(ventes []models.Vente, p Periode) Bilan {
	totalAgence := decimal.Zero
	totaux := map[string]decimal.Decimal{}
	parts := map[string]decimal.Decimal{}
	var ordre []string // encounter order of vendeur names, for stable ranking
	nbVentes := 0

	for i := range ventes {
		v := &ventes[i]
		d, ok := models.ParseDate(v.DateVente)
		if !ok || !p.Contains(d) {
			continue
		}
		nbVentes++
		totalAgence = totalAgence.Add(decimal.NewFromFloat(v.MontantHT))

		if s.EstExclue(v) {
			continue
		}
		noms := textutil.SplitVendeurs(v.Vendeur)
		if len(noms) == 0 {
			continue
		}
		n := decimal.NewFromInt(int64(len(noms)))
		partHT := decimal.NewFromFloat(v.MontantHT).Div(n)
		partCompte := decimal.NewFromInt(1).Div(n)
		for _, nom := range noms {
			if _, seen := totaux[nom]; !seen {
				ordre = append(ordre, nom)
			}
			totaux[nom] = totaux[nom].Add(partHT)
			parts[nom] = parts[nom].Add(partCompte)
		}
	}

	classement := make([]CumulVendeur, 0, len(ordre))
	for _, nom := range ordre {
		if !s.reconnus[nom] {
			// computed but not surfaced in the ranked list
			continue
		}
		classement = append(classement, CumulVendeur{
			Vendeur: nom,
			TotalHT: totaux[nom].InexactFloat64(),
			Parts:   parts[nom].InexactFloat64(),
		})
	}
	sort.SliceStable(classement, func(i, j int) bool {
		return classement[i].TotalHT > classement[j].TotalHT
	})

	return Bilan{
		Classement:  classement,
		TotalAgence: totalAgence.InexactFloat64(),
		NbVentes:    nbVentes,
	}
}
