package handlers

import (
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"ventes-app/internal/httpx"
	"ventes-app/internal/models"
	"ventes-app/internal/services"
)

type StatsHandler struct {
	DB  *gorm.DB
	Svc *services.StatsService
}

func NewStatsHandler(db *gorm.DB, svc *services.StatsService) *StatsHandler {
	return &StatsHandler{DB: db, Svc: svc}
}

// Bilan handles GET /api/stats.
//
//	?periode=mois&date=2024-03-01   calendar month of date
//	?periode=annee&date=2024-01-01  calendar year of date
//	?du=2024-01-01&au=2024-03-31    inclusive day range
//
// Without parameters: current month.
func (h *StatsHandler) Bilan(w http.ResponseWriter, r *http.Request) {
	p, err := periodeFromQuery(r)
	if err != "" {
		httpx.JSONError(w, http.StatusBadRequest, err, nil)
		return
	}
	var ventes []models.Vente
	if err := h.DB.Find(&ventes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_ventes", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.Svc.Bilan(ventes, p))
}

// periodeFromQuery builds the period filter; the second return value is an
// error code, empty on success.
func periodeFromQuery(r *http.Request) (services.Periode, string) {
	q := r.URL.Query()
	du := strings.TrimSpace(q.Get("du"))
	au := strings.TrimSpace(q.Get("au"))
	if du != "" || au != "" {
		dDu, okDu := models.ParseDate(du)
		dAu, okAu := models.ParseDate(au)
		if !okDu || !okAu {
			return services.Periode{}, "invalid_range"
		}
		return services.Plage(dDu, dAu), ""
	}
	ref := time.Now().UTC()
	if d := strings.TrimSpace(q.Get("date")); d != "" {
		parsed, ok := models.ParseDate(d)
		if !ok {
			return services.Periode{}, "invalid_date"
		}
		ref = parsed
	}
	switch q.Get("periode") {
	case "", "mois":
		return services.Mois(ref), ""
	case "annee":
		return services.Annee(ref), ""
	}
	return services.Periode{}, "invalid_periode"
}
