package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"ventes-app/internal/auth"
	"ventes-app/internal/httpx"
	"ventes-app/internal/models"
	"ventes-app/internal/services"
)

type PlanningHandler struct {
	DB  *gorm.DB
	Svc *services.CalendarService
}

func NewPlanningHandler(db *gorm.DB) *PlanningHandler {
	return &PlanningHandler{DB: db, Svc: services.NewCalendarService()}
}

// Events handles GET /api/planning[?du=YYYY-MM-DD&au=YYYY-MM-DD].
// Ventes with broken dates simply do not appear.
func (h *PlanningHandler) Events(w http.ResponseWriter, r *http.Request) {
	var ventes []models.Vente
	if err := h.DB.Find(&ventes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_ventes", nil)
		return
	}
	events := h.Svc.Evenements(ventes)

	du := strings.TrimSpace(r.URL.Query().Get("du"))
	au := strings.TrimSpace(r.URL.Query().Get("au"))
	if du != "" && au != "" {
		dDu, okDu := models.ParseDate(du)
		dAu, okAu := models.ParseDate(au)
		if !okDu || !okAu {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_range", nil)
			return
		}
		p := services.Plage(dDu, dAu)
		kept := events[:0]
		for _, e := range events {
			if p.Contains(e.Jour) {
				kept = append(kept, e)
			}
		}
		events = kept
	}
	httpx.JSON(w, http.StatusOK, events)
}

// Reschedule handles PUT /api/planning/{id}: a calendar drag writes the new
// day into the vente's date field and nothing else. Failures leave the row
// untouched so the client can revert the visual move.
func (h *PlanningHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req struct {
		Date string `json:"date"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	jour, err := h.Svc.NouveauJour(req.Date)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
		return
	}
	var v models.Vente
	if err := h.DB.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_vente", nil)
		return
	}
	// single-column update: only the date field moves
	if err := h.DB.Model(&v).Update("date_vente", jour).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_reschedule", nil)
		return
	}
	if s, ok := auth.FromContext(r.Context()); ok {
		audit(h.DB, s.UserID, "Vente", v.ID, "reschedule")
	}
	httpx.JSON(w, http.StatusOK, v)
}
