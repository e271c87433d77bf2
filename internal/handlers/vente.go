package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"ventes-app/internal/auth"
	"ventes-app/internal/httpx"
	"ventes-app/internal/middleware"
	"ventes-app/internal/models"
	"ventes-app/internal/pdf"
	"ventes-app/internal/services"
	"ventes-app/internal/validation"
)

type VenteHandler struct {
	DB        *gorm.DB
	Numeros   *services.NumeroService
	Recherche *services.SearchService
}

func NewVenteHandler(db *gorm.DB) *VenteHandler {
	return &VenteHandler{
		DB:        db,
		Numeros:   services.NewNumeroService(),
		Recherche: services.NewSearchService(),
	}
}

type paiementReq struct {
	Montant     float64 `json:"montant"`
	Date        string  `json:"date"`
	Commentaire string  `json:"commentaire"`
}

type venteReq struct {
	DateVente     *string       `json:"dateVente"`
	Civilite      *string       `json:"civilite"`
	NomClient     *string       `json:"nomClient"`
	Prenom        *string       `json:"prenom"`
	Telephone     *string       `json:"telephone"`
	Adresse       *string       `json:"adresse"`
	Ville         *string       `json:"ville"`
	CodePostal    *string       `json:"codePostal"`
	NumeroBC      *string       `json:"numeroBC"`
	Vendeur       *string       `json:"vendeur"`
	Designation   *string       `json:"designation"`
	Etat          *string       `json:"etat"`
	MontantHT     *float64      `json:"montantHT"`
	MontantTTC    *float64      `json:"montantTTC"`
	TauxTVA       *float64      `json:"tauxTVA"`
	MontantAnnule *float64      `json:"montantAnnule"`
	CAMensuel     *float64      `json:"caMensuel"`
	BaremeCom     *float64      `json:"baremeCom"`
	Paiements     []paiementReq `json:"paiements"`
}

// apply copies the set fields of the request onto v.
func (req *venteReq) apply(v *models.Vente) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&v.DateVente, req.DateVente)
	setStr(&v.Civilite, req.Civilite)
	setStr(&v.NomClient, req.NomClient)
	setStr(&v.Prenom, req.Prenom)
	setStr(&v.Telephone, req.Telephone)
	setStr(&v.Adresse, req.Adresse)
	setStr(&v.Ville, req.Ville)
	setStr(&v.CodePostal, req.CodePostal)
	setStr(&v.NumeroBC, req.NumeroBC)
	setStr(&v.Vendeur, req.Vendeur)
	setStr(&v.Designation, req.Designation)
	setStr(&v.Etat, req.Etat)
	setF(&v.MontantHT, req.MontantHT)
	setF(&v.MontantTTC, req.MontantTTC)
	setF(&v.TauxTVA, req.TauxTVA)
	setF(&v.MontantAnnule, req.MontantAnnule)
	setF(&v.CAMensuel, req.CAMensuel)
	setF(&v.BaremeCom, req.BaremeCom)
}

func parseID(r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// List handles GET /api/ventes[?date=YYYY-MM-DD][&masquees=exclure].
func (h *VenteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Preload("Paiements").Order("id desc")
	if r.URL.Query().Get("masquees") == "exclure" {
		if s, ok := auth.FromContext(r.Context()); ok {
			sub := h.DB.Model(&models.VenteMasquee{}).Select("vente_id").Where("user_id = ?", s.UserID)
			q = q.Where("id NOT IN (?)", sub)
		}
	}
	var ventes []models.Vente
	if err := q.Find(&ventes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_ventes", nil)
		return
	}
	if dateStr := strings.TrimSpace(r.URL.Query().Get("date")); dateStr != "" {
		jour, ok := models.ParseDate(dateStr)
		if !ok {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
			return
		}
		// day comparison happens in memory: DateVente is a raw ISO string and
		// the UTC day of "…T23:30:00+04:00" is not its string prefix
		filtered := ventes[:0]
		for _, v := range ventes {
			if d, ok := v.Day(); ok && d.Equal(jour) {
				filtered = append(filtered, v)
			}
		}
		ventes = filtered
	}
	httpx.JSON(w, http.StatusOK, ventes)
}

// Create handles POST /api/ventes.
func (h *VenteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req venteReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var v models.Vente
	req.apply(&v)

	violations := validation.Violations{}
	validation.Required("nomClient", v.NomClient, violations)
	if _, ok := models.ParseDate(v.DateVente); !ok {
		violations["dateVente"] = "invalid_date"
	}
	if v.NumeroBC == "" {
		numero, err := h.genererNumero()
		if err != nil {
			httpx.JSONError(w, http.StatusConflict, "numeros_epuises", nil)
			return
		}
		v.NumeroBC = numero
	} else {
		validation.NumeroBC("numeroBC", v.NumeroBC, violations)
	}
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}

	v.UpperTextFields()
	v.RecomputeCommission()
	for _, p := range req.Paiements {
		v.Paiements = append(v.Paiements, models.Paiement{
			Montant:     p.Montant,
			Date:        p.Date,
			Commentaire: strings.ToUpper(strings.TrimSpace(p.Commentaire)),
		})
	}
	if err := h.DB.Create(&v).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_vente", nil)
		return
	}
	if s, ok := auth.FromContext(r.Context()); ok {
		audit(h.DB, s.UserID, "Vente", v.ID, "create")
	}
	httpx.JSON(w, http.StatusCreated, v)
}

// Get handles GET /api/ventes/{id}.
func (h *VenteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var v models.Vente
	if err := h.DB.Preload("Paiements").First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_vente", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

// Update handles PUT /api/ventes/{id}. Partial: only the fields present in
// the body move. The commission is rederived after every update so BaremeCom
// and MontantHT can never drift apart from MontantCom.
func (h *VenteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req venteReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var v models.Vente
	if err := h.DB.Preload("Paiements").First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_vente", nil)
		return
	}
	req.apply(&v)

	violations := validation.Violations{}
	validation.Required("nomClient", v.NomClient, violations)
	if req.DateVente != nil {
		if _, ok := models.ParseDate(v.DateVente); !ok {
			violations["dateVente"] = "invalid_date"
		}
	}
	if req.NumeroBC != nil {
		validation.NumeroBC("numeroBC", v.NumeroBC, violations)
	}
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}

	v.UpperTextFields()
	v.RecomputeCommission()

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if req.Paiements != nil {
			if err := tx.Where("vente_id = ?", v.ID).Delete(&models.Paiement{}).Error; err != nil {
				return err
			}
			v.Paiements = nil
			for _, p := range req.Paiements {
				v.Paiements = append(v.Paiements, models.Paiement{
					VenteID:     v.ID,
					Montant:     p.Montant,
					Date:        p.Date,
					Commentaire: strings.ToUpper(strings.TrimSpace(p.Commentaire)),
				})
			}
		}
		return tx.Save(&v).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_vente", nil)
		return
	}
	if s, ok := auth.FromContext(r.Context()); ok {
		audit(h.DB, s.UserID, "Vente", v.ID, "update")
	}
	httpx.JSON(w, http.StatusOK, v)
}

// Delete handles DELETE /api/ventes/{id} (admin only, enforced by the router).
func (h *VenteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
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
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vente_id = ?", id).Delete(&models.Paiement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vente_id = ?", id).Delete(&models.VenteMasquee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&v).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_vente", nil)
		return
	}
	if s, ok := auth.FromContext(r.Context()); ok {
		audit(h.DB, s.UserID, "Vente", id, "delete")
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Search handles GET /api/ventes/search?searchTerm=...&champ=....
// Zero matches answer with a 404-shaped body: that is normal control flow for
// this endpoint, not a fault.
func (h *VenteHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("searchTerm")
	if strings.TrimSpace(term) == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_search_term", nil)
		return
	}
	champ := services.Champ(r.URL.Query().Get("champ"))
	var ventes []models.Vente
	if err := h.DB.Preload("Paiements").Order("id desc").Find(&ventes).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_search", nil)
		return
	}
	matches := h.Recherche.Filtrer(ventes, term, champ)
	if len(matches) == 0 {
		httpx.NotFound(w)
		return
	}
	httpx.JSON(w, http.StatusOK, matches)
}

// Numero handles GET /api/ventes/numero: a fresh unused 6-digit BC number.
// Uniqueness is checked against the stored set at generation time only; there
// is no storage constraint, so concurrent creations can still collide.
func (h *VenteHandler) Numero(w http.ResponseWriter, r *http.Request) {
	numero, err := h.genererNumero()
	if err != nil {
		httpx.JSONError(w, http.StatusConflict, "numeros_epuises", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"numeroBC": numero})
}

func (h *VenteHandler) genererNumero() (string, error) {
	var existants []string
	if err := h.DB.Model(&models.Vente{}).Pluck("numero_bc", &existants).Error; err != nil {
		return "", err
	}
	set := make(map[string]bool, len(existants))
	for _, n := range existants {
		set[n] = true
	}
	return h.Numeros.Generer(set)
}

// Masquer handles POST /api/ventes/{id}/masquer: hide a vente from the
// caller's listings without touching the record.
func (h *VenteHandler) Masquer(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := parseID(r)
	if !okID {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var count int64
	if err := h.DB.Model(&models.Vente{}).Where("id = ?", id).Count(&count).Error; err != nil || count == 0 {
		httpx.NotFound(w)
		return
	}
	m := models.VenteMasquee{UserID: s.UserID, VenteID: id}
	if err := h.DB.Where(&m).FirstOrCreate(&m).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_hide_vente", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "masquee"})
}

// Demasquer handles DELETE /api/ventes/{id}/masquer.
func (h *VenteHandler) Demasquer(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := parseID(r)
	if !okID {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Where("user_id = ? AND vente_id = ?", s.UserID, id).Delete(&models.VenteMasquee{}).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_unhide_vente", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "visible"})
}

// Masquees handles GET /api/ventes/masquees: ids hidden by the caller.
func (h *VenteHandler) Masquees(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var ids []uint
	if err := h.DB.Model(&models.VenteMasquee{}).Where("user_id = ?", s.UserID).Pluck("vente_id", &ids).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_hidden", nil)
		return
	}
	if ids == nil {
		ids = []uint{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"venteIds": ids})
}

// PDF handles GET /api/ventes/{id}/pdf.
func (h *VenteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var v models.Vente
	if err := h.DB.Preload("Paiements").First(&v, id).Error; err != nil {
		httpx.NotFound(w)
		return
	}
	data, err := pdf.FicheVente(&v, middleware.LangFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"vente-"+v.NumeroBC+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
