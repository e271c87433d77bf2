package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ventes-app/internal/auth"
	"ventes-app/internal/httpx"
	"ventes-app/internal/models"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

// profileResponse is the subset of User returned to clients.
type profileResponse struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Nom    string `json:"nom"`
	Langue string `json:"langue"`
	Role   string `json:"role"`
}

func profileOf(u *models.User) profileResponse {
	return profileResponse{ID: u.ID, Email: u.Email, Nom: u.Nom, Langue: u.Langue, Role: u.Role}
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"email": "required", "password": "required"})
		return
	}
	var user models.User
	if err := h.DB.Where("lower(email) = ?", email).First(&user).Error; err != nil {
		// generic message: never reveal whether the account exists
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	now := time.Now().UTC()
	if err := h.DB.Model(&user).Update("last_login_at", now).Error; err != nil {
		// login still succeeds; the timestamp is best effort
		_ = err
	}
	auth.CreateSession(w, user.ID, user.Role)
	httpx.JSON(w, http.StatusOK, profileOf(&user))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var user models.User
	if err := h.DB.First(&user, s.UserID).Error; err != nil {
		auth.ClearSession(w)
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, profileOf(&user))
}

// UpdateProfile handles PUT /api/auth/{id}. The password field is re-hashed
// before the generic field update; non-admins may only update themselves and
// cannot change roles.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	targetID := uint(id64)
	if s.Role != models.RoleAdmin && targetID != s.UserID {
		httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
		return
	}

	var req struct {
		Email    *string `json:"email"`
		Nom      *string `json:"nom"`
		Langue   *string `json:"langue"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	var user models.User
	if err := h.DB.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_user", nil)
		return
	}

	updates := map[string]any{}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"email": "required"})
			return
		}
		updates["email"] = email
	}
	if req.Nom != nil {
		updates["nom"] = strings.ToUpper(strings.TrimSpace(*req.Nom))
	}
	if req.Langue != nil {
		if *req.Langue != "fr" && *req.Langue != "en" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"langue": "unsupported"})
			return
		}
		updates["langue"] = *req.Langue
	}
	if req.Role != nil {
		if s.Role != models.RoleAdmin {
			httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
			return
		}
		if *req.Role != models.RoleAdmin && *req.Role != models.RoleNormal {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"role": "unsupported"})
			return
		}
		updates["role"] = *req.Role
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"password": "too_short"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_hash_password", nil)
			return
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		httpx.JSON(w, http.StatusOK, profileOf(&user))
		return
	}
	if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_user", nil)
		return
	}
	audit(h.DB, s.UserID, "User", user.ID, "update")
	httpx.JSON(w, http.StatusOK, profileOf(&user))
}
