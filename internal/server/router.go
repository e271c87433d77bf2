package server

import (
	"context"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"ventes-app/internal/auth"
	"ventes-app/internal/config"
	"ventes-app/internal/handlers"
	"ventes-app/internal/httpx"
	"ventes-app/internal/middleware"
	"ventes-app/internal/models"
	"ventes-app/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth double-checks that the session's user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(auth.RequireAdmin(h)))
	}

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /api/auth/signin", ah.Signin)
	mux.HandleFunc("POST /api/auth/logout", ah.Logout)
	mux.Handle("GET /api/auth/me", auth.Middleware(http.HandlerFunc(ah.Me)))
	mux.Handle("PUT /api/auth/{id}", protected(ah.UpdateProfile))

	// Vente endpoints
	vh := handlers.NewVenteHandler(db)
	mux.Handle("GET /api/ventes", protected(vh.List))
	mux.Handle("POST /api/ventes", protected(vh.Create))
	mux.Handle("GET /api/ventes/search", protected(vh.Search))
	mux.Handle("GET /api/ventes/numero", protected(vh.Numero))
	mux.Handle("GET /api/ventes/masquees", protected(vh.Masquees))
	mux.Handle("GET /api/ventes/{id}", protected(vh.Get))
	mux.Handle("PUT /api/ventes/{id}", protected(vh.Update))
	mux.Handle("DELETE /api/ventes/{id}", adminOnly(vh.Delete))
	mux.Handle("POST /api/ventes/{id}/masquer", protected(vh.Masquer))
	mux.Handle("DELETE /api/ventes/{id}/masquer", protected(vh.Demasquer))
	mux.Handle("GET /api/ventes/{id}/pdf", protected(vh.PDF))

	// Stats
	sh := handlers.NewStatsHandler(db, services.NewStatsService(cfg.Vendeurs))
	mux.Handle("GET /api/stats", protected(sh.Bilan))

	// Planning
	ph := handlers.NewPlanningHandler(db)
	mux.Handle("GET /api/planning", protected(ph.Events))
	mux.Handle("PUT /api/planning/{id}", protected(ph.Reschedule))

	// Root placeholder
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Ventes API - see /api")); werr != nil {
			_ = werr
		}
	})

	return middleware.Prefs(withRecover(middleware.Logging(logger, mux)))
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
