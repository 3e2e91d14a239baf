package dandan

import (
	"danmu-hub/internal/config"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func RegisterRoute(route *chi.Mux, h *Handler) {
	timeout := config.GetConfig().Server.Timeout
	if timeout <= 0 {
		timeout = 60
	}
	dandanRoute := route.Group(func(d chi.Router) {
		dandanOptions := cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"*"},
		})
		d.Use(dandanOptions.Handler)
		d.Use(middleware.Timeout(time.Duration(1e9 * timeout)))
		d.Use(CacheMiddleware)
	})
	// 兼容在路径里带token的客户端
	dandanRoute.Route("/api/v1/{token}/api/v2", func(r chi.Router) {
		r.Get("/search/anime", h.SearchHandler)
		r.Get("/bangumi/{animeId}", h.BangumiHandler)
		r.Get("/comment/{id}", h.CommentHandler)
	})
	dandanRoute.Route("/api/v2", func(r chi.Router) {
		r.Get("/search/anime", h.SearchHandler)
		r.Get("/bangumi/{animeId}", h.BangumiHandler)
		r.Get("/comment/{id}", h.CommentHandler)
	})
}
