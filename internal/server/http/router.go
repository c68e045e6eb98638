package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router 挂上 /api/* 路由；staticDir 非空时顺便托管前端页面
func (h *Handler) Router(staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.handlePing)
		r.Post("/new_game", h.handleNewGame)
		r.Post("/play", h.handlePlay)
		r.Post("/state", h.handleState)
		r.Post("/ai_move", h.handleAiMove)
		r.Post("/successors", h.handleSuccessors)
		r.Get("/ws/analyze", h.handleAnalyze)
	})

	if staticDir != "" {
		RegisterStaticRoutes(r, staticDir)
	}
	return r
}
