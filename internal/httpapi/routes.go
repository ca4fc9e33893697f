package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ymori/draft-duel-backend/internal/hub"
	"github.com/ymori/draft-duel-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", CreateRoom(h, log))
		r.Post("/{code}/join", JoinRoom(h))
		r.Get("/{code}/state/{team}", GetState(h))
		r.Post("/{code}/draw", Draw(h))
		r.Post("/{code}/assign", Assign(h))
		r.Post("/{code}/skip", Skip(h))
		r.Post("/{code}/swap", Swap(h))
		r.Get("/{code}/result", Result(h))
	})

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, log))
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(wrapped, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.Status()),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}
