package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/mentorlink/mentorbot/internal/cache"
	"go.uber.org/zap"
)

// StatusServer небольшой HTTP-сервер для проб деплоя:
// /healthz для liveness, /status с аптаймом и счётчиками кэша
type StatusServer struct {
	server     *http.Server
	rulesCache *cache.RulesCache
	logger     *zap.Logger
	startedAt  time.Time
}

type statusResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	CacheHits   int64  `json:"cache_hits"`
	CacheMisses int64  `json:"cache_misses"`
}

// NewStatusServer создаёт status-сервер на указанном адресе
func NewStatusServer(addr string, rulesCache *cache.RulesCache, logger *zap.Logger) *StatusServer {
	s := &StatusServer{
		rulesCache: rulesCache,
		logger:     logger,
		startedAt:  time.Now(),
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		hits, misses := s.rulesCache.Stats()
		render.JSON(w, r, statusResponse{
			Status:      "ok",
			Uptime:      time.Since(s.startedAt).Round(time.Second).String(),
			CacheHits:   hits,
			CacheMisses: misses,
		})
	})

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	return s
}

// Start запускает сервер в отдельной горутине
func (s *StatusServer) Start() {
	go func() {
		s.logger.Info("Starting status server", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Status server stopped unexpectedly", zap.Error(err))
		}
	}()
}

// Shutdown останавливает сервер
func (s *StatusServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
