package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mudarris/internal/api/handlers"
	"mudarris/internal/config"
	db "mudarris/internal/core/database"
	"mudarris/internal/core/engine"
	"mudarris/internal/core/extractor"
	"mudarris/internal/core/storage"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, dbclient db.DbClient, files storage.FileStore, ex *extractor.Extractor, eng *engine.Engine) *Server {
	docHandler := handlers.NewDocumentHandler(dbclient, files, ex, cfg)
	chatHandler := handlers.NewChatHandler(dbclient, eng)
	sysHandler := handlers.NewSystemHandler(dbclient, eng)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// Serve the chat UI from the web directory
	fileServer := http.FileServer(http.Dir("./web"))
	r.Handle("/*", fileServer)

	r.Get("/health", sysHandler.Health)

	r.Route("/api", func(api chi.Router) {
		api.Post("/upload", docHandler.Upload)
		api.Get("/documents", docHandler.List)
		api.Delete("/documents/{id}", docHandler.Delete)
		api.Post("/search", docHandler.Search)
		api.Post("/chat", chatHandler.Chat)
		api.Get("/stats", sysHandler.Stats)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
