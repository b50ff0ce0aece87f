package app

import (
	"context"
	"io"
	"log"
	"time"

	"mudarris/internal/config"
	"mudarris/internal/core"
	db "mudarris/internal/core/database"
	"mudarris/internal/core/engine"
	"mudarris/internal/core/extractor"
	"mudarris/internal/core/llm"
	"mudarris/internal/core/storage"
)

type App struct {
	DBClient db.DbClient
	Files    storage.FileStore
	Engine   *engine.Engine
	Server   *Server

	closers []io.Closer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	log.Printf("Upload store ready at %s.", files.Dir())

	app := &App{DBClient: dbClient, Files: files}

	// Missing credentials mean a skipped provider, never a startup failure.
	params := core.GenParams{MaxTokens: cfg.MaxTokens, Temperature: cfg.Temperature}
	var providers []core.Provider
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, llm.NewAnthropicLLM(cfg.AnthropicAPIKey, cfg.AnthropicModel, params))
	} else {
		log.Println("WARN: ANTHROPIC_API_KEY not set, skipping anthropic provider")
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, llm.NewOpenAILLM(cfg.OpenAIAPIKey, cfg.OpenAIModel, params))
	} else {
		log.Println("WARN: OPENAI_API_KEY not set, skipping openai provider")
	}
	if cfg.GeminiAPIKey != "" {
		gem, err := llm.NewGeminiLLM(appCtx, cfg.GeminiAPIKey, cfg.GeminiModel, params)
		if err != nil {
			log.Printf("WARN: gemini init failed, skipping: %v", err)
		} else {
			providers = append(providers, gem)
			app.closers = append(app.closers, gem)
		}
	}
	if len(providers) == 0 {
		log.Println("WARN: no providers configured, chat runs on template fallbacks only")
	}

	app.Engine = engine.New(providers, cfg.ProviderTimeout)
	app.Server = NewServer(cfg, dbClient, files, extractor.New(), app.Engine)
	return app, nil
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
