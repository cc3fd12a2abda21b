package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/database/migration"
	"portfolio-api/internal/http/app"
	"portfolio-api/internal/http/handler"
	"portfolio-api/internal/otel"
	"portfolio-api/internal/ratelimit"
	"portfolio-api/internal/repository/postgres"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
	"portfolio-api/internal/token"
	"portfolio-api/internal/upload"
)

// @title Portfolio API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Tracing degrades to a noop provider when no collector is reachable.
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Connect retries with backoff so a database that is still coming up
	// delays readiness instead of crashing the process.
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var store storage.Storage
	if cfg.Storage.Driver == "s3" {
		store, err = storage.NewMinIO(cfg.Storage.MinIO)
	} else {
		store, err = storage.NewLocal(cfg.Upload.Dir)
	}
	if err != nil {
		log.Fatalf("failed to initialize upload storage: %v", err)
	}

	// Redis backs the rate limiter when configured; otherwise counting is
	// per-process in memory.
	var limiter ratelimit.Store
	if cfg.Redis.Addr != "" {
		limiter = ratelimit.NewRedis(cfg.Redis.Addr, cfg.Redis.Password)
	} else {
		limiter = ratelimit.NewMemory()
	}

	tokens := token.NewManager(cfg.Auth.Secret, cfg.Auth.ExpiresIn)
	uploads := upload.NewProcessor(store, cfg.Upload.MaxSize, nil)

	svc := handler.Services{
		Auth:         service.NewAuthService(postgres.NewUserPostgres(db), tokens),
		Projects:     service.NewProjectService(postgres.NewProjectPostgres(db)),
		Skills:       service.NewSkillService(postgres.NewSkillPostgres(db)),
		Testimonials: service.NewTestimonialService(postgres.NewTestimonialPostgres(db)),
		Profile:      service.NewProfileService(postgres.NewProfilePostgres(db)),
		About:        service.NewAboutService(postgres.NewAboutPostgres(db)),
	}

	a, err := app.New(app.Options{
		Config:   cfg,
		DB:       db,
		Services: svc,
		Tokens:   tokens,
		Uploads:  uploads,
		Limiter:  limiter,
		Tracing:  true,
	})
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	if err := a.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
