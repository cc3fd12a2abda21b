// Package app assembles the Fiber application: the middleware pipeline, the
// route surface, static uploads, swagger and metrics. Ordering in New is the
// contract; reordering middlewares changes which error wins for a request
// that violates several rules at once.
package app

import (
	"database/sql"
	"io"
	"os"
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio-api/docs"
	"portfolio-api/internal/apperr"
	"portfolio-api/internal/config"
	"portfolio-api/internal/http/handler"
	"portfolio-api/internal/http/middleware"
	"portfolio-api/internal/ratelimit"
	"portfolio-api/internal/storage"
	"portfolio-api/internal/token"
	"portfolio-api/internal/upload"
)

// Options carries everything New needs to assemble the application.
type Options struct {
	Config   *config.AppConfig
	DB       *sql.DB
	Services handler.Services
	Tokens   *token.Manager
	Uploads  *upload.Processor
	Limiter  ratelimit.Store

	// Registry defaults to a fresh registry; LogWriter defaults to stdout.
	// Both exist for tests.
	Registry  *prometheus.Registry
	LogWriter io.Writer

	// Tracing enables the otelfiber span middleware.
	Tracing bool
}

// New builds the Fiber app with the full request pipeline.
func New(opts Options) (*fiber.App, error) {
	cfg := opts.Config

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	logWriter := opts.LogWriter
	if logWriter == nil {
		logWriter = os.Stdout
	}

	app := fiber.New(fiber.Config{
		AppName:      "portfolio-api",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handler.ErrorHandler(cfg.Env),
	})

	origins := allowedOrigins(cfg)

	app.Use(fiberrecover.New())
	app.Use(helmet.New())
	app.Use(corsGuard(origins))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Auth-Token, X-Request-ID",
	}))
	app.Use(compress.New())
	app.Use(middleware.SanitizeBody())
	app.Use(middleware.CollapseQueryParams("sort", "order", "featured", "limit", "page"))
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(logWriter))

	if opts.Tracing {
		app.Use(otelfiber.Middleware())
	}

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}
	app.Use(prom.Handler())

	app.Use("/api", middleware.RateLimit(opts.Limiter, "api",
		cfg.RateLimit.APILimit, cfg.RateLimit.APIWindow))

	loginLimiter := middleware.RateLimit(opts.Limiter, "login",
		cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)

	handler.RegisterRoutes(app, opts.DB, opts.Services, opts.Tokens, opts.Uploads, loginLimiter)

	// Local driver serves uploads straight off disk; object storage serves
	// its own URLs.
	if cfg.Storage.Driver == "local" {
		app.Static(storage.PublicPathPrefix, cfg.Upload.Dir)
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	// Anything still unmatched is the pinned route-not-found shape.
	app.Use(func(c *fiber.Ctx) error {
		return apperr.RouteNotFound()
	})

	return app, nil
}

// allowedOrigins is the CORS allow list: the configured client plus the vite
// dev server in development.
func allowedOrigins(cfg *config.AppConfig) []string {
	origins := []string{cfg.ClientURL}
	if cfg.Env == config.EnvDevelopment {
		origins = append(origins, "http://localhost:5173", "http://127.0.0.1:5173")
	}
	return origins
}

// corsGuard rejects browser requests from unlisted origins with an explicit
// 403 instead of relying on the browser to drop the response.
func corsGuard(origins []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if _, ok := allowed[origin]; !ok {
			return apperr.New(fiber.StatusForbidden, "Not allowed by CORS")
		}
		return c.Next()
	}
}
