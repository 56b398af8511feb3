package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mergington/school-activities/internal/activities"
	"github.com/mergington/school-activities/internal/config"
	"github.com/mergington/school-activities/internal/identity"
	"github.com/mergington/school-activities/internal/middleware"
	"github.com/mergington/school-activities/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Logger != nil {
		app.Use(middleware.Audit(d.Logger))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var accountRepo identity.Repository
	if d.DB != nil {
		accountRepo = identity.NewPostgresRepository(d.DB)
	} else {
		accountRepo = identity.NewMemoryRepository()
	}

	var activityStore activities.Store
	if d.DB != nil {
		activityStore = activities.NewPostgresStore(d.DB)
	} else {
		activityStore = activities.NewMemoryStore()
		_ = activityStore.SeedIfEmpty(context.Background(), activities.DefaultSeed())
	}

	tokens := token.NewIssuer(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	identitySvc := identity.NewService(accountRepo, tokens)
	identityHandler := identity.NewHandler(identitySvc)
	activitySvc := activities.NewService(activityStore)
	activityHandler := activities.NewHandler(activitySvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, identityHandler, rateLimiter)
	api.Get("/activities", activityHandler.List)

	// Protected routes
	protected := api.Group("", middleware.BearerAuth(tokens))
	RegisterActivityRoutes(protected, activityHandler)

	return nil
}
