package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"subhub_backend/internal/controller"
	"subhub_backend/internal/middleware"
	"subhub_backend/internal/model"
	"subhub_backend/internal/repository"
	"subhub_backend/pkg/cache"
	"subhub_backend/pkg/config"
	"subhub_backend/pkg/cron"
	"subhub_backend/pkg/database"
	"subhub_backend/pkg/plan"
	"subhub_backend/pkg/seed"
	"subhub_backend/pkg/subscription"
	jwtutil "subhub_backend/pkg/utils/jwt"
)

func setupRoutes(app *fiber.App, subs *controller.SubscriptionController, plans *controller.PlanController) {
	api := app.Group("/api")

	subscriptions := api.Group("/subscriptions")

	// Plan catalog: public cached list, admin-gated mutations.
	subscriptions.Get("/plans", plans.ListPlans)
	subscriptions.Post("/plans", middleware.AuthMiddleware(), middleware.AdminOnly(), plans.CreatePlan)
	subscriptions.Put("/plans/:id", middleware.AuthMiddleware(), middleware.AdminOnly(), plans.UpdatePlan)
	subscriptions.Delete("/plans/:id", middleware.AuthMiddleware(), middleware.AdminOnly(), plans.DeletePlan)

	subProtected := subscriptions.Use(middleware.AuthMiddleware())
	subProtected.Post("/", subs.Subscribe)
	subProtected.Get("/", middleware.AdminOnly(), subs.ListSubscriptions)
	subProtected.Get("/my", subs.GetMySubscription)
	subProtected.Post("/sweep", middleware.AdminOnly(), subs.SweepExpired)
	subProtected.Get("/:id", subs.GetSubscription)
	subProtected.Post("/:id/renew", subs.RenewSubscription)
	subProtected.Delete("/:id", subs.DeleteSubscription)
}

func main() {
	cfg := config.Load()
	jwtutil.Init(cfg.JWT.Secret)

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db, &model.Plan{}, &model.Subscription{}); err != nil {
		log.Printf("Migration warning: %v", err)
	}
	seed.SeedSubscriptionPlans(db)

	repos := repository.NewRepositories(db)
	planCache := cache.New(cfg.Cache.Host, cfg.Cache.Port)
	catalog := plan.NewCatalog(repos.Plan, planCache)

	clock := subscription.SystemClock()
	service := subscription.NewService(repos.Subscription, catalog, clock)
	sweeper := cron.NewSweeper(repos.Subscription, clock)
	cron.InitSubscriptionExpiryCron(sweeper, cfg.Cron.ExpirySchedule)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			// Internal error text stays in the log, never in the body.
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			if code == fiber.StatusInternalServerError {
				return c.Status(code).JSON(fiber.Map{
					"message": "An internal error occurred",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	setupRoutes(
		app,
		controller.NewSubscriptionController(service, sweeper),
		controller.NewPlanController(catalog),
	)

	port := cfg.Server.Port
	log.Printf("Server is running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
