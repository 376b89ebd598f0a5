package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stok/internal/handlers"
	"stok/internal/models"
	"stok/internal/repositories"
	"stok/internal/services"
	"stok/pkg/logger"
	"stok/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3333")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "stok.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")
	viper.AutomaticEnv() // Load environment variables

	logger.Setup(logger.Config{
		Env:   viper.GetString("APP_ENV"),
		Level: viper.GetString("LOG_LEVEL"),
	})

	appPort := viper.GetString("APP_PORT")

	// --- Initialize Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&models.Product{}, &models.StockLog{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// Stock update events are best effort: when no broker is configured, or
	// the broker is unreachable, the API runs without publishing.
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, continuing without stock events")
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}
	var publisher services.StockEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}

	// --- Initialize Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	stockLogRepo := repositories.NewGORMStockLogRepository(db)

	// --- Initialize Services ---
	productService := services.NewProductService(productRepo, stockLogRepo, publisher)
	stockLogService := services.NewStockLogService(stockLogRepo)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	stockLogHandler := handlers.NewStockLogHandler(stockLogService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(fiberlogger.New()) // Request logger

	// --- API Routes ---
	// Routes are registered at the root to match the original API surface
	// (GET /products, POST /add-product, GET /stock-logs, ...).
	productHandler.RegisterRoutes(app)
	stockLogHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start Stock Event Consumer in a Goroutine ---
	// A worker that reacts to stock updates (reorder alerts, cache refresh)
	// would hang off this consumer. For now incoming events are just logged.
	if mqClient != nil {
		go func() {
			messageHandler := func(msg amqp.Delivery) error {
				log.Info().Uint64("tag", msg.DeliveryTag).RawJSON("event", msg.Body).Msg("received stock event")
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeStockEvents(messageHandler); consumerErr != nil {
				log.Error().Err(consumerErr).Msg("failed to start stock event consumer")
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Info().Str("port", appPort).Msg("starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}

	log.Info().Msg("server gracefully stopped")
}

// openDatabase opens a GORM connection for the configured driver. SQLite is
// the default so the app runs with zero external services; PostgreSQL is for
// real deployments.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}
