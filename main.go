package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"apteekki/internal/apperror"
	"apteekki/internal/handlers"
	"apteekki/internal/middleware"
	"apteekki/internal/models"
	"apteekki/internal/repositories"
	"apteekki/internal/services"
	"apteekki/pkg/rabbitmq"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "apteekki.db")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_TTL_HOURS", 0) // 0 = tokens never expire
	viper.SetDefault("BCRYPT_COST", 0)   // 0 = bcrypt default cost
	viper.SetDefault("ADMIN_USERNAME", "Admin")
	viper.SetDefault("ADMIN_NAME", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order event publishing disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	creds := services.NewCredentialStore(viper.GetInt("BCRYPT_COST"))
	tokens := services.NewTokenService(jwtSecret, time.Duration(viper.GetInt("JWT_TTL_HOURS"))*time.Hour)
	userService := services.NewUserService(userRepo, creds, viper.GetString("ADMIN_USERNAME"))
	authService := services.NewAuthService(userRepo, creds, tokens)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, mqClient)

	if err := bootstrapAdmin(userService); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.TokenRequired(tokens)
	adminRequired := middleware.RoleRequired(userService, models.RoleAdmin)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, authRequired, adminRequired)
	orderHandler.RegisterRoutes(api, authRequired, adminRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for order events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received order event (tag: %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// RabbitMQ connection close is handled by defer in main
	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when DATABASE_URL is set and falls
// back to a local SQLite file otherwise.
func openDatabase() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), cfg)
}

// bootstrapAdmin creates the administrative account on first start. The
// admin role is assigned by the user service because the username matches
// the configured ADMIN_USERNAME.
func bootstrapAdmin(userService *services.UserService) error {
	username := viper.GetString("ADMIN_USERNAME")
	password := viper.GetString("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	name := viper.GetString("ADMIN_NAME")
	if name == "" {
		name = username
	}

	if _, err := userService.GetByUsername(username); err == nil {
		return nil // already bootstrapped
	}

	_, err := userService.Register(username, name, password)
	if err != nil {
		// A concurrent bootstrap losing the duplicate race is fine.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Kind == apperror.Validation {
			return nil
		}
		return err
	}
	log.Printf("Bootstrapped admin account %q", username)
	return nil
}
