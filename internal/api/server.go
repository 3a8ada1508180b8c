package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/nqvinh-dev/minishop/config"
	"github.com/nqvinh-dev/minishop/infra/queue"
	"github.com/nqvinh-dev/minishop/internal/api/rest/handlers"
	"github.com/nqvinh-dev/minishop/internal/domain"
	"github.com/nqvinh-dev/minishop/internal/helper"
	"github.com/nqvinh-dev/minishop/internal/repository"
	"github.com/nqvinh-dev/minishop/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config, log *zap.SugaredLogger) {
	app := fiber.New()

	allowOrigins := cfg.BaseURL
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalw("database connection error", "error", err)
	}
	log.Info("database connected")

	if err := db.AutoMigrate(
		&domain.Account{},
		&domain.Token{},
		&domain.Product{},
	); err != nil {
		log.Fatalw("migration error", "error", err)
	}
	log.Info("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	// ---------- Repositories ----------
	accountRepo := repository.NewAccountRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	productRepo := repository.NewProductRepository(db)

	tokenAuth := helper.SetupTokenAuth(helper.TokenConfig{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessExpiry:  cfg.AccessExpiry,
		RefreshExpiry: cfg.RefreshExpiry,
	}, accountRepo)

	// ---------- Services ----------
	accountSvc := services.NewAccountService(accountRepo, tokenRepo, tokenAuth, kafkaProducer, log)
	productSvc := services.NewProductService(productRepo)

	// ---------- Handlers ----------
	handlers.NewAccountHandler(accountSvc, tokenAuth).SetupRoutes(app)
	handlers.NewProductHandler(productSvc).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Healthy!"})
	})

	addr := cfg.ServerPort
	log.Infow("listening", "addr", addr)
	log.Fatal(app.Listen(addr))
}
