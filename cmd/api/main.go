package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go-pos-inventory/internal/cache"
	"go-pos-inventory/internal/handler"
	"go-pos-inventory/internal/middleware"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/service"
	"go-pos-inventory/internal/ws"
	"go-pos-inventory/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, relying on system env")
	}

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.ItemType{},
		&model.Product{}, &model.Sale{}, &model.SaleItem{}, &model.InventoryLog{},
	); err != nil {
		log.WithError(err).Fatal("auto migration failed")
	}

	seedAdmin(db)

	// Report cache: Redis when configured, noop otherwise
	var reportCache cache.Cache = cache.Noop{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		rc := cache.NewRedisCache(addr, os.Getenv("REDIS_PASSWORD"), redisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.WithError(err).Warn("redis unreachable, report cache disabled")
		} else {
			reportCache = rc
		}
		cancel()
	}

	// WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// Dependency injection (wiring layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	itemTypeRepo := repository.NewItemTypeRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	logRepo := repository.NewInventoryLogRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(categoryRepo, itemTypeRepo, productRepo)
	productService := service.NewProductService(productRepo, logRepo, db, wsHub)
	saleService := service.NewSaleService(saleRepo, userRepo, db, wsHub)
	reportService := service.NewReportService(
		productRepo, saleRepo, reportCache,
		time.Duration(envInt("REPORT_CACHE_TTL_SECONDS", 30))*time.Second,
		envInt("LOW_STOCK_THRESHOLD", 10),
		log,
	)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService)
	userHandler := handler.NewUserHandler(userRepo)
	reportHandler := handler.NewReportHandler(reportService)

	app := fiber.New(fiber.Config{
		AppName: "POS Inventory API v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))
	protected.Get("/auth/me", authHandler.Me)

	manage := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Get("/products/:id/inventory-logs", productHandler.GetInventoryLogs)
	protected.Post("/products", manage, productHandler.CreateProduct)
	protected.Put("/products/:id", manage, productHandler.UpdateProduct)
	protected.Delete("/products/:id", manage, productHandler.DeleteProduct)

	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Get("/categories/:id", catalogHandler.GetCategory)
	protected.Post("/categories", manage, catalogHandler.CreateCategory)
	protected.Put("/categories/:id", manage, catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", manage, catalogHandler.DeleteCategory)

	protected.Get("/item-types", catalogHandler.GetItemTypes)
	protected.Get("/item-types/:id", catalogHandler.GetItemType)
	protected.Post("/item-types", manage, catalogHandler.CreateItemType)
	protected.Put("/item-types/:id", manage, catalogHandler.UpdateItemType)
	protected.Delete("/item-types/:id", manage, catalogHandler.DeleteItemType)

	// Any authenticated operator may record a sale; sales are immutable so
	// only create and read exist.
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)

	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)

	protected.Get("/reports/low-stock", reportHandler.GetLowStock)
	protected.Get("/reports/sales-summary", reportHandler.GetSalesSummary)
	protected.Get("/dashboard/stats", reportHandler.GetDashboard)

	// WebSocket route for live stock updates
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "5000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.WithError(err).Panic("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exited")
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// seedAdmin creates the default admin account if it doesn't exist yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email:     email,
		Username:  "admin",
		FirstName: "Admin",
		LastName:  "User",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		logrus.WithError(err).Warn("failed to hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		logrus.WithError(err).Warn("failed to create admin user")
		return
	}
	logrus.WithField("email", email).Info("admin user created")
}
