package main

import (
	"os"

	_ "horti/api/swagger" // swagger docs
	"horti/internal/database"
	"horti/internal/handler"
	"horti/internal/repository"
	"horti/internal/service"
	"horti/internal/websocket"
	"horti/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Produce Purchasing API
// @version         1.0
// @description     Coordinates produce purchasing across retail stores: orders, consolidation, supplier assignment, logistics plan and redistribution.
// @host            localhost:8080
// @BasePath        /
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		// fine in containers where env comes from the runtime
	}

	log := logger.New(logger.Config{
		Env:   getenv("ENV", "development"),
		Level: getenv("LOG_LEVEL", "info"),
	})

	dsn := "postgres://" + getenv("DB_USER", "postgres") +
		":" + getenv("DB_PASSWORD", "postgres") +
		"@" + getenv("DB_HOST", "localhost") +
		":" + getenv("DB_PORT", "5432") +
		"/" + getenv("DB_NAME", "horti") +
		"?sslmode=" + getenv("DB_SSLMODE", "disable")

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.SeedReferenceData(db); err != nil {
		log.Fatal().Err(err).Msg("reference data seeding failed")
	}
	log.Info().Msg("connected to PostgreSQL")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	productRepo := repository.NewProductRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	logisticsRepo := repository.NewLogisticsRepository(db)

	catalogService := service.NewCatalogService(productRepo, storeRepo)
	orderService := service.NewOrderService(orderRepo, storeRepo, productRepo, txManager)
	assignmentService := service.NewAssignmentService(assignmentRepo, storeRepo, productRepo, supplierRepo, txManager)
	consolidationService := service.NewConsolidationService(orderRepo, storeRepo, assignmentRepo)
	logisticsService := service.NewLogisticsService(logisticsRepo, storeRepo, supplierRepo, consolidationService, txManager, wsHub)

	catalogHandler := handler.NewCatalogHandler(catalogService, seedFunc(db))
	purchasingHandler := handler.NewPurchasingHandler(orderService, assignmentService, consolidationService, logisticsService)
	logisticsHandler := handler.NewLogisticsHandler(logisticsService, consolidationService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	catalogHandler.RegisterRoutes(router.Group(""))
	purchasingHandler.RegisterRoutes(router.Group(""))
	logisticsHandler.RegisterRoutes(router.Group(""))

	port := getenv("PORT", "8080")
	log.Info().Str("port", port).Msg("server listening")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seedFunc(db *gorm.DB) func() error {
	return func() error {
		return database.SeedReferenceData(db)
	}
}
