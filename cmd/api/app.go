package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rmacedo/gestor-pme/internal/adapter/api/controller"
	"github.com/rmacedo/gestor-pme/internal/adapter/api/route"
	"github.com/rmacedo/gestor-pme/internal/adapter/repository"
	"github.com/rmacedo/gestor-pme/internal/infrastructure/database"
	"github.com/rmacedo/gestor-pme/internal/service"
	"github.com/rmacedo/gestor-pme/pkg/auth"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	config Config
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp cria uma nova instância do aplicativo com todas as dependências ligadas
func NewApp(cfg Config) (*App, error) {
	log := logger.NewLogger()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresPool(context.Background(), cfg.Database)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Repositórios
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Serviços
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo, log)
	financeService := service.NewFinanceService(transactionRepo, saleRepo, customerRepo, log)

	// Controllers
	authController := controller.NewAuthController(userRepo, jwtService, log)
	customerController := controller.NewCustomerController(customerRepo, log)
	productController := controller.NewProductController(productRepo, log)
	saleController := controller.NewSaleController(saleService, log)
	transactionController := controller.NewTransactionController(transactionRepo, financeService, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.RegisterAuthRoutes(api, authController, jwtService)
	route.RegisterCustomerRoutes(api, customerController, jwtService)
	route.RegisterProductRoutes(api, productController, jwtService)
	route.RegisterSaleRoutes(api, saleController, jwtService)
	route.RegisterTransactionRoutes(api, transactionController, jwtService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &App{
		config: cfg,
		router: router,
		db:     db,
		logger: log,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	a.logger.Info("servidor iniciado", "port", a.config.Port)
	return a.router.Run(":" + a.config.Port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
