package app

import (
	"github.com/mokshhh20/Expense-Tracker-Application/internal/auth"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/cache"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/config"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/handlers"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/repo"
	"github.com/mokshhh20/Expense-Tracker-Application/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, cfg.Auth.SessionTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	protected := api.Group("", auth.RequireAuth(sessionStore))
	protected.POST("/logout", authHandler.Logout)

	txRepo := repo.NewPGTransactionRepo(db)
	txCache := cache.NewTransactionCache(rdb, cfg.Redis.DefaultTTL.Duration())
	txSvc := service.NewTransactionService(txRepo, txCache)
	txHandler := handlers.NewTransactionHandler(txSvc)
	registerTransactionRoutes(protected, txHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Expense Tracker API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"message": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTransactionRoutes(api *gin.RouterGroup, h *handlers.TransactionHandler) {
	api.POST("/add-income", h.AddIncome)
	api.GET("/get-incomes", h.GetIncomes)
	api.DELETE("/delete-income/:id", h.DeleteIncome)
	api.POST("/add-expense", h.AddExpense)
	api.GET("/get-expenses", h.GetExpenses)
	api.DELETE("/delete-expense/:id", h.DeleteExpense)
	api.DELETE("/clear-data", h.ClearData)
}
