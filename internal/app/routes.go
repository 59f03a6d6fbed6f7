package app

import (
	"net/http"

	"tailspin/internal/auth"
	"tailspin/internal/cache"
	"tailspin/internal/config"
	"tailspin/internal/handlers"
	"tailspin/internal/repo"
	"tailspin/internal/respond"
	"tailspin/internal/service"

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

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL.Duration(), cfg.Auth.RefreshTTL.Duration())
	requireAuth := auth.RequireAuth(tokens, userSvc)

	// Enveloped surface: auth, users, health.
	api := r.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(tokens, userSvc)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", requireAuth, authHandler.Logout)

	userHandler := handlers.NewUserHandler(userSvc)
	users := api.Group("/users", requireAuth)
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.DELETE("/account", userHandler.DeleteAccount)

	api.GET("/health/status", healthStatusHandler())

	// Legacy catalog surface: bare JSON, unauthenticated.
	catalogCache := cache.NewCatalogCache(rdb, cfg.Redis.DefaultTTL.Duration())
	publisherRepo := repo.NewPGPublisherRepo(db)
	categoryRepo := repo.NewPGCategoryRepo(db)
	gameRepo := repo.NewPGGameRepo(db)

	gameSvc := service.NewGameService(gameRepo, publisherRepo, categoryRepo, catalogCache)
	publisherSvc := service.NewPublisherService(publisherRepo, catalogCache)
	categorySvc := service.NewCategoryService(categoryRepo, catalogCache)

	catalog := r.Group("/api")
	registerGameRoutes(catalog, handlers.NewGameHandler(gameSvc))
	registerPublisherRoutes(catalog, handlers.NewPublisherHandler(publisherSvc))
	registerCategoryRoutes(catalog, handlers.NewCategoryHandler(categorySvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Tailspin Crowdfunding API",
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

// healthStatusHandler is the enveloped health check on the v1 surface.
func healthStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.Success(c, http.StatusOK, gin.H{"status": "healthy"}, "API is running")
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerGameRoutes(api *gin.RouterGroup, h *handlers.GameHandler) {
	api.GET("/games", h.List)
	api.POST("/games", h.Create)
	api.GET("/games/:id", h.GetByID)
	api.PUT("/games/:id", h.Update)
	api.DELETE("/games/:id", h.Delete)
}

func registerPublisherRoutes(api *gin.RouterGroup, h *handlers.PublisherHandler) {
	api.GET("/publishers", h.List)
	api.POST("/publishers", h.Create)
	api.GET("/publishers/:id", h.GetByID)
	api.PUT("/publishers/:id", h.Update)
	api.DELETE("/publishers/:id", h.Delete)
}

func registerCategoryRoutes(api *gin.RouterGroup, h *handlers.CategoryHandler) {
	api.GET("/categories", h.List)
	api.POST("/categories", h.Create)
	api.GET("/categories/:id", h.GetByID)
	api.PUT("/categories/:id", h.Update)
	api.DELETE("/categories/:id", h.Delete)
}
