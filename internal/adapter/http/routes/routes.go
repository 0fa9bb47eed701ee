package routes

import (
	"context"
	"log"
	"net/http"
	"strconv"

	_ "copiadora_xpto/docs" // generated by swag init
	"copiadora_xpto/internal/adapter/http/dto/response"
	"copiadora_xpto/internal/adapter/http/middleware"
	"copiadora_xpto/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathSteps      = "/steps"
	PathServices   = "/services"
	PathCategories = "/categories"
	PathDashboard  = "/dashboard"
	PathUsers      = "/users"
)

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to wire the application: %v", err)
	}

	router := NewRouter(app)
	if err := router.Run(":" + strconv.Itoa(cfg.HTTPPort)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRouter builds the gin engine with every route mounted under /v1.
func NewRouter(app *App) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Rotas autenticadas
	private := v1.Group("", middleware.Auth(app.Verifier))
	addStepRoutes(private, app)
	addServiceRoutes(private, app)
	addCategoryRoutes(private, app)
	addDashboardRoutes(private, app)
	addUserRoutes(private, app)

	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.MessageResponse{Message: "pong"})
	})
}

func addStepRoutes(rg *gin.RouterGroup, app *App) {
	steps := rg.Group(PathSteps)
	{
		steps.GET("/my-steps", app.Steps.ListMySteps)
		steps.GET("/:id", app.Steps.GetStep)
		steps.PATCH("/:id", app.Steps.UpdateStep)
		steps.PATCH("/:id/start", app.Steps.StartStep)
		steps.PATCH("/:id/conclude", app.Steps.ConcludeStep)
		steps.PATCH("/:id/cancel", app.Steps.CancelStep)
		steps.POST("/:id/images", app.Steps.UploadImage)
		steps.GET("/:id/images", app.Steps.ListImages)
		steps.DELETE("/:id/images/:imageId", app.Steps.DeleteImage)
	}
}

func addServiceRoutes(rg *gin.RouterGroup, app *App) {
	services := rg.Group(PathServices)
	{
		services.GET("", app.Services.ListServices)
		services.GET("/stats", app.Services.GetServiceStats)
		services.GET("/:id", app.Services.GetService)
		services.POST("", app.Services.CreateService)
		services.PATCH("/:id", app.Services.UpdateService)
		services.DELETE("/:id", app.Services.DeleteService)
	}
}

func addCategoryRoutes(rg *gin.RouterGroup, app *App) {
	categories := rg.Group(PathCategories)
	{
		categories.GET("", app.Category.ListCategories)
		categories.GET("/:id", app.Category.GetCategory)

		admin := categories.Group("", middleware.RequireAdmin())
		admin.POST("", app.Category.CreateCategory)
		admin.PATCH("/:id", app.Category.UpdateCategory)
		admin.DELETE("/:id", app.Category.DeleteCategory)
	}
}

func addDashboardRoutes(rg *gin.RouterGroup, app *App) {
	dashboard := rg.Group(PathDashboard, middleware.RequireAdmin())
	{
		dashboard.GET("/stats", app.Dashboard.GetStats)
		dashboard.GET("/stats/history", app.Dashboard.GetHistory)
		dashboard.GET("/stats/:year/:month", app.Dashboard.GetStatsForMonth)
	}
}

func addUserRoutes(rg *gin.RouterGroup, app *App) {
	users := rg.Group(PathUsers, middleware.RequireAdmin())
	{
		users.DELETE("/:id/assignments", app.Steps.UnassignUser)
	}
}
