package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
	"golang.org/x/time/rate"
)

// TokenStore revokes tokens on logout and answers the auth middleware.
type TokenStore interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type Options struct {
	Store          *repository.Store
	Locker         services.SlotLocker
	Tokens         TokenStore
	AllowedOrigins []string
	TrustedProxies []string
	// RequestsPerSecond <= 0 disables the global per-IP limiter.
	RequestsPerSecond float64
	Burst             int
	// StrictAuthLimit throttles login and register to a handful per minute.
	StrictAuthLimit bool
}

func SetupRouter(opts Options) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		utils.ErrorLogger.Printf("Invalid trusted proxies %v: %v", opts.TrustedProxies, err)
	}

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middlewares.NewRateLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst).RateLimit())

	store := opts.Store
	authCtrl := controllers.NewAuthController(services.NewAuthService(store, opts.Tokens))
	categoryCtrl := controllers.NewCategoryController(services.NewCatalogService(store))
	dishCtrl := controllers.NewDishController(services.NewCatalogService(store))
	tableCtrl := controllers.NewTableController(services.NewTableService(store))
	orderCtrl := controllers.NewOrderController(services.NewOrderService(store))
	reservationCtrl := controllers.NewReservationController(services.NewReservationService(store, opts.Locker))
	statsCtrl := controllers.NewStatsController(services.NewStatsService(store))

	var checker middlewares.TokenChecker
	if opts.Tokens != nil {
		checker = opts.Tokens
	}
	auth := middlewares.AuthMiddleware(checker)
	optionalAuth := middlewares.OptionalAuthMiddleware(checker)
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)

	r.GET("/ping", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "pong", nil)
	})

	authGroup := r.Group("/auth")
	{
		credentials := authGroup.Group("")
		if opts.StrictAuthLimit {
			credentials.Use(middlewares.NewStrictRateLimiter().RateLimit())
		}
		credentials.POST("/register", authCtrl.Register)
		credentials.POST("/login", authCtrl.Login)

		authGroup.GET("/profile", auth, authCtrl.Profile)
		authGroup.POST("/logout", auth, authCtrl.Logout)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoryCtrl.GetAllCategories)
		categories.GET("/:id", categoryCtrl.GetCategoryByID)
		categories.POST("", auth, adminOnly, categoryCtrl.CreateCategory)
		categories.PUT("/:id", auth, adminOnly, categoryCtrl.UpdateCategory)
		categories.DELETE("/:id", auth, adminOnly, categoryCtrl.DeleteCategory)
	}

	dishes := r.Group("/dishes")
	{
		dishes.GET("", dishCtrl.GetAllDishes)
		dishes.GET("/:id", dishCtrl.GetDishByID)
		dishes.POST("", auth, adminOnly, dishCtrl.CreateDish)
		dishes.PUT("/:id", auth, adminOnly, dishCtrl.UpdateDish)
		dishes.DELETE("/:id", auth, adminOnly, dishCtrl.DeleteDish)
	}

	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.GET("/:id", tableCtrl.GetTableByID)
		tables.POST("", auth, adminOnly, tableCtrl.CreateTable)
		tables.PUT("/:id", auth, adminOnly, tableCtrl.UpdateTable)
		tables.PUT("/:id/availability", auth, adminOnly, tableCtrl.UpdateTableAvailability)
		tables.DELETE("/:id", auth, adminOnly, tableCtrl.DeleteTable)
	}

	// order and reservation permissions depend on ownership and status, so
	// the services decide rather than a role gate
	orders := r.Group("/orders", auth)
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/:id", orderCtrl.GetOrderByID)
		orders.POST("", orderCtrl.CreateOrder)
		orders.PUT("/:id/status", orderCtrl.UpdateOrderStatus)
	}

	reservations := r.Group("/reservations")
	{
		reservations.POST("", optionalAuth, reservationCtrl.CreateReservation)
		reservations.GET("", auth, reservationCtrl.GetAllReservations)
		reservations.GET("/:id", auth, reservationCtrl.GetReservationByID)
		reservations.PUT("/:id/status", auth, reservationCtrl.UpdateReservationStatus)
		reservations.DELETE("/:id", auth, reservationCtrl.DeleteReservation)
	}

	r.GET("/stats", auth, adminOnly, statsCtrl.GetStats)

	r.NoRoute(func(c *gin.Context) {
		utils.RespondErrorDetails(c, http.StatusNotFound, "route not found", gin.H{"kind": services.KindNotFound})
	})

	return r
}
