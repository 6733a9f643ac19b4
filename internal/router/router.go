package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cafemanagement/internal/cache"
	"cafemanagement/internal/config"
	"cafemanagement/internal/handler"
	"cafemanagement/internal/infra"
	"cafemanagement/internal/middleware"
	"cafemanagement/internal/model"
	"cafemanagement/internal/repository"
	"cafemanagement/internal/service"
	"cafemanagement/internal/worker"
)

// Deps are the shared infrastructure pieces built at the composition root.
// Dispatcher is nil when redis is not configured; services fall back to
// synchronous delivery.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Caches     *cache.Collections
	Files      *infra.FileStore
	Mailer     *infra.Mailer
	Dispatcher *worker.Dispatcher
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(deps.DB)
	productRepo := repository.NewProductRepository(deps.DB)
	orderRepo := repository.NewOrderRepository(deps.DB)
	reportRepo := repository.NewReportRepository(deps.DB)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg, deps.Caches, deps.Files, deps.Mailer, deps.Dispatcher)
	productSvc := service.NewProductService(productRepo, deps.Caches)
	orderSvc := service.NewOrderService(orderRepo, productRepo, deps.Caches)
	reportSvc := service.NewReportService(reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	streamsH := handler.NewStreamsHandler(deps.Caches)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(deps.DB, deps.Redis))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", authH.Register)
		auth.POST("/password-reset", authH.RequestPasswordReset)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		staff := middleware.RequireRole(model.RoleEmployee, model.RoleManager, model.RoleAdmin)
		managers := middleware.RequireRole(model.RoleManager, model.RoleAdmin)
		admins := middleware.RequireRole(model.RoleAdmin)

		// Products — everyone reads the menu, admins write it
		v1.GET("/products", staff, productsH.List)
		v1.GET("/products/:id", staff, productsH.Get)
		prods := v1.Group("/products", admins)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
		}

		// Orders — the kitchen and counter flows
		orders := v1.Group("/orders", staff)
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/mine", ordersH.ListMine)
			orders.GET("/:id", ordersH.Get)
			orders.POST("/:id/items", ordersH.AddItem)
			orders.PATCH("/:id/status", ordersH.ChangeStatus)
		}

		// Users + approval workflow — admin only
		users := v1.Group("/users", admins)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
			users.PATCH("/:id/approve", usersH.Approve)
			users.PATCH("/:id/reject", usersH.Reject)
		}

		// Own-profile picture upload — any authenticated role
		v1.POST("/users/:id/picture", staff, usersH.UploadPicture)

		// Meeting invitations — managers and admins
		v1.POST("/meetings/invite", managers, usersH.MeetingInvite)

		// Live collection streams (SSE) — kitchen displays and dashboards
		streams := v1.Group("/streams")
		{
			streams.GET("/orders", staff, streamsH.Orders)
			streams.GET("/products", staff, streamsH.Products)
			streams.GET("/users", admins, streamsH.Users)
		}

		// Reports — managers and admins
		reports := v1.Group("/reports", managers)
		{
			reports.POST("/sales", reportsH.TotalSales)
			reports.POST("/sales/generate", reportsH.Generate)
			reports.GET("/top-products", reportsH.TopProducts)
			reports.GET("", reportsH.List)
		}
	}

	return r
}
