package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/configs"
	"github.com/nabilnabti/tapeat-sub001/controllers"
	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/middlewares"
	"github.com/nabilnabti/tapeat-sub001/pkg/cache"
	"github.com/nabilnabti/tapeat-sub001/pkg/events"
	"github.com/nabilnabti/tapeat-sub001/pkg/mailer"
	"github.com/nabilnabti/tapeat-sub001/repository"
	"github.com/nabilnabti/tapeat-sub001/services"
	"github.com/nabilnabti/tapeat-sub001/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invRepo := repository.NewInventoryRepository(db)
	verifRepo := repository.NewVerificationRepository(db)

	// Infra
	var menuCache *cache.MenuCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		menuCache = cache.NewMenuCache(client, 5*time.Minute)
	}
	producer := events.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	hub := ws.NewOrderHub()
	go hub.Run()

	// Services
	invSvc := services.NewInventoryService(db, invRepo)
	orderSvc := services.NewOrderService(db, orderRepo, restRepo, invSvc, hub, producer)
	menuSvc := services.NewMenuService(db, menuRepo, restRepo, menuCache)
	restSvc := services.NewRestaurantService(db, restRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	verifSvc := services.NewVerificationService(verifRepo, userRepo, smtp)
	driverSvc := services.NewDriverService(orderSvc, orderRepo)
	paySvc := services.NewPaymentService(db, orderRepo, cfg.PaymentAPIURL, cfg.PaymentAPIKey)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	verifCtrl := controllers.NewVerificationController(verifSvc)
	restCtrl := controllers.NewRestaurantController(restSvc, menuSvc, cfg)
	orderCtrl := controllers.NewOrderController(orderSvc)
	invCtrl := controllers.NewInventoryController(invSvc, restRepo)
	menuCtrl := controllers.NewMenuController(menuSvc, restRepo, cfg.UploadDir)
	driverCtrl := controllers.NewDriverController(driverSvc)
	payCtrl := controllers.NewPaymentController(paySvc)
	adminCtrl := controllers.NewAdminController(db, authSvc)

	wsHandler := ws.NewHandler(hub, services.NewFeedAccess(orderRepo, restRepo))

	auth := func(roles ...string) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/verification/request", verifCtrl.RequestCode)
		a.POST("/verification/verify", verifCtrl.VerifyCode)
	}
	a.GET("/me", auth(), authCtrl.Me)

	// Public browse
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/menu", restCtrl.PublicMenu)

	// Orders (customer)
	u := r.Group("/", auth())
	{
		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.POST("/payments/intent", payCtrl.CreateIntent)
	}

	// Processor callback (no auth; processor signs its own calls)
	r.POST("/payments/webhook", payCtrl.Webhook)

	// Partner Restaurant (owner/admin)
	partnerRest := r.Group("/partner/restaurant", auth(entity.RoleOwner))
	{
		partnerRest.GET("/me", restCtrl.Mine)
		partnerRest.PATCH("/me", restCtrl.UpdateMine)
		partnerRest.GET("/dashboard", restCtrl.Dashboard) // ?restaurantId=
		partnerRest.GET("/qrcode", restCtrl.TableQRCode)  // ?restaurantId=&table=

		partnerRest.GET("/order", orderCtrl.ListForRestaurant)
		partnerRest.GET("/order/:id", orderCtrl.DetailForRestaurant)
		partnerRest.PATCH("/order/:id/status", orderCtrl.UpdateStatus)
		partnerRest.GET("/history", orderCtrl.HistoryForRestaurant)

		partnerRest.GET("/category", menuCtrl.ListCategories)
		partnerRest.POST("/category", menuCtrl.CreateCategory)
		partnerRest.PUT("/category/order", menuCtrl.ReorderCategories)
		partnerRest.PATCH("/category/:id", menuCtrl.RenameCategory)
		partnerRest.DELETE("/category/:id", menuCtrl.DeleteCategory)

		partnerRest.GET("/menu", menuCtrl.ListItems)
		partnerRest.POST("/menu", menuCtrl.CreateItem)
		partnerRest.PUT("/menu/order", menuCtrl.ReorderItems)
		partnerRest.POST("/menu/picture", menuCtrl.UploadPicture)
		partnerRest.PATCH("/menu/:id", menuCtrl.UpdateItem)
		partnerRest.DELETE("/menu/:id", menuCtrl.DeleteItem)

		partnerRest.GET("/inventory", invCtrl.List)
		partnerRest.GET("/inventory/low-stock", invCtrl.LowStock)
		partnerRest.POST("/inventory", invCtrl.Create)
		partnerRest.PUT("/inventory/:id", invCtrl.Update)
		partnerRest.PATCH("/inventory/:id/quantity", invCtrl.SetQuantity)
		partnerRest.DELETE("/inventory/:id", invCtrl.Delete)
	}

	// Partner Driver (driver/admin)
	partnerDriver := r.Group("/partner/driver", auth(entity.RoleDriver))
	{
		partnerDriver.GET("/jobs", driverCtrl.Jobs)
		partnerDriver.POST("/jobs/:id/accept", driverCtrl.Accept)
		partnerDriver.PATCH("/jobs/:id/finish", driverCtrl.Finish)
		partnerDriver.GET("/active", driverCtrl.Active)
		partnerDriver.GET("/histories", driverCtrl.Histories)
	}

	// Admin
	admin := r.Group("/admin", auth(entity.RoleAdmin))
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)
		admin.GET("/restaurant", adminCtrl.Restaurants)
		admin.POST("/restaurant", adminCtrl.CreateRestaurant)
		admin.PATCH("/users/:id/role", adminCtrl.SetRole)
	}

	// Realtime feeds (token via query string for browser websockets)
	wsGroup := r.Group("/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret))
	{
		wsGroup.GET("/restaurants/:id/orders", wsHandler.HandleRestaurantFeed)
		wsGroup.GET("/orders/:id", wsHandler.HandleOrderFeed)
	}
}
