package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/internal/audit"
	"github.com/inkwell-app/inkwell/internal/authz"
	"github.com/inkwell-app/inkwell/internal/broker"
	"github.com/inkwell-app/inkwell/internal/config"
	"github.com/inkwell-app/inkwell/internal/database"
	"github.com/inkwell-app/inkwell/internal/handler"
	"github.com/inkwell-app/inkwell/internal/hashid"
	"github.com/inkwell-app/inkwell/internal/httperr"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/repository"
	"github.com/inkwell-app/inkwell/internal/service"
	"github.com/inkwell-app/inkwell/internal/utils"
	"github.com/inkwell-app/inkwell/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.Connect(cfg)
	database.Migrate(db)

	ids, err := hashid.New(hashid.Config{
		Salt:      cfg.HashidSalt,
		Alphabet:  cfg.HashidAlphabet,
		MinLength: cfg.HashidMinLength,
	})
	if err != nil {
		logger.Log.Fatal("failed to build id codec", zap.Error(err))
	}

	hasher, err := utils.NewHasher(cfg.HashSecret)
	if err != nil {
		logger.Log.Fatal("failed to build credential hasher", zap.Error(err))
	}

	tokens, err := utils.NewTokenCodec(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry, cfg.RefreshDelay, cfg.RefreshExpiry, ids)
	if err != nil {
		logger.Log.Fatal("failed to build token codec", zap.Error(err))
	}

	trail, err := audit.Open(cfg.AuditLogPath)
	if err != nil {
		logger.Log.Fatal("failed to open audit trail", zap.Error(err))
	}
	defer trail.Close()

	redisBroker, err := broker.NewRedisBroker(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisBroker.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	resolver := authz.NewResolver(trail)
	authz.RegisterDefaultOwnerships(resolver, userRepo, blogRepo, commentRepo, messageRepo, likeRepo, requestRepo)

	// Services
	authService := service.NewAuthService(userRepo, hasher, tokens, cfg.Environment)
	userService := service.NewUserService(userRepo, permissionRepo, hasher)
	blogService := service.NewBlogService(blogRepo, categoryRepo)
	commentService := service.NewCommentService(commentRepo, blogRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, redisBroker, ids)
	likeService := service.NewLikeService(likeRepo, blogRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	requestService := service.NewRequestService(requestRepo)
	permissionService := service.NewPermissionService(permissionRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService, ids)
	userHandler := handler.NewUserHandler(userService, resolver, ids, cfg.DefaultPageLimit)
	blogHandler := handler.NewBlogHandler(blogService, commentService, likeService, resolver, ids, cfg.DefaultPageLimit)
	commentHandler := handler.NewCommentHandler(commentService, resolver, ids, cfg.DefaultPageLimit)
	messageHandler := handler.NewMessageHandler(messageService, resolver, ids, cfg.DefaultPageLimit)
	categoryHandler := handler.NewCategoryHandler(categoryService, resolver, ids, cfg.DefaultPageLimit)
	requestHandler := handler.NewRequestHandler(requestService, resolver, ids, cfg.DefaultPageLimit)
	permissionHandler := handler.NewPermissionHandler(permissionService, ids, cfg.DefaultPageLimit)
	streamHandler := handler.NewStreamHandler(redisBroker, ids)

	limiter := middleware.NewRateLimiter(redisBroker.Client(), middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(cfg.Environment == "production"))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		httperr.Render(c, httperr.New(httperr.MethodNotAllowed, "method not allowed"))
	})
	router.NoRoute(func(c *gin.Context) {
		httperr.Render(c, httperr.New(httperr.NotFound, "resource not found"))
	})

	api := router.Group("/api")
	api.Use(middleware.Authenticate(userRepo, tokens, trail))

	auth := api.Group("/auth")
	auth.Use(limiter.Middleware())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", authHandler.Me)
	}

	users := api.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/counts", userHandler.Counts)
		users.GET("/:id", userHandler.Get)
		users.PATCH("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Erase)
		users.PATCH("/:id/option", userHandler.UpdateOption)
		users.PATCH("/:id/detail", userHandler.UpdateDetail)
		users.PATCH("/:id/credential", userHandler.RotateCredential)
		users.POST("/:id/validate", userHandler.Validate)
		users.POST("/:id/ban", userHandler.Ban)
		users.GET("/:id/permissions", userHandler.ListPermissions)
		users.POST("/:id/permissions", userHandler.GrantPermission)
		users.DELETE("/:id/permissions", userHandler.RevokePermission)
	}

	blogs := api.Group("/blogs")
	{
		blogs.GET("", blogHandler.List)
		blogs.GET("/counts", blogHandler.Counts)
		blogs.GET("/:id", blogHandler.Get)
		blogs.POST("", blogHandler.Create)
		blogs.PATCH("/:id", blogHandler.Update)
		blogs.DELETE("/:id", blogHandler.Delete)
		blogs.POST("/:id/review", blogHandler.Review)
		blogs.POST("/:id/approve", blogHandler.Approve)
		blogs.POST("/:id/publish", blogHandler.Publish)
		blogs.POST("/:id/ban", blogHandler.Ban)
		blogs.GET("/:id/comments", blogHandler.ListComments)
		blogs.POST("/:id/comments", blogHandler.CreateComment)
		blogs.GET("/:id/likes", blogHandler.ListLikes)
		blogs.POST("/:id/likes", blogHandler.Like)
		blogs.DELETE("/:id/likes", blogHandler.Unlike)
	}

	comments := api.Group("/comments")
	{
		comments.GET("", commentHandler.List)
		comments.GET("/counts", commentHandler.Counts)
		comments.GET("/:id", commentHandler.Get)
		comments.PATCH("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
		comments.POST("/:id/review", commentHandler.Review)
		comments.POST("/:id/approve", commentHandler.Approve)
	}

	messages := api.Group("/messages")
	messages.Use(middleware.RequireAuthenticated())
	{
		messages.GET("", messageHandler.List)
		messages.GET("/counts", messageHandler.Counts)
		messages.GET("/stream", streamHandler.Inbox)
		messages.GET("/:id", messageHandler.Get)
		messages.POST("", messageHandler.Send)
		messages.DELETE("/:id", messageHandler.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/counts", categoryHandler.Counts)
		categories.GET("/:id", categoryHandler.Get)
		categories.POST("", categoryHandler.Create)
		categories.PATCH("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	requests := api.Group("/requests")
	{
		requests.GET("", requestHandler.List)
		requests.GET("/counts", requestHandler.Counts)
		requests.GET("/:id", requestHandler.Get)
		requests.DELETE("/:id", requestHandler.Delete)
	}

	permissions := api.Group("/permissions")
	{
		permissions.GET("", permissionHandler.List)
		permissions.GET("/:id", permissionHandler.Get)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Log.Info("server starting", zap.String("addr", cfg.ServerPort))
	if err := router.Run(cfg.ServerPort); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
