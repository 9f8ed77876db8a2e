package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sandeep-S-M/FarmConn/app/echo-server/router"
	messageService "github.com/Sandeep-S-M/FarmConn/business/message"
	orderService "github.com/Sandeep-S-M/FarmConn/business/order"
	postService "github.com/Sandeep-S-M/FarmConn/business/post"
	productService "github.com/Sandeep-S-M/FarmConn/business/product"
	userService "github.com/Sandeep-S-M/FarmConn/business/user"
	"github.com/Sandeep-S-M/FarmConn/internal/middleware"
	"github.com/Sandeep-S-M/FarmConn/internal/repository/notification"
	psqlRepo "github.com/Sandeep-S-M/FarmConn/internal/repository/postgres"
	redisRepo "github.com/Sandeep-S-M/FarmConn/internal/repository/redis"
	"github.com/Sandeep-S-M/FarmConn/internal/rest"
	"github.com/Sandeep-S-M/FarmConn/pkg/config"
	"github.com/Sandeep-S-M/FarmConn/pkg/database"
	redisDB "github.com/Sandeep-S-M/FarmConn/pkg/database/redis"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"
	"github.com/Sandeep-S-M/FarmConn/pkg/metrics"
	"github.com/Sandeep-S-M/FarmConn/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting FarmConn", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisDB.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisDB.CloseRedisClient(redisClient)

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	orderRepo := psqlRepo.NewOrderRepository(db)
	messageRepo := psqlRepo.NewMessageRepository(db)
	postRepo := psqlRepo.NewPostRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	users := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	products := productService.NewProductService(productRepo)
	orders := orderService.NewOrderService(orderRepo, productRepo, userRepo, mailjetEmail)
	messages := messageService.NewMessageService(messageRepo, userRepo)
	posts := postService.NewPostService(postRepo)

	// Init handler
	userHandler := rest.NewUserHandler(users, posts)
	productHandler := rest.NewProductHandler(products)
	ordersHandler := rest.NewOrdersHandler(orders)
	messagesHandler := rest.NewMessagesHandler(messages)
	postsHandler := rest.NewPostsHandler(posts)
	searchHandler := rest.NewSearchHandler(products, users)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(users)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired)
	router.SetupOrderRoutes(api, ordersHandler, authRequired)
	router.SetupMessageRoutes(api, messagesHandler, authRequired)
	router.SetupForumRoutes(api, postsHandler, authRequired)
	router.SetupSearchRoutes(api, searchHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
