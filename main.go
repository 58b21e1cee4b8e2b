package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/maeum-crm/backend/internal/cache"
	"github.com/maeum-crm/backend/internal/config"
	"github.com/maeum-crm/backend/internal/db"
	"github.com/maeum-crm/backend/internal/handler"
	"github.com/maeum-crm/backend/internal/service"
)

func main() {
	envFile := pflag.String("env-file", "", "path to an env file loaded before reading configuration")
	addr := pflag.String("addr", "", "listen address, overrides SERVER_ADDR")
	pflag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Error("failed to load env file", "path", *envFile, "err", err)
			os.Exit(1)
		}
	}

	cfg := config.Load()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx := context.Background()

	// Postgres 연결 및 스키마 준비
	database, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		logger.Error("failed to connect to postgres", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "err", err)
		os.Exit(1)
	}

	// Redis: 리프레시 토큰 캐시 + 토큰 블랙리스트
	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	tokenCache := cache.NewRefreshTokenStore(rdb)
	denylist := cache.NewDenylist(rdb)

	accessTTL, err := time.ParseDuration(cfg.Auth.JWTAccessTTL)
	if err != nil {
		logger.Error("invalid JWT_ACCESS_TTL", "value", cfg.Auth.JWTAccessTTL, "err", err)
		os.Exit(1)
	}
	refreshTTL, err := time.ParseDuration(cfg.Auth.JWTRefreshTTL)
	if err != nil {
		logger.Error("invalid JWT_REFRESH_TTL", "value", cfg.Auth.JWTRefreshTTL, "err", err)
		os.Exit(1)
	}

	issuer, err := service.NewTokenIssuer(cfg.Auth.JWTSecret, accessTTL, refreshTTL)
	if err != nil {
		logger.Error("failed to create token issuer", "err", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(database, issuer, tokenCache, denylist, cfg.Auth, logger)
	if err != nil {
		logger.Error("failed to create auth service", "err", err)
		os.Exit(1)
	}
	userService := service.NewUserService(database, logger)
	customerService := service.NewCustomerService(database, logger)
	counselService := service.NewCounselService(database, logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	customerHandler := handler.NewCustomerHandler(customerService)
	counselHandler := handler.NewCounselHandler(counselService)

	handler.RegisterValidators()

	router := gin.Default()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, true))
	}

	// 건강 체크 및 테스트용 기본 엔드포인트
	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)

	api := router.Group("/api/v1")
	api.GET("/schema", handler.OpenAPIDoc)

	oauth := api.Group("/oauth")
	oauth.POST("/login", authHandler.Login)
	oauth.POST("/logout", authHandler.Logout)
	oauth.POST("/refresh", authHandler.Refresh)

	api.POST("/users", userHandler.SignUp)

	authed := api.Group("")
	authed.Use(handler.AuthMiddleware(authService))

	authed.GET("/users/info", userHandler.Info)
	authed.PUT("/users/info", userHandler.UpdateInfo)
	authed.PATCH("/users/info", userHandler.UpdateInfo)
	authed.DELETE("/users/info", userHandler.DeleteInfo)

	authed.GET("/customers", customerHandler.List)
	authed.POST("/customers", customerHandler.Create)
	authed.GET("/customers/:id", customerHandler.Detail)
	authed.PUT("/customers/:id", customerHandler.Update)
	authed.PATCH("/customers/:id", customerHandler.Update)
	authed.DELETE("/customers/:id", customerHandler.Delete)
	authed.PUT("/customers/:id/security", customerHandler.UpdateSecurity)

	authed.GET("/counsels", counselHandler.List)
	authed.POST("/counsels", counselHandler.Create)
	authed.GET("/counsels/:id", counselHandler.Detail)
	authed.PUT("/counsels/:id", counselHandler.Update)
	authed.PATCH("/counsels/:id", counselHandler.Update)
	authed.DELETE("/counsels/:id", counselHandler.Delete)
	authed.GET("/counsels/:id/documents", counselHandler.ListDocuments)
	authed.POST("/counsels/:id/documents", counselHandler.CreateDocument)
	authed.GET("/counsels/:id/documents/:docID", counselHandler.DocumentDetail)
	authed.PUT("/counsels/:id/documents/:docID", counselHandler.UpdateDocument)
	authed.DELETE("/counsels/:id/documents/:docID", counselHandler.DeleteDocument)

	logger.Info("starting server", "addr", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}
