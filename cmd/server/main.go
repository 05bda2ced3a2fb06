package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spendwise/backend/docs"
	"github.com/spendwise/backend/internal/config"
	"github.com/spendwise/backend/internal/database"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/handlers"
	"github.com/spendwise/backend/internal/routes"
	"github.com/spendwise/backend/internal/services"
	"github.com/spendwise/backend/internal/store"
	"golang.org/x/sync/errgroup"
)

//go:generate swag init -g main.go -d ./,../../internal/handlers,../../internal/services,../../internal/models -o ../../docs

// @title Spendwise Backend API
// @version 1.0
// @description Multi-tenant expense tracking API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = routes.BasePath

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := database.MustOpen(ctx)
	defer db.Close()

	redisClient := database.OpenRedis(ctx, database.GetRedisConfig())
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := events.NewPublisher(events.Config{
		URL:        cfg.AMQPURL,
		Exchange:   cfg.AMQPExchange,
		RoutingKey: cfg.AMQPRoutingKey,
	})
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("Failed to close audit publisher: %v", err)
		}
	}()

	pgStore := store.NewPostgresStore(db)
	hasher := services.NewBcryptHasher(cfg.BcryptCost)
	tokens := services.NewJWTCodec(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(pgStore, hasher, tokens, services.NewRedisBlacklist(redisClient))

	router := routes.NewRouter(routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Account:  handlers.NewAccountHandler(services.NewAccountService(pgStore, hasher)),
		Users:    handlers.NewUserHandler(services.NewUserService(pgStore, hasher)),
		Category: handlers.NewCategoryHandler(services.NewCategoryService(pgStore)),
		Expenses: handlers.NewExpenseHandler(services.NewExpenseService(pgStore, publisher)),
		Audit:    handlers.NewAuditHandler(services.NewAuditService(pgStore)),
	}, authService, redisClient, routes.Options{
		Health:          &database.Health{DB: db, Redis: redisClient},
		AllowedOrigins:  cfg.AllowedOrigins,
		GlobalRateLimit: cfg.GlobalRateLimit,
		LoginRateLimit:  cfg.LoginRateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped with error: %v", err)
		return
	}
	log.Println("Server stopped")
}
