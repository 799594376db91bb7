package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/zordhalo/managment-site/internal/app"
	"github.com/zordhalo/managment-site/internal/auth"
	"github.com/zordhalo/managment-site/internal/config"
	"github.com/zordhalo/managment-site/internal/controller"
	"github.com/zordhalo/managment-site/internal/repository"
	"github.com/zordhalo/managment-site/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	notifier := service.NewNotificationService(notificationRepo, userRepo, roomRepo, shiftRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	roomService := service.NewRoomService(roomRepo, logger)
	bookingService := service.NewBookingService(userRepo, roomRepo, bookingRepo, notifier, logger)
	shiftService := service.NewShiftService(userRepo, roomRepo, shiftRepo, taskRepo, templateRepo, notifier, logger)

	ctrl := controller.New(userService, roomService, bookingService, shiftService, notifier, cfg.JWTSecret, logger)

	router := httprouter.New()
	ctrl.Routes(router, auth.NewMiddleware(cfg.JWTSecret), controller.NewRateLimiter())

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	server := app.NewServer(cfg.HTTPAddr, handler, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting management site",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
	)

	if err := server.Start(); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
