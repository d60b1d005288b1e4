package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorlink/mentorbot/internal/app"
	"github.com/mentorlink/mentorbot/internal/cache"
	"github.com/mentorlink/mentorbot/internal/config"
	"github.com/mentorlink/mentorbot/internal/controller"
	"github.com/mentorlink/mentorbot/internal/platform"
	"github.com/mentorlink/mentorbot/internal/repository"
	"github.com/mentorlink/mentorbot/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting mentorbot",
		zap.String("environment", cfg.Environment),
		zap.String("platform_api", cfg.PlatformAPIURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres: пользователи и избранное
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Redis: кэш правил доступности
	rulesCache, err := cache.NewRulesCache(cfg.RedisAddr)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer rulesCache.Close()

	// Клиент API платформы
	platformClient := platform.NewClient(cfg.PlatformAPIURL, cfg.PlatformAuthURL, logger)

	// Репозитории и сервисы
	userRepo := repository.NewUserRepository(pool)
	favoritesRepo := repository.NewFavoritesRepository(pool)

	userService := service.NewUserService(userRepo, favoritesRepo, logger)
	mentorService := service.NewMentorService(platformClient, rulesCache, logger)
	bookingService := service.NewBookingService(platformClient, logger)

	// Telegram bot
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		userService,
		mentorService,
		bookingService,
		logger,
		cfg.CommunityInviteURL,
		cfg.CalendarFontPath,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Фоновый прогрев кэша правил избранных менторов
	scheduler := app.NewScheduler(mentorService, favoritesRepo, logger)
	scheduler.Start(ctx)

	// HTTP-сервер для проб деплоя
	statusServer := app.NewStatusServer(cfg.StatusAddr, rulesCache, logger)
	statusServer.Start()

	logger.Info("🚀 Mentorbot is running")

	// Блокируется до SIGINT/SIGTERM
	botController.Start(ctx)

	logger.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := statusServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Status server shutdown failed", zap.Error(err))
	}

	logger.Info("✅ Mentorbot stopped")
}
