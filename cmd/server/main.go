package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessonhub/scheduler/internal/app"
	"github.com/lessonhub/scheduler/internal/config"
	httpctrl "github.com/lessonhub/scheduler/internal/controller/http"
	"github.com/lessonhub/scheduler/internal/notify"
	"github.com/lessonhub/scheduler/internal/repository"
	"github.com/lessonhub/scheduler/internal/schedule/configstore"
	"github.com/lessonhub/scheduler/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting scheduler API",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	configs, err := configstore.NewManager(ctx, configstore.NewFileStore(cfg.ScheduleConfigPath), logger)
	if err != nil {
		logger.Fatal("Failed to load schedule config", zap.Error(err))
	}

	slotRepo := repository.NewSlotRepository(pool)
	unitRepo := repository.NewUnitRepository(pool)
	lectureRepo := repository.NewLectureRepository(pool)

	var notifier service.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramAdminChatID != 0 {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			loc = time.UTC
		}
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramAdminChatID, loc, logger)
		if err != nil {
			logger.Warn("Telegram notifications disabled", zap.Error(err))
		} else {
			notifier = tg
			logger.Info("Telegram notifications enabled")
		}
	}

	slotService := service.NewSlotService(pool, slotRepo, configs, notifier, logger)
	scheduleService := service.NewScheduleService(configs, slotRepo, logger)
	unitService := service.NewUnitService(unitRepo, lectureRepo, logger)

	scheduler, err := app.NewScheduler(cfg.GenerationCron, scheduleService, logger)
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := httpctrl.NewHandler(slotService, scheduleService, unitService, logger)
	fiberApp := httpctrl.NewApp(handler, cfg.JWTSecret)

	go func() {
		if err := fiberApp.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Failed to shut down HTTP server cleanly", zap.Error(err))
	}
}
