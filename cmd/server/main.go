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

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/barbershop_booking/internal/app"
	"github.com/Freeeeeet/barbershop_booking/internal/availability"
	"github.com/Freeeeeet/barbershop_booking/internal/config"
	"github.com/Freeeeeet/barbershop_booking/internal/controller"
	"github.com/Freeeeeet/barbershop_booking/internal/controller/rest"
	"github.com/Freeeeeet/barbershop_booking/internal/notification"
	"github.com/Freeeeeet/barbershop_booking/internal/repository"
	"github.com/Freeeeeet/barbershop_booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting barbershop booking service",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("timezone", cfg.ShopTimezone.String()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
	logger.Info("Service stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := app.NewPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		_ = migrator.Close()
		return err
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database schema version", zap.Int64("version", version))
	}
	_ = migrator.Close()

	schedule, err := availability.NewSchedule(cfg.ShopOpen, cfg.ShopClose, cfg.SlotStepMinutes)
	if err != nil {
		return err
	}
	clock := service.ShopClock(cfg.ShopTimezone)

	// Репозитории
	bookingRepo := repository.NewBookingRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	offeringRepo := repository.NewServiceOfferingRepository(pool)

	// Уведомления
	var botInstance *bot.Bot
	if cfg.TelegramToken != "" {
		botInstance, err = bot.New(cfg.TelegramToken)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("Telegram token is empty, admin bot disabled")
	}

	mailer := notification.NewMailNotifier(notification.MailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}, logger)

	notifier := notification.NewFanout(
		notification.NewTelegramNotifier(botInstance, cfg.TelegramAdminChatID, logger),
		mailer,
		notification.NewAMQPPublisher(cfg.RabbitMQURL, logger),
	)

	// Сервисы
	availabilityService := service.NewAvailabilityService(locationRepo, seatRepo, offeringRepo, bookingRepo, schedule, clock, logger)
	bookingService := service.NewBookingService(bookingRepo, seatRepo, offeringRepo, notifier, clock, logger)
	catalogService := service.NewCatalogService(locationRepo, seatRepo, offeringRepo, logger)
	authService := service.NewAuthService(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AdminTokenTTL, logger)
	reminderService := service.NewReminderService(bookingRepo, mailer, clock, logger)

	// Без redis счётчик остаётся nil-интерфейсом, лимит не применяется
	rateLimit := rest.RateLimitConfig{Limit: cfg.RateLimitPerMinute, Window: time.Minute}
	if client := app.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, logger); client != nil {
		defer func() { _ = client.Close() }()
		rateLimit.Counter = rest.NewRedisCounter(client)
	}

	handler := rest.NewHandler(availabilityService, bookingService, catalogService, authService, logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           rest.NewRouter(handler, rateLimit, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := app.NewScheduler(logger)
	if mailer.Enabled() {
		scheduler.Every(ctx, "booking_reminders", cfg.ReminderInterval, reminderService.RunReminders(cfg.ReminderLead))
	} else {
		logger.Warn("Mail is disabled, booking reminders are not scheduled")
	}
	defer scheduler.Stop()

	if botInstance != nil {
		botController := controller.NewBotController(botInstance, bookingService, cfg.TelegramAdminChatID, clock, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Failed to register bot commands", zap.Error(err))
		}
		go func() {
			if err := botController.Start(ctx); err != nil {
				logger.Error("Bot stopped with error", zap.Error(err))
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	return nil
}
