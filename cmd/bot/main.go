package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"remindme/config"
	_ "remindme/docs" // Swagger docs
	"remindme/internal/httpserver"
	"remindme/internal/interpreter"
	"remindme/internal/pipeline"
	tgDelivery "remindme/internal/reminder/delivery/telegram"
	redisRepo "remindme/internal/reminder/repository/redis"
	"remindme/internal/reminder/usecase"
	"remindme/internal/scheduler"
	"remindme/pkg/log"
	"remindme/pkg/speech"
	"remindme/pkg/telegram"
)

// @title       RemindMe Bot API
// @description Telegram reminder bot with natural language commands, voice input, and Redis-backed scheduling.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting RemindMe bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Redis: %s", cfg.Redis.Addr)

	// 3. Redis store
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer redisClient.Close()

	repo, err := redisRepo.New(redisClient, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize reminder repository: ", err)
		return
	}

	// 4. Reminder domain
	interp := interpreter.New(time.Local)
	reminderUC := usecase.New(logger, repo, interp, time.Local)

	if cfg.Telegram.BotToken == "" {
		logger.Error(ctx, "TELEGRAM_BOT_TOKEN is required")
		return
	}
	telegramBot := telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.SendRate)
	transport := tgDelivery.NewTransport(telegramBot)

	// Speech transcription (optional)
	var transcriber speech.Transcriber
	if cfg.Speech.CredentialsPath != "" {
		googleTranscriber, sErr := speech.NewGoogleTranscriber(ctx, speech.Config{
			CredentialsPath: cfg.Speech.CredentialsPath,
			Language:        cfg.Speech.Language,
			SampleRateHertz: cfg.Speech.SampleRateHertz,
			FFmpegPath:      cfg.Speech.FFmpegPath,
		})
		if sErr != nil {
			logger.Warnf(ctx, "Speech transcription not available (optional): %v", sErr)
		} else {
			transcriber = googleTranscriber
			logger.Info(ctx, "Speech transcription initialized")
		}
	} else {
		logger.Warn(ctx, "SPEECH_CREDENTIALS not set, voice messages will be rejected")
	}

	// 5. Pipeline and scheduler
	pipe := pipeline.New(pipeline.Config{
		Logger:          logger,
		UseCase:         reminderUC,
		Sender:          transport,
		Fetcher:         transport,
		Transcriber:     transcriber,
		WorkersPerQueue: cfg.Pipeline.WorkersPerQueue,
		RetryBackoff:    cfg.Pipeline.RetryBackoff,
	})

	sched := scheduler.New(logger, repo, transport, scheduler.Config{
		Interval:   cfg.Scheduler.Interval,
		SendWindow: cfg.Scheduler.SendWindow,
		RetryDelay: cfg.Scheduler.RetryDelay,
		Expiry:     cfg.Scheduler.Expiry,
	})

	go func() {
		if pErr := pipe.Run(ctx); pErr != nil {
			logger.Errorf(ctx, "Pipeline stopped: %v", pErr)
			stop()
		}
	}()
	go func() {
		if sErr := sched.Run(ctx); sErr != nil && sErr != context.Canceled {
			logger.Errorf(ctx, "Scheduler stopped: %v", sErr)
			stop()
		}
	}()

	// 6. Telegram webhook registration
	if cfg.Telegram.WebhookURL != "" {
		if whErr := telegramBot.SetWebhook(cfg.Telegram.WebhookURL + "/webhook/telegram"); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s/webhook/telegram", cfg.Telegram.WebhookURL)
		}
	}

	telegramHandler := tgDelivery.New(logger, pipe)

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
