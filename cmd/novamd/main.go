package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"novamd-bot/internal/bot"
	"novamd-bot/internal/bot/state_manager"
	"novamd-bot/internal/bridge"
	"novamd-bot/internal/config"
	"novamd-bot/internal/metrics"
	"novamd-bot/internal/storage/redis"
	"novamd-bot/internal/telegram"
	"novamd-bot/pkg/api"
	"novamd-bot/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := run(ctx, cfg, zapLogger); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}

func run(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	metrics.MustRegister()

	apiClient := api.NewClient(cfg.APIBaseURL, cfg.HTTPRequestTimeout, zapLogger,
		api.WithObserver(metrics.ObserveBackendCall))

	if health, err := apiClient.Health(ctx); err != nil {
		zapLogger.Warn("Backend health check failed", zap.String("url", cfg.APIBaseURL), zap.Error(err))
	} else {
		zapLogger.Info("Backend reachable", zap.String("status", health.Status))
	}

	stateStore, closeState, err := newStateStore(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer closeState()

	botAPI, err := telegram.NewAPI(cfg.TelegramToken, cfg.TelegramDebug, zapLogger)
	if err != nil {
		return err
	}

	sender := telegram.NewBotSender(botAPI, zapLogger)
	if err := sender.SetCommands(bot.CommandMenu()); err != nil {
		zapLogger.Warn("Failed to publish command menu", zap.Error(err))
	}

	tgBot := bot.New(botAPI, sender, apiClient, stateStore, zapLogger, bot.Options{
		AdminIDs:       cfg.AdminSet(),
		SupportContact: cfg.SupportContact,
	})

	bridgeServer := bridge.NewServer(cfg.BridgeAddr(), sender, zapLogger)

	// Either service stopping takes the other one down with it.
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stop()
		return tgBot.Start(gctx)
	})

	g.Go(func() error {
		defer stop()
		return bridgeServer.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := bridgeServer.Shutdown(shutdownCtx); err != nil {
			zapLogger.Warn("Bridge shutdown failed", zap.Error(err))
		}
		return nil
	})

	g.Go(func() error {
		registerWithBackend(gctx, apiClient, botAPI.Self, cfg, zapLogger)
		return nil
	})

	return g.Wait()
}

// newStateStore uses Redis when configured, in-process memory otherwise.
func newStateStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (bot.StateStore, func(), error) {
	const operation = "main.newStateStore"

	if cfg.RedisAddr == "" {
		zapLogger.Info("Using in-memory conversation state")
		return bot.NewMemoryStateStore(), func() {}, nil
	}

	storage := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 30 * time.Second
	retryPolicy.MaxInterval = 5 * time.Second

	zapLogger.Info("Connecting to Redis...", zap.String("addr", cfg.RedisAddr))

	err := backoff.RetryNotify(
		func() error { return storage.Ping(ctx) },
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			zapLogger.Warn("Redis connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		storage.Close()
		return nil, nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	return state_manager.New(storage), storage.Close, nil
}

// registerWithBackend announces the bridge URL to the backend. Failure is
// logged and otherwise ignored; the bot works without it.
func registerWithBackend(ctx context.Context, client *api.Client, self tgbotapi.User, cfg *config.Config, zapLogger *zap.Logger) {
	reg := api.BotRegistration{
		BotID:       strconv.FormatInt(self.ID, 10),
		BotUsername: self.UserName,
		WebhookURL:  cfg.BridgePublicURL,
	}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.RegisterMaxElapsed

	err := backoff.RetryNotify(
		func() error {
			res, err := client.ConnectBot(ctx, reg)
			if err != nil {
				return err
			}
			if !res.Success {
				return backoff.Permanent(fmt.Errorf("registration rejected: %s", res.Error))
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			zapLogger.Warn("Bot registration failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			zapLogger.Warn("Bot not registered with backend", zap.Error(err))
		}
		return
	}

	zapLogger.Info("Bot registered with backend",
		zap.String("username", self.UserName),
		zap.String("webhook_url", cfg.BridgePublicURL))
}
