package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"grana/internal/bot"
	"grana/internal/config"
	"grana/internal/log"
	"grana/internal/session"
	"grana/internal/status"
	"grana/internal/storage"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "grana:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env when present; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	store, err := storage.New(cfg.DatabaseURL, storage.RetryPolicy{
		MaxAttempts: cfg.DBMaxAttempts,
		Backoff:     cfg.DBRetryBackoff,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()
	logger.Info("database ready")

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	logger.Info("bot authorized", "username", api.Self.UserName)

	if _, err := api.Request(tgbotapi.NewSetMyCommands(bot.Commands()...)); err != nil {
		logger.Warn("registering commands", log.FieldError, err)
	}

	sessions := session.NewStore(cfg.SessionTTL)
	router := bot.NewRouter(api, store, sessions, cfg, logger)
	statusSrv := status.NewServer(":"+cfg.Port, version, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("status server listening", "port", cfg.Port)
		if err := statusSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("status server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return statusSrv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updates := api.GetUpdatesChan(u)

		logger.Info("bot running", "authorized_users", len(cfg.AuthorizedUsers))
		for {
			select {
			case <-ctx.Done():
				api.StopReceivingUpdates()
				return nil
			case update, ok := <-updates:
				if !ok {
					return nil
				}
				router.HandleUpdate(ctx, update)
			}
		}
	})

	if cfg.SessionTTL > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(cfg.SessionTTL)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if n := sessions.Sweep(); n > 0 {
						logger.Debug("sessions expired", "count", n)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped gracefully")
	return nil
}
