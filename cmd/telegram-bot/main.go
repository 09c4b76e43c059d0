package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/product-search/internal/builder"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var environment string

	cmd := &cobra.Command{
		Use:          "telegram-bot",
		Short:        "Run the product search Telegram bot",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(environment)
		},
	}
	cmd.Flags().StringVar(&environment, "env", "local", "environment name, selects .env.<env>")

	if err := cmd.Execute(); err != nil {
		log.Println("Telegram bot error:", err)
		os.Exit(1)
	}
}

func run(environment string) error {
	bot, logger, err := builder.BuildTelegramBot(environment)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting telegram bot...")
		if err := bot.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal",
			zap.String("signal", sig.String()))
		cancel()
		if err := bot.Stop(); err != nil {
			logger.Error("error stopping bot",
				zap.Error(err))
		}
		logger.Info("telegram bot stopped gracefully")
		return nil
	case err := <-errChan:
		logger.Error("telegram bot error",
			zap.Error(err))
		return err
	}
}
