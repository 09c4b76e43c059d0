package telegram

import (
	"context"
	"fmt"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/telegram/bot"
	"github.com/futig/product-search/internal/telegram/handlers"
	"github.com/futig/product-search/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// Dependencies are the workflows the bot drives
type Dependencies struct {
	Upload      handlers.UploadUsecase
	Index       handlers.IndexUsecase
	Search      handlers.SearchUsecase
	Formatter   handlers.FormatterFactory
	Files       handlers.FileDownloader
	MaxFileSize int64
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	deps Dependencies,
	logger *zap.Logger,
) (Bot, error) {
	// Create state manager
	stateManager := state.NewManager(storage)

	// Create bot instance
	b, err := bot.New(cfg, stateManager, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	// Register handlers
	registerHandlers(b, deps, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, deps Dependencies, logger *zap.Logger) {
	api := b.GetAPI()
	stateManager := b.GetStateManager()
	keyboard := b.GetKeyboard()

	actions := handlers.NewActions(api, stateManager, keyboard, deps.Index, deps.Search, deps.Formatter, logger)

	b.RegisterHandler(handlers.NewCommandHandler(api, stateManager, keyboard, actions, logger))
	b.RegisterHandler(handlers.NewTextHandler(api, actions, logger))
	b.RegisterHandler(handlers.NewDocumentHandler(api, deps.Files, deps.Upload, stateManager, keyboard, deps.MaxFileSize, logger))
	b.RegisterHandler(handlers.NewCallbackHandler(api, stateManager, keyboard, actions, logger))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 4),
	)
}
