package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/telegram/handlers"
	"github.com/futig/product-search/internal/telegram/keyboard"
	"github.com/futig/product-search/internal/telegram/middleware"
	"github.com/futig/product-search/internal/telegram/render"
	"github.com/futig/product-search/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	handlers     map[string]handlers.Handler
	keyboard     *keyboard.Builder
	logger       *zap.Logger
	middlewares  []middleware.Middleware
	updatesChan  tgbotapi.UpdatesChannel
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		keyboard:     keyboard.NewBuilder(),
		logger:       logger,
		handlers:     make(map[string]handlers.Handler),
		stopChan:     make(chan struct{}),
	}

	// Rate limiting runs first so throttled users never reach a handler.
	bot.middlewares = []middleware.Middleware{
		middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger, api),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewRecoveryMiddleware(logger, api),
	}

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = logger.Into(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates dispatches every update on its own goroutine. Handlers
// outlive ctx cancellation: Stop waits for them.
func (b *Bot) processUpdates(ctx context.Context) {
	handlerCtx := context.WithoutCancel(ctx)
	handle := middleware.Chain(func(u tgbotapi.Update) {
		b.handleUpdate(handlerCtx, u)
	}, b.middlewares...)

	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				handle(update)
			}()
		}
	}
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx = logger.AddFields(ctx, zap.Int("update_id", update.UpdateID))

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage routes a message by its kind
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      strings.TrimSpace(message.Text),
		Document:  message.Document,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}

	route := handlers.HandlerRouteText
	switch {
	case message.IsCommand():
		route = handlers.HandlerRouteCommand
		msg.Command = message.Command()
		msg.CommandArgs = strings.TrimSpace(message.CommandArguments())
	case message.Document != nil:
		route = handlers.HandlerRouteDocument
	}

	ctx = logger.AddFields(ctx,
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64("user_id", msg.UserID),
		zap.String("route", route),
	)

	handler, exists := b.handlers[route]
	if !exists {
		ctxzap.Warn(ctx, "no handler for route")
		b.sendError(msg.ChatID, render.ErrGeneric)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error", zap.Error(err))
		b.sendError(msg.ChatID, render.ErrGeneric)
	}
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}

	if _, err := keyboard.ParseCallback(query.Data); err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "❌ Invalid data")
		return
	}

	chatID := query.Message.Chat.ID
	ctx = logger.AddFields(ctx,
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", query.From.ID),
		zap.String("route", handlers.HandlerRouteCallback),
	)

	msg := &handlers.Message{
		ChatID:       chatID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	handler, exists := b.handlers[handlers.HandlerRouteCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		b.answerCallback(query.ID, "❌ Handler not found")
		return
	}

	// Answer right away so Telegram does not treat the query as stale;
	// results arrive as regular chat messages.
	b.answerCallback(query.ID, "⏳ Working on it...")

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error", zap.Error(err))
		b.sendError(chatID, render.ErrGeneric)
	}
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for a route
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	route := handler.GetRoute()

	if !handlers.IsValidRoute(route) {
		b.logger.Fatal("invalid handler route",
			zap.String("route", route),
		)
	}

	b.handlers[route] = handler
	b.logger.Info("handler registered",
		zap.String("route", route),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetStateManager returns the state manager (for handlers)
func (b *Bot) GetStateManager() *state.Manager {
	return b.stateManager
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}
