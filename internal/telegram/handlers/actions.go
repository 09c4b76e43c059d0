package handlers

import (
	"context"
	"fmt"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/formatter"
	"github.com/futig/product-search/internal/telegram/keyboard"
	"github.com/futig/product-search/internal/telegram/render"
	"github.com/futig/product-search/internal/telegram/state"
	"github.com/futig/product-search/internal/usecase/index"
	"github.com/futig/product-search/internal/usecase/search"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Actions runs the index and search workflows shared by commands, plain
// text and buttons, and reports each result to the chat.
type Actions struct {
	bot          BotAPI
	sender       *MessageSender
	stateManager *state.Manager
	keyboard     *keyboard.Builder
	indexUC      IndexUsecase
	searchUC     SearchUsecase
	formatter    FormatterFactory
	logger       *zap.Logger
}

func NewActions(
	bot BotAPI,
	stateManager *state.Manager,
	keyboard *keyboard.Builder,
	indexUC IndexUsecase,
	searchUC SearchUsecase,
	formatter FormatterFactory,
	logger *zap.Logger,
) *Actions {
	return &Actions{
		bot:          bot,
		sender:       NewMessageSender(bot, logger),
		stateManager: stateManager,
		keyboard:     keyboard,
		indexUC:      indexUC,
		searchUC:     searchUC,
		formatter:    formatter,
		logger:       logger,
	}
}

// Refresh sends one index update and reports the verbatim backend reply
func (a *Actions) Refresh(ctx context.Context, chatID int64, folder string, specific bool) {
	a.sender.Send(chatID, render.MsgUpdatingIndex, nil)

	activity := StartActivity(ctx, a.bot, chatID, tgbotapi.ChatTyping, a.logger)
	reply, err := a.indexUC.Refresh(ctx, folder, specific)
	activity.Stop()

	if err != nil {
		a.sender.Send(chatID, render.RenderNotices(index.FailureNotice(err)), nil)
		return
	}
	a.sender.Send(chatID, render.RenderIndexReply(index.SuccessNotice(), reply), nil)
}

// Search runs query if it is non-empty and remembers it for export
func (a *Actions) Search(ctx context.Context, chatID int64, query string) {
	if search.Decide(query, true) != search.ActionSearch {
		a.sender.Send(chatID, render.RenderNotices(search.EmptyQueryNotice()), nil)
		return
	}

	activity := StartActivity(ctx, a.bot, chatID, tgbotapi.ChatTyping, a.logger)
	view, err := a.searchUC.Search(ctx, query)
	activity.Stop()

	if err != nil {
		a.sender.Send(chatID, render.RenderNotices(search.FailureNotice(err)), nil)
		return
	}

	if _, err := a.stateManager.SetLastQuery(ctx, chatID, view.Query); err != nil {
		ctxzap.Warn(ctx, "failed to remember last query", zap.Error(err))
	}

	var markup interface{}
	if len(view.Cards) > 0 {
		markup = a.keyboard.ExportKeyboard()
	}
	a.sender.Send(chatID, render.RenderSearchView(view, search.Notice(view)), markup)
}

// Export re-runs the chat's last query and sends the results as a file
func (a *Actions) Export(ctx context.Context, chatID int64, format entity.ResultFormat) error {
	f, err := a.formatter.Create(format)
	if err != nil {
		return err
	}

	st, err := a.stateManager.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if st.LastQuery == "" {
		a.sender.Send(chatID, render.ErrNoLastQuery, nil)
		return nil
	}

	a.sender.Send(chatID, fmt.Sprintf(render.MsgExporting, f.FileExtension()), nil)

	activity := StartActivity(ctx, a.bot, chatID, tgbotapi.ChatUploadDocument, a.logger)
	defer activity.Stop()

	view, err := a.searchUC.Search(ctx, st.LastQuery)
	if err != nil {
		a.sender.Send(chatID, render.RenderNotices(search.FailureNotice(err)), nil)
		return nil
	}

	data, err := f.Format(view)
	if err != nil {
		return fmt.Errorf("format search results: %w", err)
	}

	return a.sender.SendDocument(chatID, formatter.FileName(f), data)
}
