package handlers

import (
	"context"
	"fmt"

	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/telegram/keyboard"
	"github.com/futig/product-search/internal/telegram/render"
	"github.com/futig/product-search/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CommandHandler handles slash commands
type CommandHandler struct {
	BaseHandler
	stateManager *state.Manager
	keyboard     *keyboard.Builder
	actions      *Actions
}

func NewCommandHandler(
	bot BotAPI,
	stateManager *state.Manager,
	keyboard *keyboard.Builder,
	actions *Actions,
	logger *zap.Logger,
) *CommandHandler {
	return &CommandHandler{
		BaseHandler: BaseHandler{
			route:         HandlerRouteCommand,
			messageSender: NewMessageSender(bot, logger),
		},
		stateManager: stateManager,
		keyboard:     keyboard,
		actions:      actions,
	}
}

func (h *CommandHandler) Handle(ctx context.Context, msg *Message) error {
	ctx = logger.AddFields(ctx, zap.String("command", msg.Command))

	switch msg.Command {
	case "start":
		h.sendMessage(msg.ChatID, render.MsgWelcome, nil)
	case "help":
		h.sendMessage(msg.ChatID, render.MsgHelp, nil)
	case "folder":
		return h.handleFolder(ctx, msg)
	case "specific":
		return h.handleSpecific(ctx, msg)
	case "reindex":
		st, err := h.stateManager.Get(ctx, msg.ChatID)
		if err != nil {
			return err
		}
		h.actions.Refresh(ctx, msg.ChatID, st.Folder, st.Specific)
	case "search":
		h.actions.Search(ctx, msg.ChatID, msg.CommandArgs)
	case "reset":
		if err := h.stateManager.Reset(ctx, msg.ChatID); err != nil {
			return err
		}
		h.sendMessage(msg.ChatID, render.MsgReset, nil)
	default:
		h.sendMessage(msg.ChatID, render.ErrUnknownAction, nil)
	}
	return nil
}

func (h *CommandHandler) handleFolder(ctx context.Context, msg *Message) error {
	if msg.CommandArgs == "" {
		st, err := h.stateManager.Get(ctx, msg.ChatID)
		if err != nil {
			return err
		}
		if st.Folder == "" {
			h.sendMessage(msg.ChatID, render.MsgFolderUsage, nil)
			return nil
		}
		h.sendMessage(msg.ChatID, fmt.Sprintf(render.MsgFolderSet, st.Folder), h.keyboard.IndexKeyboard(st.Folder, st.Specific))
		return nil
	}

	st, err := h.stateManager.SetFolder(ctx, msg.ChatID, msg.CommandArgs)
	if err != nil {
		return err
	}

	ctxzap.Info(ctx, "product folder set", zap.String("product_folder", st.Folder))
	h.sendMessage(msg.ChatID, fmt.Sprintf(render.MsgFolderSet, st.Folder), h.keyboard.IndexKeyboard(st.Folder, st.Specific))
	return nil
}

func (h *CommandHandler) handleSpecific(ctx context.Context, msg *Message) error {
	st, err := h.stateManager.ToggleSpecific(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	h.sendMessage(msg.ChatID, render.RenderScope(st.Folder, st.Specific), h.keyboard.IndexKeyboard(st.Folder, st.Specific))
	return nil
}
