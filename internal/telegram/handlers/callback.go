package handlers

import (
	"context"
	"fmt"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/telegram/keyboard"
	"github.com/futig/product-search/internal/telegram/render"
	"github.com/futig/product-search/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles inline button presses
type CallbackHandler struct {
	BaseHandler
	stateManager *state.Manager
	keyboard     *keyboard.Builder
	actions      *Actions
}

func NewCallbackHandler(
	bot BotAPI,
	stateManager *state.Manager,
	keyboard *keyboard.Builder,
	actions *Actions,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			route:         HandlerRouteCallback,
			messageSender: NewMessageSender(bot, logger),
		},
		stateManager: stateManager,
		keyboard:     keyboard,
		actions:      actions,
	}
}

func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	cb, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return err
	}

	ctxzap.Debug(ctx, "handling callback",
		zap.String("callback_action", cb.Action),
		zap.String("value", cb.Value),
	)

	switch cb.Action {
	case keyboard.ActionIndex:
		return h.handleIndex(ctx, msg.ChatID, cb.Value)
	case keyboard.ActionScope:
		st, err := h.stateManager.ToggleSpecific(ctx, msg.ChatID)
		if err != nil {
			return err
		}
		h.sendMessage(msg.ChatID, render.RenderScope(st.Folder, st.Specific), h.keyboard.IndexKeyboard(st.Folder, st.Specific))
		return nil
	case keyboard.ActionExport:
		return h.actions.Export(ctx, msg.ChatID, entity.ResultFormat(cb.Value))
	default:
		return fmt.Errorf("unknown callback action %q", cb.Action)
	}
}

func (h *CallbackHandler) handleIndex(ctx context.Context, chatID int64, value string) error {
	switch value {
	case keyboard.IndexAll:
		h.actions.Refresh(ctx, chatID, "", false)
	case keyboard.IndexFolder:
		st, err := h.stateManager.Get(ctx, chatID)
		if err != nil {
			return err
		}
		if st.Folder == "" {
			h.sendMessage(chatID, render.MsgFolderMissing, nil)
			return nil
		}
		h.actions.Refresh(ctx, chatID, st.Folder, true)
	default:
		return fmt.Errorf("unknown index scope %q", value)
	}
	return nil
}
