package handlers

import (
	"context"

	"github.com/futig/product-search/internal/telegram/render"
	"go.uber.org/zap"
)

// TextHandler treats any plain message as a search query
type TextHandler struct {
	BaseHandler
	actions *Actions
}

func NewTextHandler(bot BotAPI, actions *Actions, logger *zap.Logger) *TextHandler {
	return &TextHandler{
		BaseHandler: BaseHandler{
			route:         HandlerRouteText,
			messageSender: NewMessageSender(bot, logger),
		},
		actions: actions,
	}
}

func (h *TextHandler) Handle(ctx context.Context, msg *Message) error {
	if msg.Text == "" {
		h.sendMessage(msg.ChatID, render.MsgSendAsDocument, nil)
		return nil
	}
	h.actions.Search(ctx, msg.ChatID, msg.Text)
	return nil
}
