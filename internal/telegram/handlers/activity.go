package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram chat actions expire after 5 seconds
const chatActionInterval = 4 * time.Second

// ActivityNotifier keeps a chat action ("typing", "sending a file") visible
// while a backend call is in flight.
type ActivityNotifier struct {
	bot    BotAPI
	chatID int64
	action string
	done   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

// StartActivity begins sending action to the chat until Stop is called or
// ctx ends.
func StartActivity(ctx context.Context, bot BotAPI, chatID int64, action string, logger *zap.Logger) *ActivityNotifier {
	n := &ActivityNotifier{
		bot:    bot,
		chatID: chatID,
		action: action,
		done:   make(chan struct{}),
		logger: logger,
	}

	n.send()

	go func() {
		ticker := time.NewTicker(chatActionInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n.send()
			case <-n.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return n
}

func (n *ActivityNotifier) send() {
	if _, err := n.bot.Request(tgbotapi.NewChatAction(n.chatID, n.action)); err != nil {
		n.logger.Warn("failed to send chat action",
			zap.Error(err),
			zap.Int64("chat_id", n.chatID),
			zap.String("action", n.action),
		)
	}
}

// Stop stops sending chat actions
func (n *ActivityNotifier) Stop() {
	n.once.Do(func() { close(n.done) })
}
