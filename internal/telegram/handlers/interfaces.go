package handlers

import (
	"context"
	"encoding/json"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/formatter"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the subset of *tgbotapi.BotAPI the handlers use
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type UploadUsecase interface {
	UploadBatch(ctx context.Context, folder string, files []entity.FileData) (*entity.UploadOutcome, error)
}

type IndexUsecase interface {
	Refresh(ctx context.Context, folder string, specific bool) (json.RawMessage, error)
}

type SearchUsecase interface {
	Search(ctx context.Context, query string) (*entity.SearchView, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}

// FileDownloader fetches a file Telegram is hosting for the bot
type FileDownloader interface {
	Download(ctx context.Context, fileURL string, maxSize int64) ([]byte, error)
}
