package handlers

import (
	"context"
	"fmt"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/pkg/validator"
	"github.com/futig/product-search/internal/telegram/keyboard"
	"github.com/futig/product-search/internal/telegram/render"
	"github.com/futig/product-search/internal/telegram/state"
	"github.com/futig/product-search/internal/usecase/upload"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Telegram's bot API serves files up to 20 MB
const telegramDownloadLimit = 20 << 20

// DocumentHandler uploads received documents into the chat's product folder
type DocumentHandler struct {
	BaseHandler
	bot          BotAPI
	files        FileDownloader
	uploadUC     UploadUsecase
	stateManager *state.Manager
	keyboard     *keyboard.Builder
	maxFileSize  int64
	logger       *zap.Logger
}

func NewDocumentHandler(
	bot BotAPI,
	files FileDownloader,
	uploadUC UploadUsecase,
	stateManager *state.Manager,
	keyboard *keyboard.Builder,
	maxFileSize int64,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler: BaseHandler{
			route:         HandlerRouteDocument,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:          bot,
		files:        files,
		uploadUC:     uploadUC,
		stateManager: stateManager,
		keyboard:     keyboard,
		maxFileSize:  min(maxFileSize, telegramDownloadLimit),
		logger:       logger,
	}
}

func (h *DocumentHandler) Handle(ctx context.Context, msg *Message) error {
	doc := msg.Document
	if doc == nil {
		h.sendMessage(msg.ChatID, render.MsgSendAsDocument, nil)
		return nil
	}

	st, err := h.stateManager.Get(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	if st.Folder == "" {
		h.sendMessage(msg.ChatID, render.MsgFolderMissing, nil)
		return nil
	}

	name := validator.SanitizeFilename(doc.FileName)
	ctx = logger.AddFields(ctx,
		zap.String("product_folder", st.Folder),
		zap.String("file_name", name),
	)

	if int64(doc.FileSize) > h.maxFileSize {
		h.sendMessage(msg.ChatID, fmt.Sprintf(render.ErrFileTooBig, name, doc.FileSize, h.maxFileSize), nil)
		return nil
	}

	h.sendMessage(msg.ChatID, fmt.Sprintf(render.MsgUploading, name, st.Folder), nil)

	activity := StartActivity(ctx, h.bot, msg.ChatID, tgbotapi.ChatUploadDocument, h.logger)
	defer activity.Stop()

	content, err := h.download(ctx, doc.FileID)
	if err != nil {
		ctxzap.Error(ctx, "failed to download document", zap.Error(err))
		h.sendMessage(msg.ChatID, render.RenderNotices(entity.Notice{
			Level: entity.NoticeError,
			Text:  fmt.Sprintf("Error uploading %s: %v", name, err),
		}), nil)
		return nil
	}

	outcome, err := h.uploadUC.UploadBatch(ctx, st.Folder, []entity.FileData{{
		Filename:    name,
		ContentType: doc.MimeType,
		Content:     content,
	}})
	if err != nil {
		h.sendMessage(msg.ChatID, render.RenderNotices(upload.RefusedNotice(err)), nil)
		return nil
	}

	h.sendMessage(msg.ChatID, render.RenderNotices(upload.Notices(outcome)...), h.keyboard.IndexKeyboard(st.Folder, st.Specific))
	return nil
}

func (h *DocumentHandler) download(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}
	return h.files.Download(ctx, fileURL, h.maxFileSize)
}
