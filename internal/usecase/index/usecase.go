package index

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/product-search/internal/entity"
	pkghttp "github.com/futig/product-search/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	MsgUpdated    = "Content index updated successfully!"
	MsgEmptyReply = "(empty reply)"
)

// Usecase triggers content index rebuilds.
type Usecase struct {
	backend Backend
	logger  *zap.Logger
}

func NewUsecase(backend Backend, logger *zap.Logger) *Usecase {
	return &Usecase{
		backend: backend,
		logger:  logger,
	}
}

// NewRequest scopes the rebuild to folder only when specific is set and a
// folder was entered; anything else is a global rebuild.
func NewRequest(folder string, specific bool) entity.IndexUpdateRequest {
	folder = strings.TrimSpace(folder)
	if !specific || folder == "" {
		return entity.IndexUpdateRequest{}
	}
	return entity.IndexUpdateRequest{ProductFolder: folder}
}

// Refresh sends one update-content request and returns the backend reply
// as received. It blocks until the backend answers and never retries.
func (uc *Usecase) Refresh(ctx context.Context, folder string, specific bool) (json.RawMessage, error) {
	req := NewRequest(folder, specific)

	ctxzap.Info(ctx, "refreshing content index",
		zap.Bool("scoped", req.Scoped()),
		zap.String("product_folder", req.ProductFolder),
	)

	reply, err := uc.backend.UpdateContent(ctx, req)
	if err != nil {
		ctxzap.Error(ctx, "failed to update content index", zap.Error(err))
		return nil, err
	}

	ctxzap.Info(ctx, "content index updated", zap.Int("reply_size", len(reply)))
	return reply, nil
}

// FailureNotice renders a refresh error. Backend rejections show the raw
// response text, everything else the error itself.
func FailureNotice(err error) entity.Notice {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return entity.Notice{
			Level: entity.NoticeError,
			Text:  fmt.Sprintf("Failed to update content index: %s", httpErr.Message),
		}
	}
	return entity.Notice{
		Level: entity.NoticeError,
		Text:  fmt.Sprintf("Error updating content index: %v", err),
	}
}

func SuccessNotice() entity.Notice {
	return entity.Notice{Level: entity.NoticeSuccess, Text: MsgUpdated}
}

// FormatReply pretty-prints a reply for people. Bodies that are not JSON are
// shown verbatim and an empty body is shown as MsgEmptyReply.
func FormatReply(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return MsgEmptyReply
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
