package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/product-search/internal/entity"
	pkghttp "github.com/futig/product-search/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase runs free-text queries against the content index.
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

// Search sends query as-is and renders the ranked results in backend order.
// An empty result list is a successful no-matches view, not an error.
func (uc *Usecase) Search(ctx context.Context, query string) (*entity.SearchView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query", entity.ErrMissingField)
	}

	ctxzap.Info(ctx, "searching", zap.String("query", query))

	results, err := uc.backend.Search(ctx, query)
	if err != nil {
		ctxzap.Error(ctx, "search failed", zap.Error(err))
		return nil, err
	}

	view := BuildView(query, results)

	ctxzap.Info(ctx, "search completed",
		zap.String("state", string(view.State)),
		zap.Int("count", len(view.Results)),
	)

	return view, nil
}

// FailureNotice renders a search error. Backend rejections show the raw
// response text, everything else the error itself.
func FailureNotice(err error) entity.Notice {
	var httpErr *pkghttp.HTTPError
	switch {
	case errors.Is(err, entity.ErrMissingField):
		return EmptyQueryNotice()
	case errors.As(err, &httpErr):
		return entity.Notice{
			Level: entity.NoticeError,
			Text:  fmt.Sprintf("Search failed: %s", httpErr.Message),
		}
	default:
		return entity.Notice{
			Level: entity.NoticeError,
			Text:  fmt.Sprintf("Error during search: %v", err),
		}
	}
}
