package product

import (
	"context"
	"encoding/json"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/formatter"
)

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
