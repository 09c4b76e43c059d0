package index

import (
	"context"
	"encoding/json"

	"github.com/futig/product-search/internal/entity"
)

type Backend interface {
	UpdateContent(ctx context.Context, req entity.IndexUpdateRequest) (json.RawMessage, error)
}
