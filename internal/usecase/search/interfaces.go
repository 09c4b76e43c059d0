package search

import (
	"context"

	"github.com/futig/product-search/internal/entity"
)

type Backend interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}
