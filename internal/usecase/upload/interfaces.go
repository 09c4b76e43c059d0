package upload

import (
	"context"

	"github.com/futig/product-search/internal/entity"
)

type Backend interface {
	RequestUploadURL(ctx context.Context, target *entity.UploadTarget) (*entity.UploadCredential, error)
	PutObject(ctx context.Context, uploadURL, contentType string, content []byte) error
}

type TargetValidator interface {
	ValidateBatch(folder string, fileCount int) error
	ValidateTarget(target *entity.UploadTarget) error
}
