package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Usecase uploads batches of files into a product folder through presigned URLs.
type Usecase struct {
	backend   Backend
	validator TargetValidator
	workers   int
	logger    *zap.Logger
}

// NewUsecase creates an upload use case. workers caps parallel transfers;
// 1 uploads the batch sequentially in the order given.
func NewUsecase(backend Backend, validator TargetValidator, workers int, logger *zap.Logger) *Usecase {
	if workers < 1 {
		workers = 1
	}
	return &Usecase{
		backend:   backend,
		validator: validator,
		workers:   workers,
		logger:    logger,
	}
}

// UploadBatch stores every file independently. A failed file never stops the
// batch and stored files are never rolled back. The returned error is set only
// when the batch is refused as a whole.
func (uc *Usecase) UploadBatch(ctx context.Context, folder string, files []entity.FileData) (*entity.UploadOutcome, error) {
	folder = strings.TrimSpace(folder)
	if err := uc.validator.ValidateBatch(folder, len(files)); err != nil {
		return nil, err
	}

	ctx = logger.AddFields(ctx,
		zap.String("batch_id", uuid.NewString()),
		zap.String("product_folder", folder),
	)
	ctxzap.Info(ctx, "uploading batch",
		zap.Int("file_count", len(files)),
		zap.Int("workers", uc.workers),
	)

	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(uc.workers)
	for i := range files {
		g.Go(func() error {
			errs[i] = uc.uploadFile(ctx, folder, &files[i])
			return nil
		})
	}
	_ = g.Wait()

	outcome := &entity.UploadOutcome{}
	for i, err := range errs {
		if err == nil {
			outcome.Succeeded++
			continue
		}
		outcome.Failed++
		outcome.Failures = append(outcome.Failures, entity.UploadFailure{
			FileName: files[i].Filename,
			Message:  err.Error(),
		})
	}

	ctxzap.Info(ctx, "batch upload finished",
		zap.Int("succeeded", outcome.Succeeded),
		zap.Int("failed", outcome.Failed),
	)

	return outcome, nil
}

func (uc *Usecase) uploadFile(ctx context.Context, folder string, file *entity.FileData) error {
	target := NewTarget(folder, file)

	ctx = logger.AddFields(ctx, zap.String("file_name", target.FileName))

	if file.ReadErr != nil {
		ctxzap.Warn(ctx, "file could not be read", zap.Error(file.ReadErr))
		return fmt.Errorf("read file: %w", file.ReadErr)
	}

	if err := uc.validator.ValidateTarget(target); err != nil {
		ctxzap.Warn(ctx, "file rejected before upload", zap.Error(err))
		return err
	}

	cred, err := uc.backend.RequestUploadURL(ctx, target)
	if err != nil {
		ctxzap.Error(ctx, "failed to get upload url", zap.Error(err))
		return fmt.Errorf("request upload url: %w", err)
	}

	if err := uc.backend.PutObject(ctx, cred.UploadURL, target.ContentType, target.Content); err != nil {
		ctxzap.Error(ctx, "failed to transfer file", zap.Error(err))
		return fmt.Errorf("transfer file: %w", err)
	}

	ctxzap.Debug(ctx, "file uploaded",
		zap.String("content_type", target.ContentType),
		zap.Int("size", len(target.Content)),
	)

	return nil
}

// NewTarget addresses file inside folder, defaulting the media type.
func NewTarget(folder string, file *entity.FileData) *entity.UploadTarget {
	contentType := strings.TrimSpace(file.ContentType)
	if contentType == "" {
		contentType = entity.DefaultContentType
	}

	return &entity.UploadTarget{
		ProductFolder: folder,
		FileName:      file.Filename,
		ContentType:   contentType,
		Content:       file.Content,
	}
}
