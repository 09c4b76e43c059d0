package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ReadMultipartFiles reads browser-selected files in the order they were sent.
// A part that cannot be read is kept with ReadErr set so the batch goes on.
func ReadMultipartFiles(ctx context.Context, files []*multipart.FileHeader) []entity.FileData {
	fileDataList := make([]entity.FileData, 0, len(files))

	for _, fh := range files {
		file := entity.FileData{
			Filename:    validator.SanitizeFilename(fh.Filename),
			ContentType: fh.Header.Get("Content-Type"),
		}
		file.Content, file.ReadErr = readPart(fh)
		fileDataList = append(fileDataList, file)

		if file.ReadErr != nil {
			ctxzap.Warn(ctx, "failed to read uploaded part",
				zap.String("filename", fh.Filename),
				zap.Error(file.ReadErr),
			)
			continue
		}

		ctxzap.Debug(ctx, "file prepared for upload",
			zap.String("filename", fh.Filename),
			zap.Int64("size", fh.Size),
		)
	}

	return fileDataList
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	return io.ReadAll(src)
}
