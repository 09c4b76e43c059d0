package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/entity"
)

// Validator validates file uploads
type Validator struct {
	cfg config.FileUploadConfig
}

func NewFileValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateBatch refuses a batch before any file is processed.
func (v *Validator) ValidateBatch(folder string, fileCount int) error {
	if strings.TrimSpace(folder) == "" {
		return fmt.Errorf("%w: product_folder", entity.ErrMissingField)
	}
	if fileCount == 0 {
		return fmt.Errorf("%w: files", entity.ErrMissingField)
	}
	if fileCount > v.cfg.MaxFileCount {
		return fmt.Errorf("%w: maximum %d files allowed, got %d", entity.ErrTooManyFiles, v.cfg.MaxFileCount, fileCount)
	}
	return nil
}

// ValidateTarget checks a single file before a credential is requested for it.
func (v *Validator) ValidateTarget(target *entity.UploadTarget) error {
	if target.ProductFolder == "" {
		return fmt.Errorf("%w: product_folder", entity.ErrMissingField)
	}
	if target.FileName == "" {
		return fmt.Errorf("%w: file_name", entity.ErrMissingField)
	}
	if size := int64(len(target.Content)); size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, target.FileName, size, v.cfg.MaxFileSize)
	}
	return nil
}

// ValidateUpload validates multipart file headers before they are read
func (v *Validator) ValidateUpload(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: files", entity.ErrMissingField)
	}

	if len(files) > v.cfg.MaxFileCount {
		return fmt.Errorf("%w: maximum %d files allowed, got %d", entity.ErrTooManyFiles, v.cfg.MaxFileCount, len(files))
	}

	return nil
}

// SanitizeFilename strips any client-side directory from an uploaded name.
// The rest of the name is kept: it addresses the object in the folder.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	if filename == "." || filename == "/" {
		return ""
	}
	return filename
}
