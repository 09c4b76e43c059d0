package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/entity"
)

func newTestValidator() *Validator {
	return NewFileValidator(config.FileUploadConfig{MaxFileSize: 8, MaxFileCount: 2, MaxUploadSize: 64, Workers: 1})
}

func TestValidateBatch(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateBatch("  ", 1); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("blank folder: %v", err)
	}
	if err := v.ValidateBatch("oak_tables", 0); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("no files: %v", err)
	}
	if err := v.ValidateBatch("oak_tables", 3); !errors.Is(err, entity.ErrTooManyFiles) {
		t.Errorf("too many files: %v", err)
	}
	if err := v.ValidateBatch("oak_tables", 2); err != nil {
		t.Errorf("valid batch: %v", err)
	}
}

func TestValidateTarget(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateTarget(&entity.UploadTarget{ProductFolder: "f"})
	if !errors.Is(err, entity.ErrMissingField) || !strings.Contains(err.Error(), "file_name") {
		t.Errorf("missing name: %v", err)
	}

	err = v.ValidateTarget(&entity.UploadTarget{ProductFolder: "f", FileName: "a", Content: []byte("123456789")})
	if !errors.Is(err, entity.ErrFileTooLarge) {
		t.Errorf("too large: %v", err)
	}

	if err := v.ValidateTarget(&entity.UploadTarget{ProductFolder: "f", FileName: "a", Content: []byte("ok")}); err != nil {
		t.Errorf("valid target: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"chair (1).jpg":           "chair (1).jpg",
		"../../etc/passwd":        "passwd",
		`C:\Users\me\catalog.pdf`: "catalog.pdf",
		"":                        "",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
