package product

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/pkg/formatter"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/pkg/response"
	"github.com/futig/product-search/internal/pkg/validator"
	"github.com/futig/product-search/internal/usecase/index"
	"github.com/futig/product-search/internal/usecase/search"
	"github.com/futig/product-search/internal/usecase/upload"
	pkghttp "github.com/futig/product-search/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	uploadUC  UploadUsecase
	indexUC   IndexUsecase
	searchUC  SearchUsecase
	formatter FormatterFactory
	validator *validator.Validator
	cfg       config.FileUploadConfig
}

func NewHandler(
	uploadUC UploadUsecase,
	indexUC IndexUsecase,
	searchUC SearchUsecase,
	formatter FormatterFactory,
	validator *validator.Validator,
	cfg config.FileUploadConfig,
) *Handler {
	return &Handler{
		uploadUC:  uploadUC,
		indexUC:   indexUC,
		searchUC:  searchUC,
		formatter: formatter,
		validator: validator,
		cfg:       cfg,
	}
}

// Upload handles POST /api/upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Upload")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid form data or size too large", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	folder := r.FormValue("product_folder")
	headers := r.MultipartForm.File["files"]
	if err := h.validator.ValidateUpload(headers); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	files := upload.ReadMultipartFiles(ctx, headers)

	outcome, err := h.uploadUC.UploadBatch(ctx, folder, files)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "upload batch finished",
		zap.Int("succeeded", outcome.Succeeded),
		zap.Int("failed", outcome.Failed),
	)

	response.Success(w, &entity.UploadResponse{
		ProductFolder: strings.TrimSpace(folder),
		UploadOutcome: *outcome,
		Notices:       upload.Notices(outcome),
	})
}

// UpdateContent handles POST /api/update-content
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateContent")

	var req entity.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	reply, err := h.indexUC.Refresh(ctx, req.ProductFolder, req.Specific)
	if err != nil {
		h.handleBackendError(ctx, w, index.FailureNotice(err), err)
		return
	}

	response.Success(w, &entity.UpdateContentResponse{
		Notice:          index.SuccessNotice(),
		BackendResponse: reply,
	})
}

// Search handles GET /api/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Search")

	view, ok := h.runSearch(ctx, w, r)
	if !ok {
		return
	}

	response.Success(w, &entity.SearchAPIResponse{
		SearchView: view,
		Notice:     search.Notice(view),
	})
}

// ExportSearch handles GET /api/search/export
func (h *Handler) ExportSearch(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportSearch")

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}
	f, err := h.formatter.Create(format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	view, ok := h.runSearch(ctx, w, r)
	if !ok {
		return
	}

	data, err := f.Format(view)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to export search results", err)
		return
	}

	ctxzap.Info(ctx, "search results exported",
		zap.String("format", string(format)),
		zap.Int("size", len(data)),
	)

	response.Attachment(w, f.ContentType(), formatter.FileName(f), data)
}

func (h *Handler) runSearch(ctx context.Context, w http.ResponseWriter, r *http.Request) (*entity.SearchView, bool) {
	query := r.URL.Query().Get("query")
	if search.Decide(query, true) != search.ActionSearch {
		h.respondError(ctx, w, http.StatusBadRequest, search.MsgEmptyQuery, nil)
		return nil, false
	}

	view, err := h.searchUC.Search(ctx, query)
	if err != nil {
		h.handleBackendError(ctx, w, search.FailureNotice(err), err)
		return nil, false
	}
	return view, true
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message)
	}
	response.Error(w, status, message)
}

// handleBackendError reports a failed backend call with its user-facing notice.
func (h *Handler) handleBackendError(ctx context.Context, w http.ResponseWriter, notice entity.Notice, err error) {
	var httpErr *pkghttp.HTTPError
	var netErr *pkghttp.NetworkError
	switch {
	case errors.As(err, &httpErr), errors.As(err, &netErr):
		h.respondError(ctx, w, http.StatusBadGateway, notice.Text, err)
	default:
		h.handleUsecaseError(ctx, w, err)
	}
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	} else if errors.Is(err, entity.ErrInvalidFile) || errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrTooManyFiles) {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
