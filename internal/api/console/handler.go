package console

import (
	"context"
	"net/http"

	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/pkg/logger"
	"github.com/futig/product-search/internal/pkg/validator"
	"github.com/futig/product-search/internal/usecase/index"
	"github.com/futig/product-search/internal/usecase/search"
	"github.com/futig/product-search/internal/usecase/upload"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Handler serves the single-page console. Every action re-renders the whole
// page with its notices; nothing is stored between requests.
type Handler struct {
	uploadUC  UploadUsecase
	indexUC   IndexUsecase
	searchUC  SearchUsecase
	validator *validator.Validator
	cfg       config.FileUploadConfig
}

func NewHandler(
	uploadUC UploadUsecase,
	indexUC IndexUsecase,
	searchUC SearchUsecase,
	validator *validator.Validator,
	cfg config.FileUploadConfig,
) *Handler {
	return &Handler{
		uploadUC:  uploadUC,
		indexUC:   indexUC,
		searchUC:  searchUC,
		validator: validator,
		cfg:       cfg,
	}
}

func (h *Handler) newPage(r *http.Request) *page {
	return &page{
		Folder:       r.FormValue("product_folder"),
		Specific:     r.FormValue("specific") != "",
		Query:        r.FormValue("query"),
		MaxFileCount: h.cfg.MaxFileCount,
	}
}

// Index handles GET /. A changed query searches on its own; the search
// button only adds the empty-query warning.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ConsoleIndex")
	p := h.newPage(r)

	_, submitted := r.URL.Query()["search"]
	switch search.Decide(p.Query, submitted) {
	case search.ActionWarnEmpty:
		p.notify(search.EmptyQueryNotice())
	case search.ActionSearch:
		h.runSearch(ctx, p)
	}

	h.render(ctx, w, http.StatusOK, p)
}

// Upload handles POST /upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ConsoleUpload")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		p := h.newPage(r)
		p.notify(upload.RefusedNotice(err))
		h.render(ctx, w, http.StatusBadRequest, p)
		return
	}
	defer r.MultipartForm.RemoveAll()

	p := h.newPage(r)
	headers := r.MultipartForm.File["files"]

	if err := h.validator.ValidateUpload(headers); err != nil {
		ctxzap.Warn(ctx, "upload refused", zap.Error(err))
		p.notify(upload.RefusedNotice(err))
		h.render(ctx, w, http.StatusOK, p)
		return
	}

	files := upload.ReadMultipartFiles(ctx, headers)

	outcome, err := h.uploadUC.UploadBatch(ctx, p.Folder, files)
	if err != nil {
		p.notify(upload.RefusedNotice(err))
	} else {
		p.notify(upload.Notices(outcome)...)
	}

	h.render(ctx, w, http.StatusOK, p)
}

// UpdateContent handles POST /update-content
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ConsoleUpdateContent")
	p := h.newPage(r)

	reply, err := h.indexUC.Refresh(ctx, p.Folder, p.Specific)
	if err != nil {
		p.notify(index.FailureNotice(err))
	} else {
		p.notify(index.SuccessNotice())
		p.setReply(reply)
	}

	h.render(ctx, w, http.StatusOK, p)
}

func (h *Handler) runSearch(ctx context.Context, p *page) {
	view, err := h.searchUC.Search(ctx, p.Query)
	if err != nil {
		p.notify(search.FailureNotice(err))
		return
	}
	p.View = view
	p.notify(search.Notice(view))
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, p *page) {
	if err := render(w, status, p); err != nil {
		ctxzap.Error(ctx, "failed to render console page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
