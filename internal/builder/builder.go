package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/product-search/internal/api"
	"github.com/futig/product-search/internal/api/console"
	"github.com/futig/product-search/internal/api/product"
	"github.com/futig/product-search/internal/config"
	"github.com/futig/product-search/internal/integration/catalog"
	"github.com/futig/product-search/internal/integration/telegramfile"
	"github.com/futig/product-search/internal/pkg/formatter"
	"github.com/futig/product-search/internal/pkg/validator"
	"github.com/futig/product-search/internal/telegram"
	"github.com/futig/product-search/internal/telegram/state"
	"github.com/futig/product-search/internal/usecase/index"
	"github.com/futig/product-search/internal/usecase/search"
	"github.com/futig/product-search/internal/usecase/upload"
	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"
)

// Backend is everything the workflows need from the search backend
type Backend interface {
	upload.Backend
	index.Backend
	search.Backend
}

// Usecases groups the three client workflows
type Usecases struct {
	Validator *validator.Validator
	Upload    *upload.Usecase
	Index     *index.Usecase
	Search    *search.Usecase
	Formatter *formatter.Factory
}

// Runtime is the shared part of every entry point
type Runtime struct {
	Config   *config.Config
	Logger   *zap.Logger
	Usecases *Usecases
}

// Build assembles the HTTP application
func Build(environment string) (*App, error) {
	rt, err := BuildRuntime(environment)
	if err != nil {
		return nil, err
	}
	cfg, logger, uc := rt.Config, rt.Logger, rt.Usecases

	consoleHandler := console.NewHandler(uc.Upload, uc.Index, uc.Search, uc.Validator, cfg.FileUploadCfg)
	productHandler := product.NewHandler(uc.Upload, uc.Index, uc.Search, uc.Formatter, uc.Validator, cfg.FileUploadCfg)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(consoleHandler, productHandler, cfg.CORSOrigins, logger)
	logger.Info("HTTP router configured")

	// Uploads and searches wait on the backend for as long as it takes,
	// so the server does not cap request or response duration.
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot(environment string) (telegram.Bot, *zap.Logger, error) {
	rt, err := BuildRuntime(environment)
	if err != nil {
		return nil, nil, err
	}
	cfg, logger, uc := rt.Config, rt.Logger, rt.Usecases

	if err := cfg.ValidateTelegram(); err != nil {
		return nil, nil, fmt.Errorf("telegram configuration: %w", err)
	}

	storage := state.NewMemoryStorage(cfg.TelegramCfg.StateTTL)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, storage, telegram.Dependencies{
		Upload:      uc.Upload,
		Index:       uc.Index,
		Search:      uc.Search,
		Formatter:   uc.Formatter,
		Files:       telegramfile.NewConnector(logger),
		MaxFileSize: cfg.FileUploadCfg.MaxFileSize,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// BuildRuntime loads configuration and wires the workflows against the
// configured backend.
func BuildRuntime(environment string) (*Runtime, error) {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("api_endpoint", cfg.APICfg.Url),
	)

	if key := cfg.ExportCfg.UnidocLicenseKey; key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			logger.Warn("unidoc license rejected, docx export may fail", zap.Error(err))
		}
	}

	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Usecases: NewUsecases(cfg, newBackend(cfg, logger), logger),
	}, nil
}

// NewUsecases wires the workflows to a backend
func NewUsecases(cfg *config.Config, backend Backend, logger *zap.Logger) *Usecases {
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)

	uc := &Usecases{
		Validator: fileValidator,
		Upload:    upload.NewUsecase(backend, fileValidator, cfg.FileUploadCfg.Workers, logger),
		Index:     index.NewUsecase(backend, logger),
		Search:    search.NewUsecase(backend, logger),
		Formatter: formatter.NewFactory(),
	}
	logger.Info("Use cases initialized",
		zap.Int("upload_workers", cfg.FileUploadCfg.Workers),
	)

	return uc
}

func newBackend(cfg *config.Config, logger *zap.Logger) Backend {
	if cfg.EnableMocks {
		logger.Info("Using mock search backend")
		return catalog.NewMockConnector(logger)
	}

	logger.Info("Using real search backend")
	return catalog.NewConnector(cfg.APICfg, logger)
}
