// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/honeydid/honeydid/internal/config"
	cryptoService "github.com/honeydid/honeydid/internal/crypto/service"
	documentHTTP "github.com/honeydid/honeydid/internal/document/http"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
	exportService "github.com/honeydid/honeydid/internal/export/service"
	"github.com/honeydid/honeydid/internal/http"
	"github.com/honeydid/honeydid/internal/metrics"
	"github.com/honeydid/honeydid/internal/storage"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	kmsService      cryptoService.KMSService
	kmsKeeper       cryptoService.KMSKeeper
	payloadCipher   cryptoService.PayloadCipher

	// Storage
	secretStore   storage.SecretStore
	envelope      *storage.Envelope
	passwordStore *storage.PasswordStore
	settingsStore *storage.SettingsStore

	// Export services
	renderer *exportService.Renderer
	exporter *exportService.Exporter
	importer *exportService.Importer
	printer  *exportService.Printer

	// Use Cases
	documentUseCase documentUseCase.DocumentUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	kmsServiceInit      sync.Once
	payloadCipherInit   sync.Once
	secretStoreInit     sync.Once
	envelopeInit        sync.Once
	passwordStoreInit   sync.Once
	settingsStoreInit   sync.Once
	rendererInit        sync.Once
	exporterInit        sync.Once
	importerInit        sync.Once
	printerInit         sync.Once
	documentUseCaseInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// Logs go to stderr so command output on stdout stays clean.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// PayloadCipher returns the payload cipher shared by the envelope and the export services.
func (c *Container) PayloadCipher() cryptoService.PayloadCipher {
	c.payloadCipherInit.Do(func() {
		c.payloadCipher = cryptoService.NewPayloadCipher(cryptoService.NewKeyDeriver())
	})
	return c.payloadCipher
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.setInitError("metricsProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsProvider"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.setInitError("businessMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("businessMetrics"); storedErr != nil {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// SecretStore returns the store holding the local secret.
func (c *Container) SecretStore(ctx context.Context) (storage.SecretStore, error) {
	var err error
	c.secretStoreInit.Do(func() {
		c.secretStore, err = c.initSecretStore(ctx)
		if err != nil {
			c.setInitError("secretStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("secretStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.secretStore, nil
}

// Envelope returns the at-rest envelope for the working document.
func (c *Container) Envelope(ctx context.Context) (*storage.Envelope, error) {
	var err error
	c.envelopeInit.Do(func() {
		c.envelope, err = c.initEnvelope(ctx)
		if err != nil {
			c.setInitError("envelope", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("envelope"); storedErr != nil {
		return nil, storedErr
	}
	return c.envelope, nil
}

// PasswordStore returns the app password store.
func (c *Container) PasswordStore() (*storage.PasswordStore, error) {
	var err error
	c.passwordStoreInit.Do(func() {
		c.passwordStore, err = c.initPasswordStore()
		if err != nil {
			c.setInitError("passwordStore", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("passwordStore"); storedErr != nil {
		return nil, storedErr
	}
	return c.passwordStore, nil
}

// SettingsStore returns the settings store.
func (c *Container) SettingsStore() *storage.SettingsStore {
	c.settingsStoreInit.Do(func() {
		c.settingsStore = storage.NewSettingsStore(c.config.DataDir)
	})
	return c.settingsStore
}

// Renderer returns the HTML template renderer.
func (c *Container) Renderer() (*exportService.Renderer, error) {
	var err error
	c.rendererInit.Do(func() {
		c.renderer, err = exportService.NewRenderer()
		if err != nil {
			c.setInitError("renderer", fmt.Errorf("failed to load templates: %w", err))
		}
	})
	if storedErr := c.initError("renderer"); storedErr != nil {
		return nil, storedErr
	}
	return c.renderer, nil
}

// Exporter returns the export service.
func (c *Container) Exporter() (*exportService.Exporter, error) {
	var err error
	c.exporterInit.Do(func() {
		var renderer *exportService.Renderer
		renderer, err = c.Renderer()
		if err != nil {
			c.setInitError("exporter", err)
			return
		}
		c.exporter = exportService.NewExporter(c.PayloadCipher(), renderer, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("exporter"); storedErr != nil {
		return nil, storedErr
	}
	return c.exporter, nil
}

// Importer returns the import service.
func (c *Container) Importer() *exportService.Importer {
	c.importerInit.Do(func() {
		c.importer = exportService.NewImporter(c.PayloadCipher(), c.Logger())
	})
	return c.importer
}

// Printer returns the print service.
func (c *Container) Printer() (*exportService.Printer, error) {
	var err error
	c.printerInit.Do(func() {
		var renderer *exportService.Renderer
		renderer, err = c.Renderer()
		if err != nil {
			c.setInitError("printer", err)
			return
		}
		c.printer = exportService.NewPrinter(renderer)
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("printer"); storedErr != nil {
		return nil, storedErr
	}
	return c.printer, nil
}

// DocumentUseCase returns the document use case, decorated with metrics when enabled.
func (c *Container) DocumentUseCase(ctx context.Context) (documentUseCase.DocumentUseCase, error) {
	var err error
	c.documentUseCaseInit.Do(func() {
		c.documentUseCase, err = c.initDocumentUseCase(ctx)
		if err != nil {
			c.setInitError("documentUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("documentUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// HTTPServer returns the local API server with its router configured. Middleware background work
// stops when ctx is done.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.setInitError("httpServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("httpServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.setInitError("metricsServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.kmsKeeper != nil {
		if err := c.kmsKeeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("kms keeper close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initSecretStore picks the OS keyring unless the file backend is configured or no keyring is
// available, then wraps the result with a KMS keeper when a key URI is set.
func (c *Container) initSecretStore(ctx context.Context) (storage.SecretStore, error) {
	logger := c.Logger()

	var store storage.SecretStore
	switch c.config.KeyringBackend {
	case config.KeyringBackendFile:
		store = storage.NewFileSecretStore(c.config.DataDir, storage.LocalKeyFileName)
	case config.KeyringBackendAuto, "":
		ring, err := storage.OpenKeyringSecretStore(c.config.KeyringService, c.config.KeyringUser)
		if err != nil {
			logger.Warn("OS keyring unavailable, storing local secret in the data directory",
				slog.Any("error", err))
			store = storage.NewFileSecretStore(c.config.DataDir, storage.LocalKeyFileName)
		} else {
			store = ring
		}
	default:
		return nil, fmt.Errorf("unsupported keyring backend: %s", c.config.KeyringBackend)
	}

	if c.config.KMSKeyURI == "" {
		return store, nil
	}

	keeper, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.kmsKeeper = keeper
	c.mu.Unlock()

	logger.Info("local secret protected by KMS keeper")
	return storage.NewKeeperSecretStore(store, keeper), nil
}

func (c *Container) initEnvelope(ctx context.Context) (*storage.Envelope, error) {
	store, err := c.SecretStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for envelope: %w", err)
	}

	keys := storage.NewLocalKeyProvider(store, c.Logger())
	return storage.NewEnvelope(c.config.DataDir, keys, c.PayloadCipher(), c.Logger()), nil
}

func (c *Container) initPasswordStore() (*storage.PasswordStore, error) {
	hasher, err := storage.NewPasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	return storage.NewPasswordStore(c.config.DataDir, hasher), nil
}

// initDocumentUseCase creates the document use case with all its dependencies.
func (c *Container) initDocumentUseCase(ctx context.Context) (documentUseCase.DocumentUseCase, error) {
	envelope, err := c.Envelope(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope for document use case: %w", err)
	}

	passwords, err := c.PasswordStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get password store for document use case: %w", err)
	}

	exporter, err := c.Exporter()
	if err != nil {
		return nil, fmt.Errorf("failed to get exporter for document use case: %w", err)
	}

	printer, err := c.Printer()
	if err != nil {
		return nil, fmt.Errorf("failed to get printer for document use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for document use case: %w", err)
	}

	useCase := documentUseCase.NewDocumentUseCase(
		envelope,
		passwords,
		c.SettingsStore(),
		exporter,
		c.Importer(),
		printer,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		return documentUseCase.NewDocumentUseCaseWithMetrics(useCase, businessMetrics), nil
	}
	return useCase, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	useCase, err := c.DocumentUseCase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get document use case for http server: %w", err)
	}

	envelope, err := c.Envelope(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(envelope, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		ctx,
		c.config,
		documentHTTP.NewDocumentHandler(useCase, logger),
		documentHTTP.NewExportHandler(useCase, logger),
		documentHTTP.NewAccountHandler(useCase, logger),
		metricsProvider,
	)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
