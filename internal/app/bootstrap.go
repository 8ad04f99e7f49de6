package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"informers/internal/config"
	"informers/pkg/logging"
)

// Application represents the main application structure that bootstraps
// and runs informers.
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with
// the provided configuration. This function performs the complete
// bootstrap sequence:
//
//  1. Configures logging based on debug settings
//  2. Loads and validates the informer configuration
//  3. Applies command line overrides
//  4. Initializes the lister, queue, reflector, metrics and printer
//
// Logging goes to stderr unless cfg.LogOutput is set, so stdout carries only
// deltas and listings.
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.LogLevel != "" {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		appLogLevel = level
	}
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	var logOutput io.Writer = os.Stderr
	if cfg.LogOutput != nil {
		logOutput = cfg.LogOutput
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if cfg.InformerConfig == nil {
		informerCfg, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg.InformerConfig = &informerCfg
	}

	if cfg.NamespaceSet {
		cfg.InformerConfig.Namespace = cfg.Namespace
	}
	if err := config.Validate(*cfg.InformerConfig); err != nil {
		return nil, &config.ConfigurationError{
			FilePath:    cfg.ConfigPath,
			ErrorType:   "validation",
			Message:     "invalid configuration after command line overrides",
			Details:     err.Error(),
			Suggestions: []string{"check the values passed with --namespace"},
			Err:         err,
		}
	}

	if cfg.InformerConfig.LogFormat == config.LogFormatJSON {
		logging.Init(appLogLevel, logOutput, logging.FormatJSON)
	}

	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Run watches the configured collection until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	return runWatch(ctx, a.services)
}

// ListOnce lists the collection once and prints it to the configured
// output.
func (a *Application) ListOnce(ctx context.Context) error {
	return runList(ctx, a.services, a.config.Stdout, a.config.NoHeaders)
}

// Services returns the wired components.
func (a *Application) Services() *Services {
	return a.services
}
