package app

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"informers/internal/config"
	"informers/internal/formatting"
	"informers/internal/reflector"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// LogLevel is debug, info, warn or error; empty means info. Debug wins.
	LogLevel string

	// Custom configuration file (optional)
	// When empty, ~/.config/informers/config.yaml is used if present
	ConfigPath string

	// KubeContext selects a kubeconfig context; empty uses the current one.
	KubeContext string

	// Namespace overrides the namespace from the configuration file when
	// NamespaceSet is true. An empty Namespace then means all namespaces.
	Namespace    string
	NamespaceSet bool

	// Output settings
	Output    formatting.OutputFormat
	NoHeaders bool
	Stdout    io.Writer
	LogOutput io.Writer

	// InformerConfig, when set, is used instead of loading ConfigPath.
	InformerConfig *config.InformerConfig

	// Lister, when set, replaces the Kubernetes lister.
	Lister reflector.Lister

	// Registry receives the metrics; defaults to controller-runtime's
	// global registry. Gatherer defaults to Registry when it is one.
	Registry prometheus.Registerer
	Gatherer prometheus.Gatherer
}

// NewConfig creates a new application configuration
func NewConfig(configPath string, debug bool) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
		Output:     formatting.FormatConsole,
	}
}
