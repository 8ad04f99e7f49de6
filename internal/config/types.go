package config

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// InformerConfig is the top-level configuration structure for informers.
type InformerConfig struct {
	// APIVersion and Kind name the collection to watch, e.g. v1/Pod or apps/v1/Deployment.
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`

	// Client is "runtime" (any kind, unstructured) or "typed" (core kinds only).
	Client string `yaml:"client,omitempty"`

	// Namespace to watch; empty watches all namespaces.
	Namespace string `yaml:"namespace,omitempty"`

	// Labels and Fields are exact-match selectors.
	Labels map[string]string `yaml:"labels,omitempty"`
	Fields map[string]string `yaml:"fields,omitempty"`

	ResyncPeriod   time.Duration `yaml:"resyncPeriod"`
	ResyncJitter   float64       `yaml:"resyncJitter"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// QueueCapacity bounds the delivery queue; 0 means unbounded.
	QueueCapacity int `yaml:"queueCapacity"`

	Backoff BackoffConfig `yaml:"backoff"`

	// MetricsAddress enables the Prometheus endpoint when set, e.g. ":8080".
	MetricsAddress string `yaml:"metricsAddress,omitempty"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"logFormat,omitempty"`
}

// BackoffConfig controls retries after a failed list.
type BackoffConfig struct {
	Initial time.Duration `yaml:"initial"`
	Max     time.Duration `yaml:"max"`
	Factor  float64       `yaml:"factor"`
	Jitter  float64       `yaml:"jitter"`
}

const (
	ClientRuntime = "runtime"
	ClientTyped   = "typed"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// GroupVersionKind parses APIVersion and Kind.
func (c InformerConfig) GroupVersionKind() (schema.GroupVersionKind, error) {
	gv, err := schema.ParseGroupVersion(c.APIVersion)
	if err != nil {
		return schema.GroupVersionKind{}, fmt.Errorf("invalid apiVersion %q: %w", c.APIVersion, err)
	}
	return gv.WithKind(c.Kind), nil
}

// ReflectorName is a short name for logs and metrics, e.g. "v1/Pod".
func (c InformerConfig) ReflectorName() string {
	return c.APIVersion + "/" + c.Kind
}
