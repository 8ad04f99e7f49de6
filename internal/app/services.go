package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/wait"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"informers/internal/coalesce"
	"informers/internal/config"
	"informers/internal/formatting"
	"informers/internal/lister"
	"informers/internal/reflector"
	"informers/pkg/logging"
)

// DeltaQueue is the queue between the reflector and the consumer.
type DeltaQueue = coalesce.Queue[reflector.Key, reflector.Delta]

// Services holds the wired components of a running application.
type Services struct {
	Name           string
	Lister         reflector.Lister
	ListOptions    reflector.ListOptions
	Queue          *DeltaQueue
	Reflector      *reflector.Reflector
	Printer        formatting.Printer
	Gatherer       prometheus.Gatherer
	MetricsAddress string
}

// InitializeServices builds all components from cfg.InformerConfig.
func InitializeServices(cfg *Config) (*Services, error) {
	ic := cfg.InformerConfig
	name := ic.ReflectorName()

	l := cfg.Lister
	if l == nil {
		gvk, err := ic.GroupVersionKind()
		if err != nil {
			return nil, err
		}
		restConfig, err := lister.RestConfig(cfg.KubeContext)
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes config: %w", err)
		}
		l, err = lister.New(restConfig, gvk, lister.Mode(ic.Client))
		if err != nil {
			return nil, err
		}
	}

	registry, gatherer := cfg.Registry, cfg.Gatherer
	if registry == nil {
		registry, gatherer = metrics.Registry, metrics.Registry
	}
	if gatherer == nil {
		if g, ok := registry.(prometheus.Gatherer); ok {
			gatherer = g
		}
	}
	m, err := reflector.NewMetrics(registry, name)
	if err != nil {
		return nil, err
	}

	q := coalesce.New[reflector.Key, reflector.Delta](coalesce.WithCapacity(ic.QueueCapacity))
	depth := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "informers_queue_depth",
		Help:        "Number of distinct keys waiting in the delivery queue.",
		ConstLabels: prometheus.Labels{"reflector": name},
	}, func() float64 { return float64(q.Len()) })
	if err := registry.Register(depth); err != nil {
		return nil, fmt.Errorf("failed to register queue metrics: %w", err)
	}

	printer, err := formatting.NewPrinter(cfg.Output, cfg.Stdout)
	if err != nil {
		return nil, err
	}

	listOptions := reflector.ListOptions{
		Namespace: ic.Namespace,
		Labels:    labels.Set(ic.Labels),
		Fields:    fields.Set(ic.Fields),
		Timeout:   ic.RequestTimeout,
	}

	r := reflector.New(l, q, reflector.Options{
		Name:         name,
		ListOptions:  listOptions,
		ResyncPeriod: ic.ResyncPeriod,
		ResyncJitter: ic.ResyncJitter,
		Backoff:      backoffFromConfig(ic.Backoff),
		Metrics:      m,
	})

	logging.Debug("Bootstrap", "Initialized reflector %s (client %s, queue capacity %d)", name, ic.Client, ic.QueueCapacity)

	return &Services{
		Name:           name,
		Lister:         l,
		ListOptions:    listOptions,
		Queue:          q,
		Reflector:      r,
		Printer:        printer,
		Gatherer:       gatherer,
		MetricsAddress: ic.MetricsAddress,
	}, nil
}

func backoffFromConfig(b config.BackoffConfig) wait.Backoff {
	backoff := reflector.DefaultBackoff
	backoff.Duration = b.Initial
	backoff.Cap = b.Max
	backoff.Factor = b.Factor
	backoff.Jitter = b.Jitter
	return backoff
}
