package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"informers/internal/coalesce"
	"informers/internal/formatting"
	"informers/internal/reflector"
	"informers/pkg/logging"
)

const metricsShutdownTimeout = 5 * time.Second

// runWatch runs the reflector, the consumer and the optional metrics server
// until ctx is cancelled or one of them fails.
func runWatch(ctx context.Context, s *Services) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// The consumer drains what is left and exits once the queue is shut down.
		defer s.Queue.Shutdown()
		return s.Reflector.Run(gctx)
	})

	g.Go(func() error {
		return consume(s.Queue, s.Printer)
	})

	if s.MetricsAddress != "" {
		serveMetrics(gctx, g, s.MetricsAddress, s.Gatherer)
	}

	logging.Info("Watch", "Watching %s. Press Ctrl+C to stop.", s.Name)
	if err := g.Wait(); err != nil {
		return err
	}
	logging.Info("Watch", "Stopped")
	return nil
}

// consume prints deltas until the queue is shut down and drained. Buffering
// printers are flushed whenever the queue runs empty.
func consume(q *DeltaQueue, p formatting.Printer) error {
	for {
		d, err := q.Get(context.Background())
		if errors.Is(err, coalesce.ErrShutdown) {
			return p.Flush()
		}
		if err != nil {
			return err
		}

		if err := p.PrintDelta(d); err != nil {
			q.Shutdown()
			return fmt.Errorf("failed to print delta: %w", err)
		}
		if q.Len() == 0 {
			if err := p.Flush(); err != nil {
				q.Shutdown()
				return fmt.Errorf("failed to print deltas: %w", err)
			}
		}
	}
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, gatherer prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logging.Info("Metrics", "Serving metrics on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// runList performs one listing and prints it as a table.
func runList(ctx context.Context, s *Services, w io.Writer, noHeaders bool) error {
	listCtx := ctx
	if s.ListOptions.Timeout > 0 {
		var cancel context.CancelFunc
		listCtx, cancel = context.WithTimeout(ctx, s.ListOptions.Timeout)
		defer cancel()
	}

	objs, err := s.Lister.List(listCtx, s.ListOptions)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", s.Name, &reflector.ListError{Err: err})
	}
	logging.Debug("List", "Listed %d objects of %s", len(objs), s.Name)

	return formatting.PrintSnapshot(w, objs, noHeaders)
}
