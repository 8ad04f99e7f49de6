package reflector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"

	"informers/pkg/logging"
)

const (
	DefaultResyncPeriod   = 60 * time.Second
	DefaultRequestTimeout = 10 * time.Second
)

// DefaultBackoff is used for failed list calls when Options.Backoff is unset.
var DefaultBackoff = wait.Backoff{
	Duration: time.Second,
	Factor:   2,
	Jitter:   0.5,
	Steps:    math.MaxInt32,
	Cap:      5 * time.Minute,
}

// Options configures a Reflector.
type Options struct {
	// Name identifies the reflector in logs and metrics.
	Name string

	// ListOptions is passed verbatim to every list call.
	// ListOptions.Timeout defaults to DefaultRequestTimeout.
	ListOptions ListOptions

	// ResyncPeriod is the pause between the end of one pass and the start
	// of the next. Defaults to DefaultResyncPeriod.
	ResyncPeriod time.Duration

	// ResyncJitter, if positive, stretches each pause by up to that
	// fraction of ResyncPeriod.
	ResyncJitter float64

	// Backoff controls retries after a failed list. Defaults to DefaultBackoff.
	Backoff wait.Backoff

	// Metrics is optional.
	Metrics *Metrics
}

// Reflector mirrors a listable collection into a DeltaQueue.
type Reflector struct {
	name         string
	lister       Lister
	queue        DeltaQueue
	listOptions  ListOptions
	resyncPeriod time.Duration
	resyncJitter float64
	metrics      *Metrics

	// initialBackoff is restored after every successful list
	initialBackoff wait.Backoff
	backoff        wait.Backoff

	// mu serialises passes; snapshot is only read or written under it
	mu       sync.Mutex
	snapshot map[Key]metav1.Object
}

// New creates a reflector that lists through lister and emits into queue.
func New(lister Lister, queue DeltaQueue, opts Options) *Reflector {
	if opts.Name == "" {
		opts.Name = "default"
	}
	if opts.ResyncPeriod <= 0 {
		opts.ResyncPeriod = DefaultResyncPeriod
	}
	if opts.ListOptions.Timeout <= 0 {
		opts.ListOptions.Timeout = DefaultRequestTimeout
	}
	if opts.Backoff.Duration <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Backoff.Steps <= 0 {
		opts.Backoff.Steps = math.MaxInt32
	}

	return &Reflector{
		name:           opts.Name,
		lister:         lister,
		queue:          queue,
		listOptions:    opts.ListOptions,
		resyncPeriod:   opts.ResyncPeriod,
		resyncJitter:   opts.ResyncJitter,
		metrics:        opts.Metrics,
		initialBackoff: opts.Backoff,
		backoff:        opts.Backoff,
		snapshot:       make(map[Key]metav1.Object),
	}
}

// Run reconciles until ctx is cancelled, in which case it returns nil.
// A failed pass never stops the loop; the only other way out is a queue
// that no longer accepts deltas, whose error is returned.
func (r *Reflector) Run(ctx context.Context) error {
	logging.Info("Reflector", "[%s] Starting, resync every %v in %s", r.name, r.resyncPeriod, namespaceDisplay(r.listOptions.Namespace))

	for {
		n, err := r.Sync(ctx)
		if ctx.Err() != nil {
			logging.Info("Reflector", "[%s] Stopping", r.name)
			return nil
		}

		delay, err := r.nextDelay(n, err)
		if err != nil {
			logging.Error("Reflector", err, "[%s] Stopping, deltas can no longer be delivered", r.name)
			return err
		}

		if !sleep(ctx, delay) {
			logging.Info("Reflector", "[%s] Stopping", r.name)
			return nil
		}
	}
}

// nextDelay returns how long to wait after a pass that emitted n deltas and
// ended with err. A failed list steps the backoff; a successful pass resets
// it and waits the resync period. Any other error is returned unchanged and
// ends the loop.
func (r *Reflector) nextDelay(n int, err error) (time.Duration, error) {
	var listErr *ListError
	switch {
	case errors.As(err, &listErr):
		delay := r.backoff.Step()
		logging.Warn("Reflector", "[%s] List failed, retrying in %v: %v", r.name, delay, listErr.Err)
		return delay, nil
	case err != nil:
		return 0, err
	}

	r.backoff = r.initialBackoff
	delay := r.resyncPeriod
	if r.resyncJitter > 0 {
		delay = wait.Jitter(delay, r.resyncJitter)
	}
	logging.Debug("Reflector", "[%s] Pass emitted %d deltas, next in %v", r.name, n, delay)
	return delay, nil
}

// Sync runs a single reconciliation pass and returns the number of deltas
// emitted. A list failure is returned as *ListError and leaves the snapshot
// unchanged.
func (r *Reflector) Sync(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The list call is only bounded by its own timeout; cancellation of ctx
	// is observed once it returns.
	listCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.listOptions.Timeout)
	start := time.Now()
	objs, err := r.lister.List(listCtx, r.listOptions)
	cancel()
	r.metrics.observeList(time.Since(start), err)

	if err != nil {
		return 0, &ListError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	observedAt := time.Now()
	deltas := Diff(r.snapshot, Index(objs))

	emitted := 0
	for _, d := range deltas {
		d.ObservedAt = observedAt
		key := d.Key()
		if d.Type == Deleted {
			delete(r.snapshot, key)
		} else {
			r.snapshot[key] = d.New
		}

		if err := r.queue.Put(ctx, key, d); err != nil {
			r.metrics.setSnapshotSize(len(r.snapshot))
			return emitted, fmt.Errorf("failed to enqueue %s delta for %s: %w", d.Type, key, err)
		}
		emitted++
		r.metrics.observeDelta(d.Type)
		logging.Debug("Reflector", "[%s] Emitted %s", r.name, d)
	}

	r.metrics.setSnapshotSize(len(r.snapshot))
	return emitted, nil
}

// Len returns the number of objects in the current snapshot.
func (r *Reflector) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshot)
}

// sleep waits for d or until ctx is done. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func namespaceDisplay(ns string) string {
	if ns == "" {
		return "all namespaces"
	}
	return "namespace " + ns
}
