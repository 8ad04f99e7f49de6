// Package app provides application bootstrap and lifecycle management for
// informers.
//
// The package follows a two-phase pattern:
//
//  1. Bootstrap (NewApplication): configure logging, load and validate the
//     configuration file, resolve cluster access, and wire the lister,
//     coalescing queue, reflector, metrics and printer into Services.
//  2. Execution: Run starts the watch loop, ListOnce performs a single
//     listing.
//
// # Watch loop
//
// Run starts three goroutines under one errgroup:
//
//   - the reflector, which lists, diffs and enqueues deltas until the context
//     is cancelled; the queue is shut down when it returns
//   - the consumer, which takes deltas off the queue and prints them, and
//     exits once the queue is shut down and drained
//   - the metrics server, only when metricsAddress is configured
//
// A failure in any of them cancels the others.
//
// Example usage:
//
//	cfg := app.NewConfig(configPath, debug)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
package app
