// Package logging provides the structured logging used across informers.
//
// It is a thin layer over Go's standard slog package that tags every entry
// with a subsystem and, for errors, an error attribute.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Reflector", "Listed %d objects", n)
//	logging.Debug("Queue", "Coalesced update for %s", key)
//	logging.Warn("Config", "No config file at %s, using defaults", path)
//	logging.Error("Reflector", err, "List failed, retrying in %v", delay)
//
// # Subsystems
//
//   - Bootstrap: application initialization and startup
//   - Config: configuration loading and validation
//   - Reflector: list/diff/emit passes
//   - Lister: Kubernetes API listing
//   - Consumer: delta delivery to the output
//   - Metrics: the Prometheus endpoint
//
// # Controller-Runtime Integration
//
// Init installs a logr bridge over the same slog handler as the
// controller-runtime logger, so client library logs share the configured
// level and output.
package logging
