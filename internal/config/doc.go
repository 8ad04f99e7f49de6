// Package config loads and validates the informers configuration file.
//
// The file is YAML and every field is optional; missing fields keep the
// values from GetDefaultConfig:
//
//	apiVersion: v1
//	kind: Pod
//	client: runtime
//	namespace: binder-test
//	labels:
//	  app: web
//	fields:
//	  status.phase: Running
//	resyncPeriod: 60s
//	resyncJitter: 0.1
//	requestTimeout: 10s
//	queueCapacity: 0
//	backoff:
//	  initial: 1s
//	  max: 5m
//	  factor: 2
//	  jitter: 0.5
//	metricsAddress: ":8080"
//	logFormat: text
//
// Load errors are returned as *ConfigurationError; validation problems are
// collected into a ValidationErrors value so that all of them are reported
// together.
package config
