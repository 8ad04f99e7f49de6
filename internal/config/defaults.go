package config

import "time"

// GetDefaultConfig returns the configuration used when no file is present:
// pods in the default namespace, relisted every minute.
func GetDefaultConfig() InformerConfig {
	return InformerConfig{
		APIVersion:     "v1",
		Kind:           "Pod",
		Client:         ClientRuntime,
		Namespace:      "default",
		ResyncPeriod:   60 * time.Second,
		ResyncJitter:   0.1,
		RequestTimeout: 10 * time.Second,
		Backoff: BackoffConfig{
			Initial: time.Second,
			Max:     5 * time.Minute,
			Factor:  2,
			Jitter:  0.5,
		},
		LogFormat: LogFormatText,
	}
}
