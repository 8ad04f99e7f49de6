package config

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks the whole configuration and reports every problem at once.
func Validate(c InformerConfig) error {
	var errs ValidationErrors

	if c.Kind == "" {
		errs.Add("kind", "is required")
	}
	if _, err := c.GroupVersionKind(); err != nil {
		errs.Add("apiVersion", err.Error(), c.APIVersion)
	}

	switch c.Client {
	case "", ClientRuntime, ClientTyped:
	default:
		errs.Add("client", fmt.Sprintf("must be %q or %q", ClientRuntime, ClientTyped), c.Client)
	}

	if c.Namespace != "" {
		for _, msg := range validation.IsDNS1123Label(c.Namespace) {
			errs.Add("namespace", msg, c.Namespace)
		}
	}

	for k, v := range c.Labels {
		for _, msg := range validation.IsQualifiedName(k) {
			errs.Add("labels."+k, msg, k)
		}
		for _, msg := range validation.IsValidLabelValue(v) {
			errs.Add("labels."+k, msg, v)
		}
	}
	for k := range c.Fields {
		if strings.TrimSpace(k) == "" {
			errs.Add("fields", "field names must not be empty")
		}
	}

	if c.ResyncPeriod <= 0 {
		errs.Add("resyncPeriod", "must be positive", c.ResyncPeriod)
	}
	if c.ResyncJitter < 0 {
		errs.Add("resyncJitter", "must not be negative", c.ResyncJitter)
	}
	if c.RequestTimeout <= 0 {
		errs.Add("requestTimeout", "must be positive", c.RequestTimeout)
	}
	if c.QueueCapacity < 0 {
		errs.Add("queueCapacity", "must not be negative", c.QueueCapacity)
	}

	if c.Backoff.Initial <= 0 {
		errs.Add("backoff.initial", "must be positive", c.Backoff.Initial)
	}
	if c.Backoff.Max < c.Backoff.Initial {
		errs.Add("backoff.max", "must not be smaller than backoff.initial", c.Backoff.Max)
	}
	if c.Backoff.Factor < 1 {
		errs.Add("backoff.factor", "must be at least 1", c.Backoff.Factor)
	}
	if c.Backoff.Jitter < 0 {
		errs.Add("backoff.jitter", "must not be negative", c.Backoff.Jitter)
	}

	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		errs.Add("logFormat", fmt.Sprintf("must be %q or %q", LogFormatText, LogFormatJSON), c.LogFormat)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
