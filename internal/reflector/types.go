package reflector

import (
	"context"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
)

// Key identifies an object within one reflector.
type Key = types.NamespacedName

// KeyOf returns the key of obj.
func KeyOf(obj metav1.Object) Key {
	return Key{Namespace: obj.GetNamespace(), Name: obj.GetName()}
}

// DeltaType describes what happened to an object between two passes.
type DeltaType string

const (
	// Added means the object was not in the previous snapshot.
	Added DeltaType = "added"

	// Changed means the object's resourceVersion differs from the snapshot.
	Changed DeltaType = "changed"

	// Deleted means the object is no longer listed.
	Deleted DeltaType = "deleted"
)

// Delta is a single observed change. Old is nil for Added and New is nil
// for Deleted.
type Delta struct {
	Type DeltaType
	Old  metav1.Object
	New  metav1.Object

	// ObservedAt is when the listing that produced the delta returned.
	// Diff leaves it zero; Sync sets it.
	ObservedAt time.Time
}

// Object returns the most recent state carried by the delta.
func (d Delta) Object() metav1.Object {
	if d.New != nil {
		return d.New
	}
	return d.Old
}

// Key returns the key of the object the delta describes.
func (d Delta) Key() Key {
	return KeyOf(d.Object())
}

func (d Delta) String() string {
	switch d.Type {
	case Changed:
		return fmt.Sprintf("%s %s (%s -> %s)", d.Type, d.Key(), d.Old.GetResourceVersion(), d.New.GetResourceVersion())
	default:
		return fmt.Sprintf("%s %s@%s", d.Type, d.Key(), d.Object().GetResourceVersion())
	}
}

// ListOptions scopes a listing. Selectors are kept as sets and only
// rendered through the labels and fields packages.
type ListOptions struct {
	// Namespace restricts the listing; empty means all namespaces.
	Namespace string

	// Labels must all match exactly.
	Labels labels.Set

	// Fields must all match exactly.
	Fields fields.Set

	// Timeout bounds a single list call.
	Timeout time.Duration
}

// LabelSelector renders Labels. Values that are not valid label values are
// rejected instead of being spliced into the selector.
func (o ListOptions) LabelSelector() (labels.Selector, error) {
	if len(o.Labels) == 0 {
		return labels.Everything(), nil
	}
	sel, err := labels.ValidatedSelectorFromSet(o.Labels)
	if err != nil {
		return nil, fmt.Errorf("invalid label selector: %w", err)
	}
	return sel, nil
}

// FieldSelector renders Fields, escaping values.
func (o ListOptions) FieldSelector() fields.Selector {
	if len(o.Fields) == 0 {
		return fields.Everything()
	}
	return fields.SelectorFromSet(o.Fields)
}

// Lister returns the complete current state of the collection in scope.
type Lister interface {
	List(ctx context.Context, opts ListOptions) ([]metav1.Object, error)
}

// ListFunc adapts a function to the Lister interface.
type ListFunc func(ctx context.Context, opts ListOptions) ([]metav1.Object, error)

// List calls f.
func (f ListFunc) List(ctx context.Context, opts ListOptions) ([]metav1.Object, error) {
	return f(ctx, opts)
}

// DeltaQueue receives the deltas of each pass.
type DeltaQueue interface {
	Put(ctx context.Context, key Key, delta Delta) error
}

// ListError wraps a failed list call. The snapshot is left untouched.
type ListError struct {
	Err error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("list failed: %v", e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}
