package lister

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"informers/internal/reflector"
)

// RuntimeLister lists objects of one kind through a controller-runtime reader.
type RuntimeLister struct {
	reader client.Reader
	gvk    schema.GroupVersionKind
}

// NewRuntimeLister creates a lister for gvk, which names the item kind
// (for example v1/Pod), not the list kind.
func NewRuntimeLister(reader client.Reader, gvk schema.GroupVersionKind) *RuntimeLister {
	return &RuntimeLister{reader: reader, gvk: gvk}
}

// List implements reflector.Lister.
func (l *RuntimeLister) List(ctx context.Context, opts reflector.ListOptions) ([]metav1.Object, error) {
	labelSelector, err := opts.LabelSelector()
	if err != nil {
		return nil, err
	}

	listOpts := []client.ListOption{
		client.MatchingLabelsSelector{Selector: labelSelector},
	}
	if opts.Namespace != "" {
		listOpts = append(listOpts, client.InNamespace(opts.Namespace))
	}
	if len(opts.Fields) > 0 {
		listOpts = append(listOpts, client.MatchingFieldsSelector{Selector: opts.FieldSelector()})
	}

	list := &unstructured.UnstructuredList{}
	list.SetGroupVersionKind(l.gvk.GroupVersion().WithKind(l.gvk.Kind + "List"))

	if err := l.reader.List(ctx, list, listOpts...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", l.gvk.Kind, err)
	}

	objs := make([]metav1.Object, 0, len(list.Items))
	for i := range list.Items {
		objs = append(objs, &list.Items[i])
	}
	return objs, nil
}
