package lister

import (
	"context"
	"fmt"
	"math"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"informers/internal/reflector"
)

// PodLister lists pods with the typed clientset.
type PodLister struct {
	client kubernetes.Interface
}

// NewPodLister creates a PodLister.
func NewPodLister(client kubernetes.Interface) *PodLister {
	return &PodLister{client: client}
}

// List implements reflector.Lister.
func (l *PodLister) List(ctx context.Context, opts reflector.ListOptions) ([]metav1.Object, error) {
	listOpts, err := toListOptions(opts)
	if err != nil {
		return nil, err
	}
	list, err := l.client.CoreV1().Pods(opts.Namespace).List(ctx, listOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}
	return items[corev1.Pod](list.Items), nil
}

// ConfigMapLister lists config maps with the typed clientset.
type ConfigMapLister struct {
	client kubernetes.Interface
}

// NewConfigMapLister creates a ConfigMapLister.
func NewConfigMapLister(client kubernetes.Interface) *ConfigMapLister {
	return &ConfigMapLister{client: client}
}

// List implements reflector.Lister.
func (l *ConfigMapLister) List(ctx context.Context, opts reflector.ListOptions) ([]metav1.Object, error) {
	listOpts, err := toListOptions(opts)
	if err != nil {
		return nil, err
	}
	list, err := l.client.CoreV1().ConfigMaps(opts.Namespace).List(ctx, listOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list configmaps: %w", err)
	}
	return items[corev1.ConfigMap](list.Items), nil
}

// ServiceLister lists services with the typed clientset.
type ServiceLister struct {
	client kubernetes.Interface
}

// NewServiceLister creates a ServiceLister.
func NewServiceLister(client kubernetes.Interface) *ServiceLister {
	return &ServiceLister{client: client}
}

// List implements reflector.Lister.
func (l *ServiceLister) List(ctx context.Context, opts reflector.ListOptions) ([]metav1.Object, error) {
	listOpts, err := toListOptions(opts)
	if err != nil {
		return nil, err
	}
	list, err := l.client.CoreV1().Services(opts.Namespace).List(ctx, listOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return items[corev1.Service](list.Items), nil
}

// toListOptions renders the scope as API list options. The request timeout
// is also sent to the server, rounded up to whole seconds.
func toListOptions(opts reflector.ListOptions) (metav1.ListOptions, error) {
	labelSelector, err := opts.LabelSelector()
	if err != nil {
		return metav1.ListOptions{}, err
	}

	listOpts := metav1.ListOptions{
		LabelSelector: labelSelector.String(),
		FieldSelector: opts.FieldSelector().String(),
	}
	if opts.Timeout > 0 {
		secs := int64(math.Ceil(opts.Timeout.Seconds()))
		listOpts.TimeoutSeconds = &secs
	}
	return listOpts, nil
}

func items[T any, PT interface {
	*T
	metav1.Object
}](list []T) []metav1.Object {
	objs := make([]metav1.Object, 0, len(list))
	for i := range list {
		objs = append(objs, PT(&list[i]))
	}
	return objs
}
