package lister

import (
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	crconfig "sigs.k8s.io/controller-runtime/pkg/client/config"

	"informers/internal/reflector"
	"informers/pkg/logging"
)

// Mode selects the client a lister is built on.
type Mode string

const (
	// ModeRuntime lists unstructured objects through controller-runtime.
	ModeRuntime Mode = "runtime"

	// ModeTyped lists through the typed clientset; only some core kinds
	// are supported.
	ModeTyped Mode = "typed"
)

// TypedKinds are the kinds ModeTyped can list.
var TypedKinds = []schema.GroupVersionKind{
	{Version: "v1", Kind: "Pod"},
	{Version: "v1", Kind: "ConfigMap"},
	{Version: "v1", Kind: "Service"},
}

// RestConfig resolves cluster access from the kubeconfig (KUBECONFIG or
// ~/.kube/config) or the in-cluster service account. A non-empty
// kubeContext selects that kubeconfig context.
func RestConfig(kubeContext string) (*rest.Config, error) {
	if kubeContext != "" {
		return crconfig.GetConfigWithContext(kubeContext)
	}
	return ctrl.GetConfig()
}

// New builds a lister for gvk using the given mode.
func New(restConfig *rest.Config, gvk schema.GroupVersionKind, mode Mode) (reflector.Lister, error) {
	switch mode {
	case ModeTyped:
		clientset, err := kubernetes.NewForConfig(restConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create clientset: %w", err)
		}
		return NewTyped(clientset, gvk)

	case ModeRuntime, "":
		c, err := client.New(restConfig, client.Options{})
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		logging.Debug("Lister", "Listing %s through controller-runtime", gvk)
		return NewRuntimeLister(c, gvk), nil

	default:
		return nil, fmt.Errorf("unknown lister mode: %s", mode)
	}
}

// NewTyped returns the typed lister for gvk.
func NewTyped(clientset kubernetes.Interface, gvk schema.GroupVersionKind) (reflector.Lister, error) {
	if !slices.Contains(TypedKinds, gvk) {
		return nil, fmt.Errorf("typed lister does not support %s (supported: %v)", gvk, TypedKinds)
	}

	switch gvk.Kind {
	case "Pod":
		return NewPodLister(clientset), nil
	case "ConfigMap":
		return NewConfigMapLister(clientset), nil
	case "Service":
		return NewServiceLister(clientset), nil
	default:
		return nil, fmt.Errorf("typed lister does not support %s", gvk)
	}
}
