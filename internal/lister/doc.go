// Package lister implements reflector.Lister on top of the Kubernetes API.
//
// Two flavours are provided:
//
//   - RuntimeLister lists any kind through a controller-runtime client as
//     unstructured objects, so custom resources work without generated types.
//   - PodLister, ConfigMapLister and ServiceLister use the typed client-go
//     clientset and pass the request timeout to the API server.
//
// New picks one of them for a GroupVersionKind.
package lister
