package lister

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	k8sfake "k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"informers/internal/reflector"
)

func TestPodLister_List(t *testing.T) {
	clientset := k8sfake.NewClientset(
		pod("ns", "pod1", nil),
		pod("ns", "pod2", nil),
		pod("other", "pod3", nil),
	)

	objs, err := NewPodLister(clientset).List(context.Background(), reflector.ListOptions{Namespace: "ns"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ns/pod1", "ns/pod2"}, names(objs))
}

func TestPodLister_PassesSelectors(t *testing.T) {
	clientset := k8sfake.NewClientset()

	var restrictions k8stesting.ListRestrictions
	clientset.PrependReactor("list", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		restrictions = action.(k8stesting.ListAction).GetListRestrictions()
		return true, &corev1.PodList{}, nil
	})

	_, err := NewPodLister(clientset).List(context.Background(), reflector.ListOptions{
		Namespace: "ns",
		Labels:    labels.Set{"app": "web"},
		Fields:    fields.Set{"status.phase": "Running"},
	})
	require.NoError(t, err)

	assert.Equal(t, "app=web", restrictions.Labels.String())
	assert.Equal(t, "status.phase=Running", restrictions.Fields.String())
}

func TestConfigMapAndServiceListers(t *testing.T) {
	clientset := k8sfake.NewClientset(
		&corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Namespace: "ns", Name: "settings"}},
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Namespace: "ns", Name: "web"}},
	)

	cms, err := NewConfigMapLister(clientset).List(context.Background(), reflector.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ns/settings"}, names(cms))

	svcs, err := NewServiceLister(clientset).List(context.Background(), reflector.ListOptions{Namespace: "ns"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ns/web"}, names(svcs))
}

func TestToListOptions(t *testing.T) {
	opts, err := toListOptions(reflector.ListOptions{
		Labels:  labels.Set{"tier": "frontend", "app": "web"},
		Fields:  fields.Set{"metadata.name": "a,b"},
		Timeout: 1500 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, "app=web,tier=frontend", opts.LabelSelector)
	assert.Equal(t, `metadata.name=a\,b`, opts.FieldSelector)
	require.NotNil(t, opts.TimeoutSeconds)
	assert.Equal(t, int64(2), *opts.TimeoutSeconds)

	empty, err := toListOptions(reflector.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, empty.LabelSelector)
	assert.Empty(t, empty.FieldSelector)
	assert.Nil(t, empty.TimeoutSeconds)
}

func TestNewTyped(t *testing.T) {
	clientset := k8sfake.NewClientset()

	tests := []struct {
		gvk     schema.GroupVersionKind
		want    reflector.Lister
		wantErr bool
	}{
		{gvk: podGVK, want: &PodLister{}},
		{gvk: schema.GroupVersionKind{Version: "v1", Kind: "ConfigMap"}, want: &ConfigMapLister{}},
		{gvk: schema.GroupVersionKind{Version: "v1", Kind: "Service"}, want: &ServiceLister{}},
		{gvk: schema.GroupVersionKind{Version: "v1", Kind: "Secret"}, wantErr: true},
		{gvk: schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.gvk.String(), func(t *testing.T) {
			got, err := NewTyped(clientset, tt.gvk)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestNewTyped_SupportsEveryTypedKind(t *testing.T) {
	clientset := k8sfake.NewClientset()
	for _, gvk := range TypedKinds {
		l, err := NewTyped(clientset, gvk)
		require.NoError(t, err, gvk.String())
		assert.NotNil(t, l)
	}

	_, err := NewTyped(clientset, schema.GroupVersionKind{Version: "v1", Kind: "Secret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported:")
}

func TestNew_UnknownMode(t *testing.T) {
	_, err := New(nil, podGVK, Mode("grpc"))
	assert.Error(t, err)
}
