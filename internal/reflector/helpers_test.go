package reflector

import (
	"context"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func makePod(ns, name, rv string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Namespace:       ns,
			Name:            name,
			ResourceVersion: rv,
		},
	}
}

func objects(pods ...*corev1.Pod) []metav1.Object {
	objs := make([]metav1.Object, 0, len(pods))
	for _, p := range pods {
		objs = append(objs, p)
	}
	return objs
}

// stateLister returns one state per call and keeps returning the last one
// once the sequence is exhausted.
type stateLister struct {
	mu     sync.Mutex
	states [][]metav1.Object
	errs   map[int]error
	calls  int
	opts   []ListOptions
}

func (l *stateLister) List(ctx context.Context, opts ListOptions) ([]metav1.Object, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.calls
	l.calls++
	l.opts = append(l.opts, opts)

	if err, ok := l.errs[i]; ok {
		return nil, err
	}
	if i >= len(l.states) {
		i = len(l.states) - 1
	}
	return l.states[i], nil
}

func (l *stateLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// recordingQueue keeps every delta it receives, without coalescing.
type recordingQueue struct {
	mu     sync.Mutex
	deltas []Delta
}

func (q *recordingQueue) Put(_ context.Context, _ Key, d Delta) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deltas = append(q.deltas, d)
	return nil
}

func (q *recordingQueue) take() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]string, 0, len(q.deltas))
	for _, d := range q.deltas {
		out = append(out, d.String())
	}
	q.deltas = nil
	return out
}

func (q *recordingQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.deltas)
}
