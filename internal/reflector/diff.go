package reflector

import (
	"cmp"
	"slices"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Index builds a snapshot from a listing. If a key appears twice the later
// object wins.
func Index(objs []metav1.Object) map[Key]metav1.Object {
	m := make(map[Key]metav1.Object, len(objs))
	for _, obj := range objs {
		m[KeyOf(obj)] = obj
	}
	return m
}

// Diff classifies the differences between two snapshots. Added and changed
// deltas come first, then deleted ones, each group ordered by key.
func Diff(old, next map[Key]metav1.Object) []Delta {
	var deltas []Delta

	for _, key := range sortedKeys(next) {
		obj := next[key]
		prev, ok := old[key]
		switch {
		case !ok:
			deltas = append(deltas, Delta{Type: Added, New: obj})
		case prev.GetResourceVersion() != obj.GetResourceVersion():
			deltas = append(deltas, Delta{Type: Changed, Old: prev, New: obj})
		}
	}

	for _, key := range sortedKeys(old) {
		if _, ok := next[key]; !ok {
			deltas = append(deltas, Delta{Type: Deleted, Old: old[key]})
		}
	}

	return deltas
}

func sortedKeys(m map[Key]metav1.Object) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(cmp.Compare(a.Namespace, b.Namespace), cmp.Compare(a.Name, b.Name))
	})
	return keys
}
