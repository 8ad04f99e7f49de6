package formatting

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"informers/internal/reflector"
)

// DeltaRecord is the serialised form of a delta in JSON and YAML output.
type DeltaRecord struct {
	Type       reflector.DeltaType `json:"type"`
	Namespace  string              `json:"namespace,omitempty"`
	Name       string              `json:"name"`
	OldVersion string              `json:"oldResourceVersion,omitempty"`
	NewVersion string              `json:"newResourceVersion,omitempty"`
	ObservedAt *time.Time          `json:"observedAt,omitempty"`
	Object     metav1.Object       `json:"object,omitempty"`
}

// NewDeltaRecord flattens d. The object carried is the newest state, or the
// last known state for a deletion. ObservedAt is the time of the listing
// that produced d, not the time it is printed.
func NewDeltaRecord(d reflector.Delta) DeltaRecord {
	key := d.Key()
	r := DeltaRecord{
		Type:       d.Type,
		Namespace:  key.Namespace,
		Name:       key.Name,
		Object:     d.Object(),
	}
	if !d.ObservedAt.IsZero() {
		observed := d.ObservedAt.UTC()
		r.ObservedAt = &observed
	}
	if d.Old != nil {
		r.OldVersion = d.Old.GetResourceVersion()
	}
	if d.New != nil {
		r.NewVersion = d.New.GetResourceVersion()
	}
	return r
}
