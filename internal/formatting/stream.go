package formatting

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"informers/internal/reflector"
)

type consolePrinter struct {
	w io.Writer
}

func (p *consolePrinter) PrintDelta(d reflector.Delta) error {
	_, err := fmt.Fprintf(p.w, "%-7s %s\n", d.Type, deltaSummary(d))
	return err
}

func (p *consolePrinter) Flush() error { return nil }

// deltaSummary is "ns/name@rv" or "ns/name old -> new" for changes.
func deltaSummary(d reflector.Delta) string {
	if d.Type == reflector.Changed {
		return fmt.Sprintf("%s %s -> %s", d.Key(), d.Old.GetResourceVersion(), d.New.GetResourceVersion())
	}
	return fmt.Sprintf("%s@%s", d.Key(), d.Object().GetResourceVersion())
}

type jsonPrinter struct {
	w io.Writer
}

func (p *jsonPrinter) PrintDelta(d reflector.Delta) error {
	if err := json.NewEncoder(p.w).Encode(NewDeltaRecord(d)); err != nil {
		return fmt.Errorf("failed to encode delta: %w", err)
	}
	return nil
}

func (p *jsonPrinter) Flush() error { return nil }

// yamlPrinter uses sigs.k8s.io/yaml so Kubernetes objects keep their JSON
// field names.
type yamlPrinter struct {
	w io.Writer
}

func (p *yamlPrinter) PrintDelta(d reflector.Delta) error {
	out, err := yaml.Marshal(NewDeltaRecord(d))
	if err != nil {
		return fmt.Errorf("failed to encode delta: %w", err)
	}
	if _, err := fmt.Fprintf(p.w, "---\n%s", out); err != nil {
		return err
	}
	return nil
}

func (p *yamlPrinter) Flush() error { return nil }
