package formatting

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/duration"

	"informers/internal/reflector"
)

// now is replaced in tests.
var now = time.Now

// tablePrinter collects deltas and renders them as one table per Flush,
// which the consumer calls whenever it has drained the queue.
type tablePrinter struct {
	w     io.Writer
	color bool
	rows  []table.Row
}

func newTablePrinter(w io.Writer) *tablePrinter {
	return &tablePrinter{w: w, color: isTerminal(w)}
}

// isTerminal reports whether w is a terminal; piped or redirected output
// gets no colour escapes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *tablePrinter) PrintDelta(d reflector.Delta) error {
	key := d.Key()
	var oldVersion, newVersion string
	if d.Old != nil {
		oldVersion = d.Old.GetResourceVersion()
	}
	if d.New != nil {
		newVersion = d.New.GetResourceVersion()
	}
	typ := string(d.Type)
	if p.color {
		typ = colorType(d.Type)
	}
	p.rows = append(p.rows, table.Row{
		typ,
		key.Namespace,
		key.Name,
		oldVersion,
		newVersion,
	})
	return nil
}

func (p *tablePrinter) Flush() error {
	if len(p.rows) == 0 {
		return nil
	}

	t := createTable(p.w)
	t.AppendHeader(table.Row{"TYPE", "NAMESPACE", "NAME", "OLD VERSION", "NEW VERSION"})
	t.AppendRows(p.rows)
	t.AppendFooter(table.Row{"", "", "", "Total", len(p.rows)})
	t.Render()

	p.rows = p.rows[:0]
	return nil
}

// createTable creates a new table with standard styling
func createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func colorType(t reflector.DeltaType) string {
	switch t {
	case reflector.Added:
		return text.FgGreen.Sprint(string(t))
	case reflector.Changed:
		return text.FgYellow.Sprint(string(t))
	case reflector.Deleted:
		return text.FgRed.Sprint(string(t))
	default:
		return string(t)
	}
}

// PrintSnapshot renders objs sorted by key in kubectl's plain column style.
func PrintSnapshot(w io.Writer, objs []metav1.Object, noHeaders bool) error {
	sorted := slices.Clone(objs)
	slices.SortFunc(sorted, func(a, b metav1.Object) int {
		return cmp.Or(
			cmp.Compare(a.GetNamespace(), b.GetNamespace()),
			cmp.Compare(a.GetName(), b.GetName()),
		)
	})

	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleDefault
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "   "
	style.Options = table.Options{}
	style.Format.Header = text.FormatUpper
	t.SetStyle(style)

	if !noHeaders {
		t.AppendHeader(table.Row{"Namespace", "Name", "Resource Version", "Age"})
	}
	for _, obj := range sorted {
		t.AppendRow(table.Row{obj.GetNamespace(), obj.GetName(), obj.GetResourceVersion(), age(obj)})
	}

	if len(sorted) == 0 {
		_, err := fmt.Fprintln(w, "No resources found.")
		return err
	}
	t.Render()
	return nil
}

func age(obj metav1.Object) string {
	created := obj.GetCreationTimestamp()
	if created.IsZero() {
		return "<unknown>"
	}
	return duration.HumanDuration(now().Sub(created.Time))
}
