package formatting

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"informers/internal/reflector"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func withFixedClock(t *testing.T) {
	t.Helper()
	orig := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = orig })
}

func pod(ns, name, rv string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Namespace:         ns,
			Name:              name,
			ResourceVersion:   rv,
			CreationTimestamp: metav1.NewTime(fixedNow.Add(-30 * time.Second)),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatConsole, false},
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"table", FormatTable, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "console, json, yaml, table")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPrinter_Unknown(t *testing.T) {
	_, err := NewPrinter("xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestConsolePrinter(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter(FormatConsole, &buf)
	require.NoError(t, err)

	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Added, New: pod("ns", "web-1", "1")}))
	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Changed, Old: pod("ns", "web-1", "1"), New: pod("ns", "web-1", "2")}))
	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Deleted, Old: pod("ns", "web-1", "2")}))
	require.NoError(t, p.Flush())

	assert.Equal(t, "added   ns/web-1@1\nchanged ns/web-1 1 -> 2\ndeleted ns/web-1@2\n", buf.String())
}

func TestJSONPrinter(t *testing.T) {
	withFixedClock(t)

	var buf bytes.Buffer
	p, err := NewPrinter(FormatJSON, &buf)
	require.NoError(t, err)

	observed := time.Date(2024, 5, 1, 11, 58, 30, 0, time.FixedZone("CEST", 2*60*60))
	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Changed, Old: pod("ns", "web-1", "1"), New: pod("ns", "web-1", "2"), ObservedAt: observed}))
	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Deleted, Old: pod("ns", "web-2", "7")}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "changed", first["type"])
	assert.Equal(t, "ns", first["namespace"])
	assert.Equal(t, "web-1", first["name"])
	assert.Equal(t, "1", first["oldResourceVersion"])
	assert.Equal(t, "2", first["newResourceVersion"])
	assert.Equal(t, "2024-05-01T09:58:30Z", first["observedAt"], "time of the listing, not of printing")

	object, ok := first["object"].(map[string]interface{})
	require.True(t, ok)
	metadata := object["metadata"].(map[string]interface{})
	assert.Equal(t, "2", metadata["resourceVersion"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "deleted", second["type"])
	assert.Equal(t, "7", second["oldResourceVersion"])
	assert.NotContains(t, second, "newResourceVersion")
	assert.NotContains(t, second, "observedAt")
}

func TestYAMLPrinter(t *testing.T) {
	withFixedClock(t)

	var buf bytes.Buffer
	p, err := NewPrinter(FormatYAML, &buf)
	require.NoError(t, err)

	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Added, New: pod("ns", "web-1", "3")}))
	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Added, New: pod("ns", "web-2", "4")}))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "---\n"))
	assert.Contains(t, out, "type: added")
	assert.Contains(t, out, `newResourceVersion: "3"`)
	assert.Contains(t, out, "resourceVersion: \"4\"")
	assert.NotContains(t, out, "oldResourceVersion")
}

func TestTablePrinter_RendersOnFlush(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter(FormatTable, &buf)
	require.NoError(t, err)

	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Added, New: pod("ns", "web-1", "1")}))
	require.NoError(t, p.PrintDelta(reflector.Delta{Type: reflector.Deleted, Old: pod("ns", "web-2", "5")}))
	assert.Empty(t, buf.String(), "table output is buffered until Flush")

	require.NoError(t, p.Flush())
	out := buf.String()
	assert.Contains(t, out, "web-1")
	assert.Contains(t, out, "web-2")
	assert.Contains(t, out, "deleted")
	assert.Contains(t, out, "NEW VERSION")
	assert.NotContains(t, out, "\x1b[", "no colour escapes when not writing to a terminal")

	buf.Reset()
	require.NoError(t, p.Flush())
	assert.Empty(t, buf.String(), "rows are cleared after a flush")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f), "regular files are not terminals")
}

func TestPrintSnapshot(t *testing.T) {
	withFixedClock(t)

	objs := []metav1.Object{
		pod("default", "b-pod", "12"),
		pod("default", "a-pod", "11"),
		pod("kube-system", "dns", "3"),
	}

	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, objs, false))
	out := buf.String()

	assert.Contains(t, out, "NAMESPACE")
	assert.Contains(t, out, "RESOURCE VERSION")
	assert.Contains(t, out, "30s")
	assert.Less(t, strings.Index(out, "a-pod"), strings.Index(out, "b-pod"))
	assert.Less(t, strings.Index(out, "b-pod"), strings.Index(out, "dns"))

	// the caller's slice is left alone
	assert.Equal(t, "b-pod", objs[0].GetName())
}

func TestPrintSnapshot_NoHeaders(t *testing.T) {
	withFixedClock(t)

	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, []metav1.Object{pod("default", "a-pod", "1")}, true))
	assert.NotContains(t, buf.String(), "NAMESPACE")
	assert.Contains(t, buf.String(), "a-pod")
}

func TestPrintSnapshot_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, nil, false))
	assert.Equal(t, "No resources found.\n", buf.String())
}

func TestPrintSnapshot_UnknownAge(t *testing.T) {
	p := pod("default", "a-pod", "1")
	p.CreationTimestamp = metav1.Time{}

	var buf bytes.Buffer
	require.NoError(t, PrintSnapshot(&buf, []metav1.Object{p}, true))
	assert.Contains(t, buf.String(), "<unknown>")
}
