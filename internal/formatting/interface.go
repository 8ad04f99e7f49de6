// Package formatting renders deltas and snapshots for the CLI.
//
// A Printer writes deltas as they are taken off the queue in one of the
// supported output formats (console, JSON, YAML, table). PrintSnapshot
// renders the result of a single listing as a kubectl-style table.
package formatting

import (
	"fmt"
	"io"
	"strings"

	"informers/internal/reflector"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // One line per delta
	FormatJSON    OutputFormat = "json"    // One JSON document per line
	FormatYAML    OutputFormat = "yaml"    // YAML documents separated by ---
	FormatTable   OutputFormat = "table"   // Rich table, rendered on Flush
)

// Formats lists the accepted output formats in help-text order.
var Formats = []OutputFormat{FormatConsole, FormatJSON, FormatYAML, FormatTable}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatConsole, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected one of %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Printer writes deltas. Implementations are not safe for concurrent use;
// the consumer loop owns its printer.
type Printer interface {
	PrintDelta(d reflector.Delta) error

	// Flush writes anything the printer buffered. Streaming formats
	// write immediately and treat it as a no-op.
	Flush() error
}

// NewPrinter creates the printer for format writing to w.
func NewPrinter(format OutputFormat, w io.Writer) (Printer, error) {
	switch format {
	case FormatConsole, "":
		return &consolePrinter{w: w}, nil
	case FormatJSON:
		return &jsonPrinter{w: w}, nil
	case FormatYAML:
		return &yamlPrinter{w: w}, nil
	case FormatTable:
		return newTablePrinter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
