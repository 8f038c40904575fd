package audit

import (
	"fmt"
	"strings"
	"time"
)

// Operation tags written to the fault log.
const (
	OpLoadContacts = "load_contacts"
	OpSaveContacts = "save_contacts"
	OpExportJSON   = "export_json"
	OpImportJSON   = "import_json"
)

const timestampLayout = "2006-01-02 15:04:05.000000"

// Fault is a single fault log entry.
type Fault struct {
	Timestamp time.Time
	Op        string
	Detail    string
}

// String renders the entry as one log line, without the trailing newline.
func (f Fault) String() string {
	detail := strings.ReplaceAll(f.Detail, "\n", " ")
	return fmt.Sprintf("[%s] %s: %s", f.Timestamp.Format(timestampLayout), f.Op, detail)
}

// ParseFault reads back a line produced by Fault.String.
func ParseFault(line string) (Fault, error) {
	if !strings.HasPrefix(line, "[") {
		return Fault{}, fmt.Errorf("missing timestamp: %q", line)
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return Fault{}, fmt.Errorf("unterminated timestamp: %q", line)
	}

	ts, err := time.ParseInLocation(timestampLayout, line[1:end], time.Local)
	if err != nil {
		return Fault{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	op, detail, ok := strings.Cut(line[end+2:], ": ")
	if !ok {
		return Fault{}, fmt.Errorf("missing operation tag: %q", line)
	}

	return Fault{Timestamp: ts, Op: op, Detail: detail}, nil
}
