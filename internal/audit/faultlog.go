package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FaultLog is the process-wide append-only fault log. Nothing else depends on
// it working: Report hands any write failure back to the caller, who is free
// to discard it.
type FaultLog struct {
	path string
	now  func() time.Time
}

// NewFaultLog creates a FaultLog writing to path. The file is created lazily on
// the first Report.
func NewFaultLog(path string) *FaultLog {
	return &FaultLog{
		path: path,
		now:  time.Now,
	}
}

// Path returns the log file location.
func (l *FaultLog) Path() string {
	return l.path
}

// Report appends one line for err under the operation tag op.
func (l *FaultLog) Report(op string, err error) error {
	if l == nil || err == nil {
		return nil
	}

	entry := Fault{
		Timestamp: l.now(),
		Op:        op,
		Detail:    err.Error(),
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			return fmt.Errorf("failed to create fault log directory: %w", mkErr)
		}
	}

	file, openErr := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if openErr != nil {
		return fmt.Errorf("failed to open fault log: %w", openErr)
	}
	defer file.Close()

	if _, writeErr := file.WriteString(entry.String() + "\n"); writeErr != nil {
		return fmt.Errorf("failed to write fault log: %w", writeErr)
	}

	return nil
}

// Recent returns up to limit of the newest entries, oldest first. Lines that
// do not parse are skipped. A missing log yields no entries.
func (l *FaultLog) Recent(limit int) ([]Fault, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open fault log: %w", err)
	}
	defer file.Close()

	var faults []Fault
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fault, err := ParseFault(scanner.Text())
		if err != nil {
			continue
		}
		faults = append(faults, fault)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fault log: %w", err)
	}

	if limit > 0 && len(faults) > limit {
		faults = faults[len(faults)-limit:]
	}
	return faults, nil
}
