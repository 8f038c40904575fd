package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"rhystmorgan/contactbook/internal/audit"
	"rhystmorgan/contactbook/internal/models"
)

// Header is the column layout of the primary store.
var Header = []string{"name", "phone", "email"}

// FaultReporter records system faults. It must never panic; the returned
// error only says whether the fault itself could be recorded.
type FaultReporter interface {
	Report(op string, err error) error
}

// LoadResult is what a RecordStore load produced. A load never fails outright:
// when Fault is set the fault has already been reported and Contacts is empty.
type LoadResult struct {
	Contacts    models.ContactList
	Rejected    []models.RejectedRow
	Initialized bool
	Fault       error
}

// RecordStore owns the primary CSV file and keeps the JSON mirror in step
// with it on every save.
type RecordStore struct {
	path   string
	mirror *MirrorStore
	faults FaultReporter
}

func NewRecordStore(path string, mirror *MirrorStore, faults FaultReporter) *RecordStore {
	return &RecordStore{
		path:   path,
		mirror: mirror,
		faults: faults,
	}
}

func (s *RecordStore) Path() string {
	return s.path
}

// Load reads every contact from the primary file. A missing or empty file is
// re-created with just the header row.
func (s *RecordStore) Load() LoadResult {
	info, err := os.Stat(s.path)
	if err != nil && !os.IsNotExist(err) {
		return s.loadFault(models.NewIOError("failed to stat contacts file", err))
	}

	if os.IsNotExist(err) || info.Size() == 0 {
		if err := writeFileAtomic(s.path, func(w io.Writer) error {
			return encodeCSV(w, nil)
		}); err != nil {
			return s.loadFault(models.NewIOError("failed to initialize contacts file", err))
		}
		return LoadResult{Contacts: models.ContactList{}, Initialized: true}
	}

	file, err := os.Open(s.path)
	if err != nil {
		return s.loadFault(models.NewIOError("failed to open contacts file", err))
	}
	defer file.Close()

	contacts, rejected, err := decodeCSV(file)
	if err != nil {
		return s.loadFault(err)
	}

	return LoadResult{Contacts: contacts, Rejected: rejected}
}

// Save rewrites the primary file with contacts, then the mirror. Line breaks
// are normalized first so both files hold the same values. There is no
// rollback: if the mirror write fails the primary file keeps the new content.
func (s *RecordStore) Save(contacts models.ContactList) error {
	contacts = contacts.Normalized()

	if err := writeFileAtomic(s.path, func(w io.Writer) error {
		return encodeCSV(w, contacts)
	}); err != nil {
		return s.saveFault(models.NewIOError("failed to write contacts file", err))
	}

	if s.mirror != nil {
		if err := s.mirror.Write(contacts); err != nil {
			return s.saveFault(err)
		}
	}

	return nil
}

func (s *RecordStore) loadFault(err error) LoadResult {
	s.report(audit.OpLoadContacts, err)
	return LoadResult{Contacts: models.ContactList{}, Fault: err}
}

func (s *RecordStore) saveFault(err error) error {
	s.report(audit.OpSaveContacts, err)
	return err
}

func (s *RecordStore) report(op string, err error) {
	if s.faults != nil {
		_ = s.faults.Report(op, err)
	}
}

func encodeCSV(w io.Writer, contacts models.ContactList) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, contact := range contacts {
		if err := writer.Write([]string{contact.Name, contact.Phone, contact.Email}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// decodeCSV maps columns by the header row, so column order in the file does
// not matter. Rows without a name are returned as rejected.
func decodeCSV(r io.Reader) (models.ContactList, []models.RejectedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return models.ContactList{}, nil, nil
	}
	if err != nil {
		return nil, nil, readError("failed to read CSV header", err)
	}

	headerMap := make(map[string]int, len(header))
	for idx, col := range header {
		col = strings.TrimPrefix(col, "\ufeff")
		headerMap[strings.ToLower(strings.TrimSpace(col))] = idx
	}

	field := func(record []string, name string) string {
		if idx, exists := headerMap[name]; exists && idx < len(record) {
			return record[idx]
		}
		return ""
	}

	contacts := models.ContactList{}
	var rejected []models.RejectedRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, readError("failed to read CSV", err)
		}

		line, _ := reader.FieldPos(0)
		contact, err := models.NewContact(field(record, "name"), field(record, "phone"), field(record, "email"))
		if err != nil {
			rejected = append(rejected, models.RejectedRow{Line: line, Reason: err.Error()})
			continue
		}
		contacts = append(contacts, contact)
	}

	return contacts, rejected, nil
}

// readError separates malformed content from a failing reader.
func readError(message string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return models.NewParseError(message, err)
	}
	return models.NewIOError(message, err)
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
