package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"rhystmorgan/contactbook/internal/audit"
	"rhystmorgan/contactbook/internal/models"
)

// ImportResult holds the contacts read back from the mirror file. Entries
// without a name are listed in Rejected by their 1-based position.
type ImportResult struct {
	Candidates models.ContactList
	Rejected   []models.RejectedRow
}

// MirrorStore is the JSON interchange copy of the contact list.
type MirrorStore struct {
	path   string
	faults FaultReporter
}

func NewMirrorStore(path string, faults FaultReporter) *MirrorStore {
	return &MirrorStore{
		path:   path,
		faults: faults,
	}
}

func (m *MirrorStore) Path() string {
	return m.path
}

// Write replaces the mirror with contacts, including an empty list. Faults
// are returned unreported; the caller decides which operation they belong to.
func (m *MirrorStore) Write(contacts models.ContactList) error {
	contacts = contacts.Normalized()
	if err := writeFileAtomic(m.path, func(w io.Writer) error {
		return encodeJSON(w, contacts)
	}); err != nil {
		return models.NewIOError("failed to write mirror file", err)
	}
	return nil
}

// Export writes contacts to the mirror on explicit request and returns how
// many were written. An empty list is refused without touching the file.
func (m *MirrorStore) Export(contacts models.ContactList) (int, error) {
	if len(contacts) == 0 {
		return 0, models.ErrNothingToExport
	}

	if err := m.Write(contacts); err != nil {
		m.report(audit.OpExportJSON, err)
		return 0, err
	}

	return len(contacts), nil
}

// ImportCandidates reads the mirror file. A missing file is reported as
// models.ErrNotFound and is not logged as a fault.
func (m *MirrorStore) ImportCandidates() (ImportResult, error) {
	file, err := os.Open(m.path)
	if err != nil {
		if isNotExist(err) {
			return ImportResult{}, models.NewNotFoundError(m.path, err)
		}
		return ImportResult{}, m.importFault(models.NewIOError("failed to open mirror file", err))
	}
	defer file.Close()

	entries, err := decodeJSON(file)
	if err != nil {
		return ImportResult{}, m.importFault(err)
	}

	result := ImportResult{Candidates: make(models.ContactList, 0, len(entries))}
	for idx, entry := range entries {
		contact, err := models.NewContact(entry.Name, entry.Phone, entry.Email)
		if err != nil {
			result.Rejected = append(result.Rejected, models.RejectedRow{Line: idx + 1, Reason: err.Error()})
			continue
		}
		result.Candidates = append(result.Candidates, contact)
	}

	return result, nil
}

func (m *MirrorStore) importFault(err error) error {
	m.report(audit.OpImportJSON, err)
	return err
}

func (m *MirrorStore) report(op string, err error) {
	if m.faults != nil {
		_ = m.faults.Report(op, err)
	}
}

func encodeJSON(w io.Writer, contacts models.ContactList) error {
	if contacts == nil {
		contacts = models.ContactList{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(contacts); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func decodeJSON(r io.Reader) (models.ContactList, error) {
	decoder := json.NewDecoder(r)

	var entries models.ContactList
	if err := decoder.Decode(&entries); err != nil {
		return nil, models.NewParseError("failed to decode JSON", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, models.NewParseError("failed to decode JSON", fmt.Errorf("unexpected data after contact list"))
	}

	return entries, nil
}
