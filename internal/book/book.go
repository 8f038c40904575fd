// Package book implements the contact operations. Every call reloads the
// primary store, applies its change to that fresh list and saves it back;
// nothing is cached between calls.
package book

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rhystmorgan/contactbook/internal/audit"
	"rhystmorgan/contactbook/internal/config"
	"rhystmorgan/contactbook/internal/models"
	"rhystmorgan/contactbook/internal/storage"
)

// Changes carries the replacement fields for Update. An empty field keeps
// the current value.
type Changes struct {
	Name  string
	Phone string
	Email string
}

type DeleteResult struct {
	Removed   models.Contact
	Cancelled bool
}

type Book struct {
	records *storage.RecordStore
	mirror  *storage.MirrorStore
	faults  *audit.FaultLog
	logger  *zap.Logger
}

// New wires the stores for the paths in cfg. A nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}

	faults := audit.NewFaultLog(cfg.FaultLog())
	mirror := storage.NewMirrorStore(cfg.Mirror(), faults)
	records := storage.NewRecordStore(cfg.Primary(), mirror, faults)

	return &Book{
		records: records,
		mirror:  mirror,
		faults:  faults,
		logger:  logger,
	}
}

func (b *Book) Faults() *audit.FaultLog {
	return b.faults
}

func (b *Book) PrimaryPath() string {
	return b.records.Path()
}

func (b *Book) MirrorPath() string {
	return b.mirror.Path()
}

// Load returns the full load result, including rows that were rejected.
func (b *Book) Load() storage.LoadResult {
	result := b.records.Load()
	if result.Fault != nil {
		b.logger.Warn("load failed", zap.String("op", audit.OpLoadContacts), zap.Error(result.Fault))
	}
	if result.Initialized {
		b.logger.Info("initialized contacts file", zap.String("path", b.records.Path()))
	}
	for _, row := range result.Rejected {
		b.logger.Debug("skipped row", zap.Int("line", row.Line), zap.String("reason", row.Reason))
	}
	return result
}

func (b *Book) List() models.ContactList {
	return b.Load().Contacts
}

// Add appends a new contact unless one with the same name, ignoring case,
// already exists.
func (b *Book) Add(name, phone, email string) (models.Contact, error) {
	contact, err := models.NewContact(name, phone, email)
	if err != nil {
		return models.Contact{}, err
	}

	contacts, err := b.loadForUpdate()
	if err != nil {
		return models.Contact{}, err
	}

	if contacts.HasName(contact.Name) {
		return models.Contact{}, models.NewDuplicateNameError(contact.Name)
	}

	contacts = append(contacts, contact)
	if err := b.save(contacts); err != nil {
		return models.Contact{}, err
	}

	b.logger.Debug("contact added", zap.String("name", contact.Name))
	return contact, nil
}

// Update changes the contact at the 1-based index given as text.
// A name that is only whitespace is rejected rather than kept.
func (b *Book) Update(index string, changes Changes) (models.Contact, error) {
	if changes.Name != "" && strings.TrimSpace(changes.Name) == "" {
		return models.Contact{}, models.ErrEmptyName
	}

	contacts, err := b.loadForUpdate()
	if err != nil {
		return models.Contact{}, err
	}

	pos, err := ParseIndex(index, len(contacts))
	if err != nil {
		return models.Contact{}, err
	}

	contact := &contacts[pos-1]
	contact.Apply(changes.Name, changes.Phone, changes.Email)

	if err := b.save(contacts); err != nil {
		return models.Contact{}, err
	}

	b.logger.Debug("contact updated", zap.Int("index", pos), zap.String("name", contact.Name))
	return *contact, nil
}

// Delete removes the contact at the 1-based index given as text. Without
// confirmation nothing is removed and the result is marked cancelled.
func (b *Book) Delete(index string, confirmed bool) (DeleteResult, error) {
	contacts, err := b.loadForUpdate()
	if err != nil {
		return DeleteResult{}, err
	}

	pos, err := ParseIndex(index, len(contacts))
	if err != nil {
		return DeleteResult{}, err
	}

	removed := contacts[pos-1]
	if !confirmed {
		return DeleteResult{Removed: removed, Cancelled: true}, nil
	}

	contacts = append(contacts[:pos-1], contacts[pos:]...)
	if err := b.save(contacts); err != nil {
		return DeleteResult{}, err
	}

	b.logger.Debug("contact deleted", zap.Int("index", pos), zap.String("name", removed.Name))
	return DeleteResult{Removed: removed}, nil
}

// Search returns the contacts whose name contains query, ignoring case.
func (b *Book) Search(query string) models.ContactList {
	return b.List().Search(query)
}

// Export writes the current contacts to the mirror file.
func (b *Book) Export() (int, error) {
	contacts, err := b.loadForUpdate()
	if err != nil {
		return 0, err
	}

	count, err := b.mirror.Export(contacts)
	if err != nil {
		b.logger.Warn("export failed", zap.String("op", audit.OpExportJSON), zap.Error(err))
		return 0, err
	}

	b.logger.Debug("contacts exported", zap.Int("count", count), zap.String("path", b.mirror.Path()))
	return count, nil
}

// PreviewImport reads the mirror file without changing anything.
func (b *Book) PreviewImport() (storage.ImportResult, error) {
	result, err := b.mirror.ImportCandidates()
	if err != nil {
		b.logger.Warn("import read failed", zap.String("op", audit.OpImportJSON), zap.Error(err))
		return storage.ImportResult{}, err
	}
	return result, nil
}

// Import merges candidates into the stored contacts and returns how many
// were new.
func (b *Book) Import(candidates models.ContactList) (int, error) {
	contacts, err := b.loadForUpdate()
	if err != nil {
		return 0, err
	}

	merged, added := models.Merge(contacts, candidates)
	if err := b.save(merged); err != nil {
		return 0, err
	}

	b.logger.Debug("contacts imported", zap.Int("added", added), zap.Int("candidates", len(candidates)))
	return added, nil
}

// loadForUpdate refuses to continue from a faulted load, so a corrupt file
// is never overwritten with an empty list.
func (b *Book) loadForUpdate() (models.ContactList, error) {
	result := b.Load()
	if result.Fault != nil {
		return nil, result.Fault
	}
	return result.Contacts, nil
}

func (b *Book) save(contacts models.ContactList) error {
	if err := b.records.Save(contacts); err != nil {
		b.logger.Warn("save failed", zap.String("op", audit.OpSaveContacts), zap.Error(err))
		return err
	}
	return nil
}

// ParseIndex validates a 1-based position typed by the user against a list
// of the given length.
func ParseIndex(input string, length int) (int, error) {
	if input == "" {
		return 0, models.NewInvalidInputError(input)
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, models.NewInvalidInputError(input)
		}
	}

	index, err := strconv.Atoi(input)
	if err != nil {
		return 0, models.NewContactError(models.ErrTypeIndexOutOfRange, "contact number out of range: "+input, err)
	}
	if index < 1 || index > length {
		return 0, models.NewIndexOutOfRangeError(index, length)
	}

	return index, nil
}
