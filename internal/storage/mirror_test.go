package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/contactbook/internal/models"
)

func TestMirrorWriteFormat(t *testing.T) {
	s := newTestStores(t)

	require.NoError(t, s.mirror.Write(models.ContactList{
		{Name: "Ada & Co", Phone: "<1>", Email: "ada@example.com"},
		{Name: "Zoë", Phone: "", Email: ""},
	}))

	want := `[
  {
    "name": "Ada & Co",
    "phone": "<1>",
    "email": "ada@example.com"
  },
  {
    "name": "Zoë",
    "phone": "",
    "email": ""
  }
]
`
	assert.Equal(t, want, readFile(t, s.mirror.Path()))
}

func TestMirrorWriteNilListIsEmptyArray(t *testing.T) {
	s := newTestStores(t)

	require.NoError(t, s.mirror.Write(nil))
	assert.Equal(t, "[]\n", readFile(t, s.mirror.Path()))
}

func TestExportRefusesEmptyList(t *testing.T) {
	s := newTestStores(t)
	require.NoError(t, os.WriteFile(s.mirror.Path(), []byte("[]\n"), 0644))
	before, err := os.Stat(s.mirror.Path())
	require.NoError(t, err)

	count, err := s.mirror.Export(models.ContactList{})
	assert.True(t, errors.Is(err, models.ErrNothingToExport))
	assert.Zero(t, count)

	after, err := os.Stat(s.mirror.Path())
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	_, statErr := os.Stat(s.faults.Path())
	assert.True(t, os.IsNotExist(statErr), "an empty export is not a fault")
}

func TestExportWritesContacts(t *testing.T) {
	s := newTestStores(t)

	count, err := s.mirror.Export(sampleContacts())
	require.NoError(t, err)
	assert.Equal(t, len(sampleContacts()), count)

	imported, err := s.mirror.ImportCandidates()
	require.NoError(t, err)
	assert.Equal(t, sampleContacts().Normalized(), imported.Candidates)
}

func TestExportFailureReportsFault(t *testing.T) {
	s := newTestStores(t)
	require.NoError(t, os.Mkdir(s.mirror.Path(), 0755))

	count, err := s.mirror.Export(sampleContacts())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrIO))
	assert.Zero(t, count)
	assert.Contains(t, readFile(t, s.faults.Path()), "] export_json: ")
}

func TestImportMissingFileIsNotFound(t *testing.T) {
	s := newTestStores(t)

	_, err := s.mirror.ImportCandidates()
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.False(t, errors.Is(err, models.ErrIO))

	_, statErr := os.Stat(s.faults.Path())
	assert.True(t, os.IsNotExist(statErr), "a missing mirror is not logged")
}

func TestImportMalformedJSONReportsFault(t *testing.T) {
	tests := map[string]string{
		"truncated":     `[{"name": "Ada"`,
		"empty file":    ``,
		"wrong type":    `{"name": "Ada"}`,
		"trailing data": `[{"name": "Ada"}] [{"name": "Bob"}]`,
		"numeric name":  `[{"name": 42}]`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStores(t)
			require.NoError(t, os.WriteFile(s.mirror.Path(), []byte(content), 0644))

			_, err := s.mirror.ImportCandidates()
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrParse))
			assert.Contains(t, readFile(t, s.faults.Path()), "] import_json: ")
		})
	}
}

func TestImportEmptyArray(t *testing.T) {
	s := newTestStores(t)
	require.NoError(t, os.WriteFile(s.mirror.Path(), []byte("[]"), 0644))

	result, err := s.mirror.ImportCandidates()
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Empty(t, result.Rejected)
}

func TestImportRejectsEntriesWithoutName(t *testing.T) {
	s := newTestStores(t)
	content := `[
  {"name": "Ada", "phone": "1", "email": "ada@example.com", "extra": true},
  {"phone": "2"},
  {"name": "", "email": "x@example.com"},
  {"name": "Grace"}
]`
	require.NoError(t, os.WriteFile(s.mirror.Path(), []byte(content), 0644))

	result, err := s.mirror.ImportCandidates()
	require.NoError(t, err)
	assert.Equal(t, models.ContactList{
		{Name: "Ada", Phone: "1", Email: "ada@example.com"},
		{Name: "Grace"},
	}, result.Candidates)

	require.Len(t, result.Rejected, 2)
	assert.Equal(t, 2, result.Rejected[0].Line)
	assert.Equal(t, 3, result.Rejected[1].Line)
}
