package audit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestReportAppendsOneLinePerFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")
	log := NewFaultLog(path)
	log.now = fixedClock(time.Date(2025, 11, 15, 9, 30, 5, 123456000, time.Local))

	require.NoError(t, log.Report(OpLoadContacts, errors.New("permission denied")))
	require.NoError(t, log.Report(OpSaveContacts, errors.New("disk full")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[2025-11-15 09:30:05.123456] load_contacts: permission denied\n"+
			"[2025-11-15 09:30:05.123456] save_contacts: disk full\n",
		string(data))
}

func TestReportNeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")
	require.NoError(t, os.WriteFile(path, []byte("existing line\n"), 0644))

	require.NoError(t, NewFaultLog(path).Report(OpImportJSON, errors.New("bad json")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "existing line\n"))
	assert.Contains(t, string(data), "import_json: bad json")
}

func TestReportFlattensMultiLineDetail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")

	require.NoError(t, NewFaultLog(path).Report(OpExportJSON, errors.New("first\nsecond")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), "export_json: first second")
}

func TestReportFailureIsReturnedNotPanicked(t *testing.T) {
	dir := t.TempDir()
	log := NewFaultLog(dir) // a directory cannot be opened for append

	var err error
	assert.NotPanics(t, func() {
		err = log.Report(OpSaveContacts, errors.New("disk full"))
	})
	assert.Error(t, err)
}

func TestReportIgnoresNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")

	assert.NoError(t, NewFaultLog(path).Report(OpSaveContacts, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	var nilLog *FaultLog
	assert.NoError(t, nilLog.Report(OpSaveContacts, errors.New("x")))
}

func TestRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")
	log := NewFaultLog(path)

	faults, err := log.Recent(5)
	require.NoError(t, err)
	assert.Empty(t, faults, "missing log has no entries")

	base := time.Date(2025, 11, 15, 9, 0, 0, 0, time.Local)
	for i, op := range []string{OpLoadContacts, OpSaveContacts, OpExportJSON} {
		log.now = fixedClock(base.Add(time.Duration(i) * time.Minute))
		require.NoError(t, log.Report(op, errors.New("detail: with colon")))
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("not a fault line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	faults, err = log.Recent(2)
	require.NoError(t, err)
	require.Len(t, faults, 2)
	assert.Equal(t, OpSaveContacts, faults[0].Op)
	assert.Equal(t, OpExportJSON, faults[1].Op)
	assert.Equal(t, "detail: with colon", faults[1].Detail)
	assert.True(t, faults[1].Timestamp.Equal(base.Add(2*time.Minute)))

	all, err := log.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestParseFaultRejectsGarbage(t *testing.T) {
	for _, line := range []string{
		"",
		"no brackets",
		"[not a time] load_contacts: x",
		"[2025-11-15 09:00:00.000000] missing separator",
		"[2025-11-15 09:00:00.000000 unterminated",
	} {
		_, err := ParseFault(line)
		assert.Error(t, err, "line %q", line)
	}
}
