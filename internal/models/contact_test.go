package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(names ...string) ContactList {
	list := make(ContactList, 0, len(names))
	for _, name := range names {
		list = append(list, Contact{Name: name})
	}
	return list
}

func TestNewContact(t *testing.T) {
	contact, err := NewContact("Ada Lovelace", "555-0100", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, Contact{Name: "Ada Lovelace", Phone: "555-0100", Email: "ada@example.com"}, contact)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := NewContact(name, "555-0100", "")
		assert.True(t, errors.Is(err, ErrEmptyName), "name %q should be rejected", name)
	}
}

func TestContactApplyKeepsEmptyFields(t *testing.T) {
	contact := Contact{Name: "Ada", Phone: "1", Email: "ada@example.com"}

	contact.Apply("", "2", "")
	assert.Equal(t, Contact{Name: "Ada", Phone: "2", Email: "ada@example.com"}, contact)

	contact.Apply("Grace", "", "grace@example.com")
	assert.Equal(t, Contact{Name: "Grace", Phone: "2", Email: "grace@example.com"}, contact)
}

func TestHasNameIgnoresCase(t *testing.T) {
	list := named("Alice", "Bob")

	assert.True(t, list.HasName("alice"))
	assert.True(t, list.HasName("BOB"))
	assert.False(t, list.HasName("Carol"))
	assert.False(t, ContactList{}.HasName("alice"))
}

func TestSearch(t *testing.T) {
	list := named("Alice Smith", "Bob Jones", "alice cooper")

	found := list.Search("ALICE")
	assert.Equal(t, named("Alice Smith", "alice cooper"), found)

	assert.Equal(t, list, list.Search(""), "empty query matches everything")
	assert.Empty(t, list.Search("zed"))
	assert.NotNil(t, list.Search("zed"))
}

func TestMergeWithNoCandidates(t *testing.T) {
	current := named("Alice", "Bob")

	merged, added := Merge(current, nil)
	assert.Equal(t, current, merged)
	assert.Zero(t, added)

	merged, added = Merge(current, ContactList{})
	assert.Equal(t, current, merged)
	assert.Zero(t, added)
}

func TestMergeRejectsExistingNames(t *testing.T) {
	merged, added := Merge(named("Alice"), named("alice", "ALICE"))

	assert.Equal(t, named("Alice"), merged)
	assert.Zero(t, added)
}

func TestMergeDedupsWithinBatch(t *testing.T) {
	merged, added := Merge(ContactList{}, named("alice", "ALICE", "Bob", "bob"))

	assert.Equal(t, named("alice", "Bob"), merged)
	assert.Equal(t, 2, added)
}

func TestMergeNeverOverwritesExisting(t *testing.T) {
	current := ContactList{{Name: "Alice", Phone: "1", Email: "old@example.com"}}
	candidates := ContactList{
		{Name: "alice", Phone: "2", Email: "new@example.com"},
		{Name: "Carol", Phone: "3"},
	}

	merged, added := Merge(current, candidates)

	require.Len(t, merged, 2)
	assert.Equal(t, current[0], merged[0])
	assert.Equal(t, candidates[1], merged[1])
	assert.Equal(t, 1, added)
}

func TestMergeIsPure(t *testing.T) {
	current := named("Alice")
	candidates := named("Bob", "alice", "Carol")
	currentBefore := current.Clone()
	candidatesBefore := candidates.Clone()

	first, firstAdded := Merge(current, candidates)
	second, secondAdded := Merge(current, candidates)

	assert.Equal(t, first, second)
	assert.Equal(t, firstAdded, secondAdded)
	assert.Equal(t, 2, firstAdded)
	assert.Equal(t, currentBefore, current)
	assert.Equal(t, candidatesBefore, candidates)

	first[0].Name = "Changed"
	assert.Equal(t, "Alice", current[0].Name, "merged list must not share storage with current")
}

func TestNewContactNormalizesLineBreaks(t *testing.T) {
	contact, err := NewContact("Ada", "line1\r\nline2", "a\rb")
	require.NoError(t, err)
	assert.Equal(t, Contact{Name: "Ada", Phone: "line1\nline2", Email: "a\nb"}, contact)
}

func TestApplyNormalizesLineBreaks(t *testing.T) {
	contact := Contact{Name: "Ada"}

	contact.Apply("", "line1\r\nline2", "")
	assert.Equal(t, "line1\nline2", contact.Phone)
}
