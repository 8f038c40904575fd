package models

import (
	"strings"
)

// Contact is a single directory entry. Name is the case-insensitive key.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ContactList is ordered; insertion order is file order.
type ContactList []Contact

// RejectedRow records a stored row that could not become a Contact.
type RejectedRow struct {
	Line   int
	Reason string
}

// NewContact builds a Contact, rejecting a blank name.
func NewContact(name, phone, email string) (Contact, error) {
	if strings.TrimSpace(name) == "" {
		return Contact{}, ErrEmptyName
	}
	return Contact{Name: name, Phone: phone, Email: email}.Normalized(), nil
}

// Normalized folds CRLF and lone CR line breaks in every field to LF, the
// form a CSV reader hands back.
func (c Contact) Normalized() Contact {
	return Contact{
		Name:  normalizeLineBreaks(c.Name),
		Phone: normalizeLineBreaks(c.Phone),
		Email: normalizeLineBreaks(c.Email),
	}
}

func normalizeLineBreaks(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// NormalizedName is the de-duplication key for c.
func (c Contact) NormalizedName() string {
	return NormalizeName(c.Name)
}

func NormalizeName(name string) string {
	return strings.ToLower(name)
}

// Apply overwrites each field of c whose replacement is non-empty.
func (c *Contact) Apply(name, phone, email string) {
	if name != "" {
		c.Name = name
	}
	if phone != "" {
		c.Phone = phone
	}
	if email != "" {
		c.Email = email
	}
	*c = c.Normalized()
}

// Clone returns a copy that shares no backing array with cl.
func (cl ContactList) Clone() ContactList {
	out := make(ContactList, len(cl))
	copy(out, cl)
	return out
}

// Normalized returns a copy with every contact's line breaks normalized.
func (cl ContactList) Normalized() ContactList {
	out := make(ContactList, len(cl))
	for i, contact := range cl {
		out[i] = contact.Normalized()
	}
	return out
}

func (cl ContactList) HasName(name string) bool {
	key := NormalizeName(name)
	for _, contact := range cl {
		if contact.NormalizedName() == key {
			return true
		}
	}
	return false
}

// Search returns every contact whose name contains query, ignoring case.
func (cl ContactList) Search(query string) ContactList {
	query = strings.ToLower(query)
	results := ContactList{}
	for _, contact := range cl {
		if strings.Contains(contact.NormalizedName(), query) {
			results = append(results, contact)
		}
	}
	return results
}

// Merge appends every candidate whose normalized name is not already present
// in current or earlier in candidates. Existing records are never modified.
// The inputs are left untouched; the returned list is a fresh slice.
func Merge(current, candidates ContactList) (ContactList, int) {
	merged := make(ContactList, len(current), len(current)+len(candidates))
	copy(merged, current)

	seen := make(map[string]bool, len(current)+len(candidates))
	for _, contact := range current {
		seen[contact.NormalizedName()] = true
	}

	added := 0
	for _, candidate := range candidates {
		key := candidate.NormalizedName()
		if seen[key] {
			continue
		}
		merged = append(merged, candidate)
		seen[key] = true
		added++
	}

	return merged, added
}
