package utils

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rhystmorgan/contactbook/internal/models"
)

// FormatName trims and title-cases a typed name: "ada LOVELACE" -> "Ada Lovelace".
func FormatName(input string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(input))
}

func FormatPhone(input string) string {
	return strings.TrimSpace(input)
}

// FormatEmail trims and lowercases a typed address.
func FormatEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// RenderContactTable lays contacts out as a numbered table with a total
// footer. Numbers are the 1-based positions Update and Delete accept.
func RenderContactTable(contacts models.ContactList, title string) string {
	if len(contacts) == 0 {
		return MutedStyle.Render("No contacts found.")
	}

	rule := RuleStyle.Render(strings.Repeat("-", 50))

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-5s %-20s %-15s %s", "No.", "Name", "Phone", "Email")))
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n")
	for i, contact := range contacts {
		b.WriteString(FormatContactRow(i+1, contact))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Total: %d", len(contacts)))

	return b.String()
}

func FormatContactRow(number int, contact models.Contact) string {
	return fmt.Sprintf("%-5d %-20s %-15s %s", number, contact.Name, contact.Phone, contact.Email)
}

// FormatRejected summarises rows skipped while loading or importing, or
// returns "" when there were none.
func FormatRejected(rows []models.RejectedRow) string {
	switch len(rows) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Skipped 1 entry without a name (line %d).", rows[0].Line)
	default:
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, fmt.Sprintf("%d", row.Line))
		}
		return fmt.Sprintf("Skipped %d entries without a name (lines %s).", len(rows), strings.Join(lines, ", "))
	}
}
