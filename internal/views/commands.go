package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/contactbook/internal/book"
	"rhystmorgan/contactbook/internal/models"
	"rhystmorgan/contactbook/internal/storage"
)

// StatusMsg reports a finished operation and returns the app to the menu.
type StatusMsg struct {
	Text string
	Err  error
	Kind FeedbackType
}

// ContactsLoadedMsg carries a freshly loaded list to the screen in Next.
type ContactsLoadedMsg struct {
	Next     ViewState
	Title    string
	Contacts models.ContactList
	Rejected []models.RejectedRow
	Fault    error
}

type ImportPreviewMsg struct {
	Result storage.ImportResult
	Err    error
}

func loadContactsCmd(b *book.Book, next ViewState, title string) tea.Cmd {
	return func() tea.Msg {
		result := b.Load()
		return ContactsLoadedMsg{
			Next:     next,
			Title:    title,
			Contacts: result.Contacts,
			Rejected: result.Rejected,
			Fault:    result.Fault,
		}
	}
}

func searchCmd(b *book.Book, query string) tea.Cmd {
	return func() tea.Msg {
		return ContactsLoadedMsg{
			Next:     ViewList,
			Title:    "SEARCH RESULTS",
			Contacts: b.Search(query),
		}
	}
}

func addContactCmd(b *book.Book, name, phone, email string) tea.Cmd {
	return func() tea.Msg {
		if _, err := b.Add(name, phone, email); err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Text: "Contact saved!"}
	}
}

func updateContactCmd(b *book.Book, index string, changes book.Changes) tea.Cmd {
	return func() tea.Msg {
		if _, err := b.Update(index, changes); err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Text: "Contact updated!"}
	}
}

func deleteContactCmd(b *book.Book, index string, confirmed bool) tea.Cmd {
	return func() tea.Msg {
		result, err := b.Delete(index, confirmed)
		if err != nil {
			return StatusMsg{Err: err}
		}
		if result.Cancelled {
			return StatusMsg{Text: "Deletion cancelled.", Kind: FeedbackInfo}
		}
		return StatusMsg{Text: "Contact deleted!"}
	}
}

func exportCmd(b *book.Book, path string) tea.Cmd {
	return func() tea.Msg {
		count, err := b.Export()
		if err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Text: fmt.Sprintf("Exported %d contacts to %s!", count, path)}
	}
}

func previewImportCmd(b *book.Book) tea.Cmd {
	return func() tea.Msg {
		result, err := b.PreviewImport()
		return ImportPreviewMsg{Result: result, Err: err}
	}
}

func importCmd(b *book.Book, candidates models.ContactList) tea.Cmd {
	return func() tea.Msg {
		added, err := b.Import(candidates)
		if err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Text: fmt.Sprintf("Successfully imported %d new contacts!", added)}
	}
}
