package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/contactbook/internal/book"
	"rhystmorgan/contactbook/internal/models"
	"rhystmorgan/contactbook/internal/utils"
)

type ViewState int

const (
	ViewMenu ViewState = iota
	ViewAdd
	ViewList
	ViewSearch
	ViewUpdateSelect
	ViewUpdateForm
	ViewDeleteSelect
	ViewDeleteConfirm
	ViewImportConfirm
)

type menuItem struct {
	key   string
	label string
}

var menuItems = []menuItem{
	{"1", "Add Contact"},
	{"2", "View Contacts"},
	{"3", "Search Contact"},
	{"4", "Update Contact"},
	{"5", "Delete Contact"},
	{"6", "Export JSON"},
	{"7", "Import JSON"},
	{"8", "Exit"},
}

// AppModel is the interactive menu. It holds no contacts of its own between
// operations; every screen asks the book for a fresh list.
type AppModel struct {
	book   *book.Book
	state  ViewState
	width  int
	height int
	cursor int

	form     *ContactForm
	number   textinput.Model
	query    textinput.Model
	title    string
	contacts models.ContactList
	selected string
	notice   string

	feedback *FeedbackMessage
}

func NewAppModel(b *book.Book) AppModel {
	number := textinput.New()
	number.Prompt = "Contact number: "
	number.CharLimit = 10

	query := textinput.New()
	query.Prompt = "Search name: "
	query.CharLimit = 100

	return AppModel{
		book:   b,
		state:  ViewMenu,
		number: number,
		query:  query,
	}
}

func (m AppModel) State() ViewState {
	return m.state
}

func (m AppModel) Feedback() *FeedbackMessage {
	return m.feedback
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StatusMsg:
		m.feedback = feedbackFor(msg.Text, msg.Err)
		if msg.Err == nil && msg.Kind != "" {
			m.feedback.Type = msg.Kind
		}
		return m.toMenu(), nil

	case ContactsLoadedMsg:
		return m.handleContactsLoaded(msg)

	case ImportPreviewMsg:
		return m.handleImportPreview(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state != ViewMenu {
				m.feedback = nil
				return m.toMenu(), nil
			}
			return m, tea.Quit
		}
	}

	switch m.state {
	case ViewMenu:
		return m.updateMenu(msg)
	case ViewAdd:
		return m.updateAdd(msg)
	case ViewList:
		if _, ok := msg.(tea.KeyMsg); ok {
			return m.toMenu(), nil
		}
	case ViewSearch:
		return m.updateSearch(msg)
	case ViewUpdateSelect, ViewDeleteSelect:
		return m.updateSelect(msg)
	case ViewUpdateForm:
		return m.updateForm(msg)
	case ViewDeleteConfirm:
		return m.updateDeleteConfirm(msg)
	case ViewImportConfirm:
		return m.updateImportConfirm(msg)
	}

	return m, nil
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m.choose(menuItems[m.cursor].key)
	}

	for i, item := range menuItems {
		if key.String() == item.key {
			m.cursor = i
			return m.choose(item.key)
		}
	}

	m.feedback = &FeedbackMessage{Type: FeedbackWarning, Message: "Invalid choice! Please enter 1-8."}
	return m, nil
}

func (m AppModel) choose(key string) (tea.Model, tea.Cmd) {
	m.feedback = nil

	switch key {
	case "1":
		m.form = NewContactForm(nil)
		m.state = ViewAdd
		return m, nil
	case "2":
		return m, loadContactsCmd(m.book, ViewList, "CONTACTS")
	case "3":
		return m, loadContactsCmd(m.book, ViewSearch, "")
	case "4":
		return m, loadContactsCmd(m.book, ViewUpdateSelect, "CONTACTS")
	case "5":
		return m, loadContactsCmd(m.book, ViewDeleteSelect, "CONTACTS")
	case "6":
		return m, exportCmd(m.book, m.book.MirrorPath())
	case "7":
		return m, previewImportCmd(m.book)
	case "8":
		return m, tea.Quit
	}

	return m, nil
}

func (m AppModel) handleContactsLoaded(msg ContactsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Fault != nil {
		m.feedback = feedbackFor("", msg.Fault)
		return m.toMenu(), nil
	}

	m.title = msg.Title
	m.contacts = msg.Contacts
	m.notice = utils.FormatRejected(msg.Rejected)

	if len(msg.Contacts) == 0 {
		switch msg.Next {
		case ViewSearch:
			m.feedback = &FeedbackMessage{Type: FeedbackInfo, Message: "No contacts to search."}
			return m.toMenu(), nil
		case ViewUpdateSelect:
			m.feedback = &FeedbackMessage{Type: FeedbackInfo, Message: "No contacts to update."}
			return m.toMenu(), nil
		case ViewDeleteSelect:
			m.feedback = &FeedbackMessage{Type: FeedbackInfo, Message: "No contacts to delete."}
			return m.toMenu(), nil
		}
	}

	m.state = msg.Next
	switch msg.Next {
	case ViewSearch:
		m.query.SetValue("")
		return m, m.query.Focus()
	case ViewUpdateSelect, ViewDeleteSelect:
		m.number.SetValue("")
		return m, m.number.Focus()
	}
	return m, nil
}

func (m AppModel) handleImportPreview(msg ImportPreviewMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.feedback = feedbackFor("", msg.Err)
		return m.toMenu(), nil
	}

	if len(msg.Result.Candidates) == 0 {
		m.feedback = &FeedbackMessage{Type: FeedbackInfo, Message: "JSON file is empty."}
		if notice := utils.FormatRejected(msg.Result.Rejected); notice != "" {
			m.feedback = &FeedbackMessage{Type: FeedbackWarning, Message: notice + " Nothing to import."}
		}
		return m.toMenu(), nil
	}

	m.state = ViewImportConfirm
	m.title = "PREVIEW IMPORT"
	m.contacts = msg.Result.Candidates
	m.notice = utils.FormatRejected(msg.Result.Rejected)
	return m, nil
}

func (m AppModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	submitted, cmd := m.form.Update(msg)
	if !submitted {
		return m, cmd
	}

	name, phone, email := m.form.Values()
	return m, addContactCmd(m.book, name, phone, email)
}

func (m AppModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		query := strings.ToLower(strings.TrimSpace(m.query.Value()))
		m.query.Blur()
		return m, searchCmd(m.book, query)
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m AppModel) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		m.selected = strings.TrimSpace(m.number.Value())
		m.number.Blur()

		pos, err := book.ParseIndex(m.selected, len(m.contacts))
		if err != nil {
			m.feedback = feedbackFor("", err)
			return m.toMenu(), nil
		}

		current := m.contacts[pos-1]
		if m.state == ViewUpdateSelect {
			m.form = NewContactForm(&current)
			m.state = ViewUpdateForm
		} else {
			m.state = ViewDeleteConfirm
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.number, cmd = m.number.Update(msg)
	return m, cmd
}

func (m AppModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	submitted, cmd := m.form.Update(msg)
	if !submitted {
		return m, cmd
	}

	name, phone, email := m.form.Values()
	return m, updateContactCmd(m.book, m.selected, book.Changes{Name: name, Phone: phone, Email: email})
}

func (m AppModel) updateDeleteConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m, deleteContactCmd(m.book, m.selected, strings.EqualFold(key.String(), "y"))
}

func (m AppModel) updateImportConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if !strings.EqualFold(key.String(), "y") {
		m.feedback = &FeedbackMessage{Type: FeedbackInfo, Message: "Import cancelled."}
		return m.toMenu(), nil
	}
	return m, importCmd(m.book, m.contacts)
}

func (m AppModel) toMenu() AppModel {
	m.state = ViewMenu
	m.form = nil
	m.contacts = nil
	m.selected = ""
	m.notice = ""
	m.query.Blur()
	m.number.Blur()
	return m
}

func (m AppModel) View() string {
	var b strings.Builder
	b.WriteString(utils.TitleStyle.Render("CONTACT BOOK MANAGER"))
	b.WriteString("\n\n")

	switch m.state {
	case ViewMenu:
		b.WriteString(m.menuView())
	case ViewAdd:
		b.WriteString(utils.HeaderStyle.Render("Add Contact") + "\n\n")
		b.WriteString(m.form.View())
	case ViewList:
		b.WriteString(m.tableView())
		b.WriteString("\n\n" + utils.MutedStyle.Render("Press any key to return"))
	case ViewSearch:
		b.WriteString(utils.HeaderStyle.Render("Search Contact") + "\n\n")
		b.WriteString(m.query.View())
	case ViewUpdateSelect, ViewDeleteSelect:
		b.WriteString(m.tableView() + "\n\n")
		b.WriteString(m.number.View())
	case ViewUpdateForm:
		b.WriteString(utils.HeaderStyle.Render("Updating: "+m.selectedName()) + "\n")
		b.WriteString(utils.MutedStyle.Render("Leave a field empty to keep its current value") + "\n\n")
		b.WriteString(m.form.View())
	case ViewDeleteConfirm:
		b.WriteString(utils.WarningStyle.Render(fmt.Sprintf("Delete %s? (y/n)", m.selectedName())))
	case ViewImportConfirm:
		b.WriteString(fmt.Sprintf("Found %d contacts in JSON.\n\n", len(m.contacts)))
		b.WriteString(m.tableView() + "\n\n")
		b.WriteString(utils.WarningStyle.Render("Do you want to merge these into your main contacts? (y/n)"))
	}

	if m.feedback != nil {
		b.WriteString("\n\n" + m.feedback.View())
	}

	content := b.String()
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(content)
	}
	return content
}

func (m AppModel) menuView() string {
	var b strings.Builder
	for i, item := range menuItems {
		line := fmt.Sprintf("%s. %s", item.key, item.label)
		if i == m.cursor {
			b.WriteString(utils.SelectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + utils.MutedStyle.Render("1-8 or ↑/↓ + enter • q quit"))
	return b.String()
}

func (m AppModel) tableView() string {
	view := utils.RenderContactTable(m.contacts, m.title)
	if m.notice != "" {
		view += "\n" + utils.WarningStyle.Render(m.notice)
	}
	return view
}

func (m AppModel) selectedName() string {
	pos, err := book.ParseIndex(m.selected, len(m.contacts))
	if err != nil {
		return m.selected
	}
	return m.contacts[pos-1].Name
}
