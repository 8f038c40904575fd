package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/contactbook/internal/models"
	"rhystmorgan/contactbook/internal/utils"
)

const (
	fieldName = iota
	fieldPhone
	fieldEmail
)

var fieldLabels = []string{"Name", "Phone", "Email"}

// ContactForm collects name, phone and email. When editing, the current
// values are shown as placeholders and an empty field keeps them.
type ContactForm struct {
	inputs []textinput.Model
	focus  int
}

func NewContactForm(current *models.Contact) *ContactForm {
	form := &ContactForm{inputs: make([]textinput.Model, len(fieldLabels))}

	for i := range form.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 100
		input.Width = 40
		form.inputs[i] = input
	}

	if current != nil {
		form.inputs[fieldName].Placeholder = current.Name
		form.inputs[fieldPhone].Placeholder = current.Phone
		form.inputs[fieldEmail].Placeholder = current.Email
	}

	form.inputs[fieldName].Focus()
	return form
}

// Update handles one message. submitted is true once enter is pressed on the
// last field.
func (f *ContactForm) Update(msg tea.Msg) (submitted bool, cmd tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return true, nil
			}
			return false, f.move(1)
		case "tab", "down":
			return false, f.move(1)
		case "shift+tab", "up":
			return false, f.move(-1)
		}
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *ContactForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// Values returns the typed fields formatted for storage.
func (f *ContactForm) Values() (name, phone, email string) {
	return utils.FormatName(f.inputs[fieldName].Value()),
		utils.FormatPhone(f.inputs[fieldPhone].Value()),
		utils.FormatEmail(f.inputs[fieldEmail].Value())
}

func (f *ContactForm) View() string {
	var b strings.Builder
	for i, input := range f.inputs {
		label := utils.MutedStyle.Render(fieldLabels[i] + ":")
		if i == f.focus {
			label = utils.SelectedStyle.Render(fieldLabels[i] + ":")
		}
		b.WriteString(label + " " + input.View() + "\n")
	}
	return b.String()
}
