package views

import (
	"rhystmorgan/contactbook/internal/models"
	"rhystmorgan/contactbook/internal/utils"
)

type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

// FeedbackMessage is the one-line status shown under the menu after an
// operation finishes.
type FeedbackMessage struct {
	Type    FeedbackType
	Message string
}

func feedbackFor(text string, err error) *FeedbackMessage {
	if err != nil {
		return &FeedbackMessage{Type: FeedbackError, Message: models.UserMessage(err)}
	}
	return &FeedbackMessage{Type: FeedbackSuccess, Message: text}
}

func (f *FeedbackMessage) View() string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case FeedbackError:
		return utils.ErrorStyle.Render(f.Message)
	case FeedbackWarning:
		return utils.WarningStyle.Render(f.Message)
	case FeedbackInfo:
		return utils.MutedStyle.Render(f.Message)
	default:
		return utils.SuccessStyle.Render(f.Message)
	}
}
