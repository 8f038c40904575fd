package models

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeStorageInit     ErrorType = "storage_init"
	ErrTypeIO              ErrorType = "io"
	ErrTypeParse           ErrorType = "parse"
	ErrTypeNotFound        ErrorType = "not_found"
	ErrTypeInvalidInput    ErrorType = "invalid_input"
	ErrTypeIndexOutOfRange ErrorType = "index_out_of_range"
	ErrTypeEmptyName       ErrorType = "empty_name"
	ErrTypeDuplicateName   ErrorType = "duplicate_name"
	ErrTypeNothingToExport ErrorType = "nothing_to_export"
)

// Sentinels for errors.Is. A *ContactError matches the sentinel of the same Type.
var (
	ErrIO              = &ContactError{Type: ErrTypeIO, Message: "i/o failure"}
	ErrParse           = &ContactError{Type: ErrTypeParse, Message: "malformed data"}
	ErrNotFound        = &ContactError{Type: ErrTypeNotFound, Message: "file not found"}
	ErrInvalidInput    = &ContactError{Type: ErrTypeInvalidInput, Message: "invalid input"}
	ErrIndexOutOfRange = &ContactError{Type: ErrTypeIndexOutOfRange, Message: "index out of range"}
	ErrEmptyName       = &ContactError{Type: ErrTypeEmptyName, Message: "name cannot be empty"}
	ErrDuplicateName   = &ContactError{Type: ErrTypeDuplicateName, Message: "contact already exists"}
	ErrNothingToExport = &ContactError{Type: ErrTypeNothingToExport, Message: "no contacts to export"}
)

type ContactError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ContactError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ContactError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *ContactError of the same Type.
func (e *ContactError) Is(target error) bool {
	var t *ContactError
	if !errors.As(target, &t) {
		return false
	}
	return t.Type == e.Type
}

func NewContactError(errType ErrorType, message string, cause error) *ContactError {
	return &ContactError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewIOError(message string, cause error) *ContactError {
	return NewContactError(ErrTypeIO, message, cause)
}

func NewParseError(message string, cause error) *ContactError {
	return NewContactError(ErrTypeParse, message, cause)
}

func NewNotFoundError(path string, cause error) *ContactError {
	return NewContactError(ErrTypeNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

func NewInvalidInputError(input string) *ContactError {
	return NewContactError(ErrTypeInvalidInput, fmt.Sprintf("not a valid number: %q", input), nil)
}

func NewIndexOutOfRangeError(index, length int) *ContactError {
	if length == 0 {
		return NewContactError(ErrTypeIndexOutOfRange,
			fmt.Sprintf("contact number %d out of range: no contacts", index), nil)
	}
	return NewContactError(ErrTypeIndexOutOfRange,
		fmt.Sprintf("contact number %d out of range 1-%d", index, length), nil)
}

func NewDuplicateNameError(name string) *ContactError {
	return NewContactError(ErrTypeDuplicateName, fmt.Sprintf("contact already exists: %s", name), nil)
}

// UserMessage returns the single-line status shown to the user.
func (e *ContactError) UserMessage() string {
	switch e.Type {
	case ErrTypeIO:
		return "Error saving contacts!"
	case ErrTypeParse:
		return "Contact data is corrupted!"
	case ErrTypeNotFound:
		return "No JSON file found! Export contacts first."
	case ErrTypeInvalidInput:
		return "Please enter a valid number."
	case ErrTypeIndexOutOfRange:
		return "Invalid contact number!"
	case ErrTypeEmptyName:
		return "Name cannot be empty!"
	case ErrTypeDuplicateName:
		return "Contact already exists!"
	case ErrTypeNothingToExport:
		return "No contacts to export."
	default:
		return "An unexpected error occurred."
	}
}

// UserMessage returns the user-facing text for any error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *ContactError
	if errors.As(err, &ce) {
		return ce.UserMessage()
	}
	return "An unexpected error occurred."
}
