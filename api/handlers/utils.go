package handlers

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/vinimoraes/lembretes-api/models"
)

// dueDateLayout is the timestamp format clients send, e.g.
// "2023-09-20T00:00:00.000Z".
const dueDateLayout = "2006-01-02T15:04:05.000Z"

var (
	errEmptyName      = errors.New("O nome não pode ser vazio")
	errNameWithDigits = errors.New("O nome do lembrete não pode conter números")
	errEmptyDesc      = errors.New("A descrição não pode ser vazia")
	errInvalidDueDate = errors.New("Data inválida, use o formato YYYY-MM-DDTHH:MM:SS.sssZ")
)

// validateName checks the reminder name rules: non-empty and free of digits.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errEmptyName
	}
	for _, r := range name {
		if unicode.IsDigit(r) {
			return errNameWithDigits
		}
	}
	return nil
}

// validateDescription checks that the description is non-empty.
func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return errEmptyDesc
	}
	return nil
}

// parseDueDate parses the client-supplied due date. RFC3339 without the
// millisecond part is accepted too.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(dueDateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errInvalidDueDate
	}
	return t, nil
}

// ReminderView is the JSON representation of a reminder returned by every
// endpoint that yields one.
type ReminderView struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	NameNormalized    string  `json:"name_normalized"`
	Description       string  `json:"description"`
	DueDate           *string `json:"due_date"`
	SendEmail         bool    `json:"send_email"`
	NotificationEmail *string `json:"notification_email"`
	Recurring         bool    `json:"recurring"`
}

// toReminderView converts a reminder record into its response shape.
func toReminderView(r *models.Reminder) ReminderView {
	view := ReminderView{
		ID:             r.ID,
		Name:           r.Name,
		NameNormalized: r.NameNormalized,
		Description:    r.Description,
		SendEmail:      r.SendEmail,
		Recurring:      r.Recurring,
	}
	if r.DueDate != nil {
		formatted := r.DueDate.UTC().Format(time.RFC3339)
		view.DueDate = &formatted
	}
	if address := r.NotificationAddress(); address != "" {
		view.NotificationEmail = &address
	}
	return view
}
