package models

import (
	"time"
)

// DueSoonWindow is how far ahead of its due date a reminder counts as
// "due soon".
const DueSoonWindow = 24 * time.Hour

// Reminder represents a reminder record.
type Reminder struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"not null;uniqueIndex;type:varchar(60)"`
	NameNormalized string     `json:"name_normalized" gorm:"not null;index;type:varchar(140)"`
	Description    string     `json:"description" gorm:"not null;type:varchar(255)"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	SendEmail      bool       `json:"send_email" gorm:"not null;default:false"`
	Recurring      bool       `json:"recurring" gorm:"not null;default:false"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// One-to-One Relation
	Email *Email `json:"email,omitempty" gorm:"foreignKey:ReminderID;constraint:OnDelete:CASCADE"`
}

// Email represents the notification address attached to a reminder.
// At most one row exists per reminder.
type Email struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Address    string    `json:"address" gorm:"not null;type:varchar(60)"`
	ReminderID uint      `json:"reminder_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// NotificationAddress returns the reminder's notification email address,
// or an empty string when none is attached.
func (r *Reminder) NotificationAddress() string {
	if r.Email == nil {
		return ""
	}
	return r.Email.Address
}

// NotificationEligible reports whether the reminder qualifies for an
// outbound email: the owner opted in and an address is attached. The due
// date plays no part here; it only gates the due-soon trigger.
func (r *Reminder) NotificationEligible() bool {
	return r.SendEmail && r.NotificationAddress() != ""
}

// DueSoon reports whether the reminder's due date falls within
// DueSoonWindow of the reference time. Already past-due still counts as
// due soon. A reminder without a due date is never due soon.
func (r *Reminder) DueSoon(ref time.Time) bool {
	if r.DueDate == nil {
		return false
	}
	return r.DueDate.Sub(ref) <= DueSoonWindow
}
