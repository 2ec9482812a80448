package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vinimoraes/lembretes-api/models"
)

var (
	// ErrNotFound is returned when no reminder matches the lookup.
	ErrNotFound = errors.New("reminder not found")
	// ErrDuplicateName is returned when a write collides with the unique
	// index on the reminder name.
	ErrDuplicateName = errors.New("reminder name already exists")
)

// translate maps GORM errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	}
	return err
}

// CreateReminder persists a new reminder, including its Email association
// when set. The write is attempted directly and a unique-index violation
// comes back as ErrDuplicateName; there is no pre-check query to race with.
func (d *Database) CreateReminder(reminder *models.Reminder) error {
	if err := d.DB.Create(reminder).Error; err != nil {
		return translate(err)
	}
	return nil
}

// GetReminder retrieves a single reminder by its ID.
func (d *Database) GetReminder(id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := d.DB.Preload("Email").First(&reminder, id).Error; err != nil {
		return nil, translate(err)
	}
	return &reminder, nil
}

// GetReminderByNormalizedName retrieves a reminder by its normalized name.
// The caller is expected to normalize the search term first.
func (d *Database) GetReminderByNormalizedName(normalized string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := d.DB.Preload("Email").
		Where("name_normalized = ?", normalized).
		First(&reminder).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reminder, nil
}

// ListReminders retrieves all reminders in insertion order.
func (d *Database) ListReminders() ([]models.Reminder, error) {
	reminders := make([]models.Reminder, 0)
	if err := d.DB.Preload("Email").Order("id ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// UpdateReminder saves the reminder's own columns and reconciles the email
// row in the same transaction. A nil address leaves the email row alone,
// an empty address removes it, anything else inserts or replaces it.
func (d *Database) UpdateReminder(reminder *models.Reminder, address *string) error {
	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Email").Save(reminder).Error; err != nil {
			return err
		}

		if address == nil {
			return nil
		}
		if *address == "" {
			return tx.Where("reminder_id = ?", reminder.ID).Delete(&models.Email{}).Error
		}

		var email models.Email
		err := tx.Where("reminder_id = ?", reminder.ID).First(&email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			email = models.Email{ReminderID: reminder.ID, Address: *address}
			return tx.Create(&email).Error
		}
		if err != nil {
			return err
		}
		email.Address = *address
		return tx.Save(&email).Error
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

// DeleteReminder removes the reminder and its email row as one unit.
// Either both rows go or neither does.
func (d *Database) DeleteReminder(reminder *models.Reminder) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reminder_id = ?", reminder.ID).Delete(&models.Email{}).Error; err != nil {
			return err
		}
		return tx.Delete(reminder).Error
	})
}

// CountEmails returns how many email rows reference the given reminder.
// Used by tests to verify deletes leave nothing orphaned.
func (d *Database) CountEmails(reminderID uint) (int64, error) {
	var count int64
	err := d.DB.Model(&models.Email{}).
		Where("reminder_id = ?", reminderID).
		Count(&count).Error
	return count, err
}
