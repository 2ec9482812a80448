package repository

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"

	"github.com/vinimoraes/lembretes-api/models"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := Open(sqlite.Open(":memory:"), false)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// The in-memory database lives in a single connection.
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("DB() error = %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newReminder(name string) *models.Reminder {
	return &models.Reminder{
		Name:           name,
		NameNormalized: models.Normalize(name),
		Description:    "trocar o óleo a cada 10 mil km",
	}
}

func TestCreateAndGetReminder(t *testing.T) {
	db := setupTestDB(t)

	due := time.Date(2023, 9, 20, 0, 0, 0, 0, time.UTC)
	reminder := newReminder("Trocar o óleo")
	reminder.DueDate = &due
	reminder.SendEmail = true
	reminder.Email = &models.Email{Address: "a@b.com"}

	if err := db.CreateReminder(reminder); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}
	if reminder.ID == 0 {
		t.Fatal("CreateReminder() did not assign an ID")
	}

	got, err := db.GetReminder(reminder.ID)
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.Name != "Trocar o óleo" {
		t.Errorf("Name = %q, want %q", got.Name, "Trocar o óleo")
	}
	if got.NameNormalized != "trocar o oleo" {
		t.Errorf("NameNormalized = %q, want %q", got.NameNormalized, "trocar o oleo")
	}
	if got.NotificationAddress() != "a@b.com" {
		t.Errorf("NotificationAddress() = %q, want %q", got.NotificationAddress(), "a@b.com")
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", got.DueDate, due)
	}
}

func TestCreateReminderDuplicateName(t *testing.T) {
	db := setupTestDB(t)

	if err := db.CreateReminder(newReminder("Ir no dentista")); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}

	err := db.CreateReminder(newReminder("Ir no dentista"))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("CreateReminder() error = %v, want ErrDuplicateName", err)
	}

	// The failed create must not leave a second row behind.
	reminders, err := db.ListReminders()
	if err != nil {
		t.Fatalf("ListReminders() error = %v", err)
	}
	if len(reminders) != 1 {
		t.Errorf("ListReminders() returned %d reminders, want 1", len(reminders))
	}
}

func TestGetReminderNotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetReminder(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetReminder() error = %v, want ErrNotFound", err)
	}
}

func TestGetReminderByNormalizedName(t *testing.T) {
	db := setupTestDB(t)

	if err := db.CreateReminder(newReminder("Trocar o óleo")); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}

	got, err := db.GetReminderByNormalizedName(models.Normalize("TROCAR O OLEO"))
	if err != nil {
		t.Fatalf("GetReminderByNormalizedName() error = %v", err)
	}
	if got.Name != "Trocar o óleo" {
		t.Errorf("Name = %q, want %q", got.Name, "Trocar o óleo")
	}

	if _, err := db.GetReminderByNormalizedName("nao existe"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetReminderByNormalizedName() error = %v, want ErrNotFound", err)
	}
}

func TestListRemindersInsertionOrder(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"Primeiro", "Segundo", "Terceiro"} {
		if err := db.CreateReminder(newReminder(name)); err != nil {
			t.Fatalf("CreateReminder(%q) error = %v", name, err)
		}
	}

	reminders, err := db.ListReminders()
	if err != nil {
		t.Fatalf("ListReminders() error = %v", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("ListReminders() returned %d reminders, want 3", len(reminders))
	}
	for i, want := range []string{"Primeiro", "Segundo", "Terceiro"} {
		if reminders[i].Name != want {
			t.Errorf("reminders[%d].Name = %q, want %q", i, reminders[i].Name, want)
		}
	}
}

func TestListRemindersEmpty(t *testing.T) {
	db := setupTestDB(t)

	reminders, err := db.ListReminders()
	if err != nil {
		t.Fatalf("ListReminders() error = %v", err)
	}
	if len(reminders) != 0 {
		t.Errorf("ListReminders() returned %d reminders, want 0", len(reminders))
	}
}

func TestUpdateReminderEmailLifecycle(t *testing.T) {
	db := setupTestDB(t)

	reminder := newReminder("Pagar contas")
	if err := db.CreateReminder(reminder); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}

	// Attach an address.
	address := "a@b.com"
	if err := db.UpdateReminder(reminder, &address); err != nil {
		t.Fatalf("UpdateReminder() error = %v", err)
	}
	got, err := db.GetReminder(reminder.ID)
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.NotificationAddress() != "a@b.com" {
		t.Errorf("NotificationAddress() = %q, want %q", got.NotificationAddress(), "a@b.com")
	}

	// Replace it.
	address = "c@d.com"
	if err := db.UpdateReminder(got, &address); err != nil {
		t.Fatalf("UpdateReminder() error = %v", err)
	}
	count, err := db.CountEmails(reminder.ID)
	if err != nil {
		t.Fatalf("CountEmails() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountEmails() = %d, want 1", count)
	}

	// Clear it with an empty string.
	empty := ""
	got, _ = db.GetReminder(reminder.ID)
	if err := db.UpdateReminder(got, &empty); err != nil {
		t.Fatalf("UpdateReminder() error = %v", err)
	}
	got, err = db.GetReminder(reminder.ID)
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.NotificationAddress() != "" {
		t.Errorf("NotificationAddress() = %q, want empty", got.NotificationAddress())
	}
}

func TestUpdateReminderAdvancesUpdatedAt(t *testing.T) {
	db := setupTestDB(t)

	reminder := newReminder("Regar as plantas")
	if err := db.CreateReminder(reminder); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}
	before := reminder.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	reminder.Description = "regar as suculentas também"
	if err := db.UpdateReminder(reminder, nil); err != nil {
		t.Fatalf("UpdateReminder() error = %v", err)
	}

	got, err := db.GetReminder(reminder.ID)
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.Description != "regar as suculentas também" {
		t.Errorf("Description = %q, want the updated text", got.Description)
	}
	if !got.UpdatedAt.After(before) {
		t.Errorf("UpdatedAt = %v, want later than %v", got.UpdatedAt, before)
	}
}

func TestUpdateReminderDuplicateName(t *testing.T) {
	db := setupTestDB(t)

	if err := db.CreateReminder(newReminder("Primeiro")); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}
	second := newReminder("Segundo")
	if err := db.CreateReminder(second); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}

	second.Name = "Primeiro"
	second.NameNormalized = models.Normalize("Primeiro")
	if err := db.UpdateReminder(second, nil); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("UpdateReminder() error = %v, want ErrDuplicateName", err)
	}
}

func TestDeleteReminderRemovesEmail(t *testing.T) {
	db := setupTestDB(t)

	reminder := newReminder("Trocar o óleo")
	reminder.SendEmail = true
	reminder.Email = &models.Email{Address: "a@b.com"}
	if err := db.CreateReminder(reminder); err != nil {
		t.Fatalf("CreateReminder() error = %v", err)
	}

	if err := db.DeleteReminder(reminder); err != nil {
		t.Fatalf("DeleteReminder() error = %v", err)
	}

	if _, err := db.GetReminder(reminder.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetReminder() after delete error = %v, want ErrNotFound", err)
	}

	count, err := db.CountEmails(reminder.ID)
	if err != nil {
		t.Fatalf("CountEmails() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountEmails() after delete = %d, want 0", count)
	}
}
