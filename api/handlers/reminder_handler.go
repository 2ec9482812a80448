package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vinimoraes/lembretes-api/mailer"
	"github.com/vinimoraes/lembretes-api/models"
	"github.com/vinimoraes/lembretes-api/repository"
)

// ReminderHandler serves the reminder CRUD endpoints. The database handle
// and mailer are injected at construction.
type ReminderHandler struct {
	db     *repository.Database
	mailer *mailer.Mailer
}

// NewReminderHandler creates a handler backed by the given database and mailer.
func NewReminderHandler(db *repository.Database, m *mailer.Mailer) *ReminderHandler {
	return &ReminderHandler{db: db, mailer: m}
}

// CreateReminderInput DTO for creating a new reminder
type CreateReminderInput struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description" binding:"required"`
	DueDate           string `json:"due_date"`
	SendEmail         bool   `json:"send_email"`
	Recurring         bool   `json:"recurring"`
	NotificationEmail string `json:"notification_email"`
}

// CreateReminder creates a new reminder in the database.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var input CreateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateName(input.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateDescription(input.Description); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder := models.Reminder{
		Name:           input.Name,
		NameNormalized: models.Normalize(input.Name),
		Description:    input.Description,
		SendEmail:      input.SendEmail,
		Recurring:      input.Recurring,
	}

	if input.DueDate != "" {
		due, err := parseDueDate(input.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reminder.DueDate = &due
	}

	if input.NotificationEmail != "" {
		reminder.Email = &models.Email{Address: input.NotificationEmail}
	}

	if err := h.db.CreateReminder(&reminder); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "Já existe um lembrete com este nome"})
			return
		}
		log.Printf("error creating reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao salvar o lembrete"})
		return
	}

	// The reminder is committed; the email is advisory and must not undo it.
	h.notifyBestEffort(&reminder, mailer.ReasonCreated)

	c.JSON(http.StatusCreated, toReminderView(&reminder))
}

// GetReminder retrieves a single reminder by its ID.
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	reminder, ok := h.findByParamID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toReminderView(reminder))
}

// SearchReminderByName retrieves a reminder by its name, comparing the
// normalized form so accented and cased variants match.
func (h *ReminderHandler) SearchReminderByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe o nome do lembrete"})
		return
	}

	reminder, err := h.db.GetReminderByNormalizedName(models.Normalize(name))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lembrete não encontrado"})
			return
		}
		log.Printf("error searching reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar o lembrete"})
		return
	}

	c.JSON(http.StatusOK, toReminderView(reminder))
}

// ListReminders retrieves all reminders from the database.
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	reminders, err := h.db.ListReminders()
	if err != nil {
		log.Printf("error listing reminders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar os lembretes"})
		return
	}

	views := make([]ReminderView, 0, len(reminders))
	for i := range reminders {
		views = append(views, toReminderView(&reminders[i]))
	}

	c.JSON(http.StatusOK, gin.H{"reminders": views})
}

// UpdateReminderInput DTO for updating a reminder. Pointer fields
// distinguish "absent, keep the stored value" from explicit zero values
// like false and the empty string.
type UpdateReminderInput struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	DueDate           *string `json:"due_date"`
	SendEmail         *bool   `json:"send_email"`
	Recurring         *bool   `json:"recurring"`
	NotificationEmail *string `json:"notification_email"`
}

// UpdateReminder updates an existing reminder.
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	reminder, ok := h.findByParamID(c)
	if !ok {
		return
	}

	var input UpdateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reminder.Name = *input.Name
		reminder.NameNormalized = models.Normalize(*input.Name)
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reminder.Description = *input.Description
	}
	if input.DueDate != nil {
		if *input.DueDate == "" {
			reminder.DueDate = nil
		} else {
			due, err := parseDueDate(*input.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reminder.DueDate = &due
		}
	}
	if input.SendEmail != nil {
		reminder.SendEmail = *input.SendEmail
	}
	if input.Recurring != nil {
		reminder.Recurring = *input.Recurring
	}

	if err := h.db.UpdateReminder(reminder, input.NotificationEmail); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": "Já existe um lembrete com este nome"})
			return
		}
		log.Printf("error updating reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao atualizar o lembrete"})
		return
	}

	// Reload so the response reflects the reconciled email row.
	updated, err := h.db.GetReminder(reminder.ID)
	if err != nil {
		log.Printf("error reloading reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar o lembrete"})
		return
	}

	h.notifyBestEffort(updated, mailer.ReasonUpdated)

	c.JSON(http.StatusOK, toReminderView(updated))
}

// DeleteReminder deletes a reminder and its notification email data.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	reminder, ok := h.findByParamID(c)
	if !ok {
		return
	}

	if err := h.db.DeleteReminder(reminder); err != nil {
		log.Printf("error deleting reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao remover o lembrete"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lembrete removido", "name": reminder.Name})
}

// findByParamID loads the reminder addressed by the :id route parameter,
// writing the error response itself when the ID is malformed or unknown.
func (h *ReminderHandler) findByParamID(c *gin.Context) (*models.Reminder, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return nil, false
	}

	reminder, err := h.db.GetReminder(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lembrete não encontrado"})
			return nil, false
		}
		log.Printf("error fetching reminder: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar o lembrete"})
		return nil, false
	}

	return reminder, true
}

// notifyBestEffort sends a notification email when the reminder is
// eligible, logging failures instead of surfacing them.
func (h *ReminderHandler) notifyBestEffort(reminder *models.Reminder, reason mailer.Reason) {
	if h.mailer == nil || !reminder.NotificationEligible() {
		return
	}
	if err := h.mailer.Notify(reminder, reason); err != nil {
		log.Printf("error sending %s notification for reminder %d: %v", reason, reminder.ID, err)
	}
}
