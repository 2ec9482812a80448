package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vinimoraes/lembretes-api/mailer"
)

// NotifyReminder sends the due-soon warning email for a reminder. The email
// goes out only when the owner opted in, an address is attached, and the
// due date falls within the warning window; anything else is reported as a
// normal informational response, not an error.
func (h *ReminderHandler) NotifyReminder(c *gin.Context) {
	reminder, ok := h.findByParamID(c)
	if !ok {
		return
	}

	if !reminder.NotificationEligible() || !reminder.DueSoon(time.Now()) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Condições de envio não atendidas",
			"name":    reminder.Name,
		})
		return
	}

	if err := h.mailer.Notify(reminder, mailer.ReasonDueSoon); err != nil {
		log.Printf("error sending due-soon notification for reminder %d: %v", reminder.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao enviar o email de aviso"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email de aviso enviado",
		"name":    reminder.Name,
	})
}
