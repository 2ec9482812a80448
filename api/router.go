package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vinimoraes/lembretes-api/api/handlers"
	"github.com/vinimoraes/lembretes-api/api/middleware"
)

// NewRouter wires the reminder routes onto a Gin engine.
func NewRouter(h *handlers.ReminderHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.POST("/reminders", h.CreateReminder)
		v1.GET("/reminders", h.ListReminders)
		v1.GET("/reminders/search", h.SearchReminderByName)
		v1.GET("/reminders/:id", h.GetReminder)
		v1.PUT("/reminders/:id", h.UpdateReminder)
		v1.DELETE("/reminders/:id", h.DeleteReminder)
		v1.POST("/reminders/:id/notify", h.NotifyReminder)
	}

	return r
}
