package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	mail "github.com/wneessen/go-mail"
	"gorm.io/driver/sqlite"

	"github.com/vinimoraes/lembretes-api/mailer"
	"github.com/vinimoraes/lembretes-api/repository"
)

// recordingSender captures outgoing messages instead of dialing SMTP.
type recordingSender struct {
	messages []*mail.Msg
	err      error
}

func (s *recordingSender) Send(msg *mail.Msg) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

// setupTestAPI builds a handler over an in-memory database and a recording
// sender, plus a router with the reminder routes registered.
func setupTestAPI(t *testing.T) (*gin.Engine, *repository.Database, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.Open(sqlite.Open(":memory:"), false)
	if err != nil {
		t.Fatalf("repository.Open: %v", err)
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	sender := &recordingSender{}
	h := NewReminderHandler(db, mailer.NewWithSender(sender, "lembretes@example.com"))

	router := gin.New()
	v1 := router.Group("/v1")
	{
		v1.POST("/reminders", h.CreateReminder)
		v1.GET("/reminders", h.ListReminders)
		v1.GET("/reminders/search", h.SearchReminderByName)
		v1.GET("/reminders/:id", h.GetReminder)
		v1.PUT("/reminders/:id", h.UpdateReminder)
		v1.DELETE("/reminders/:id", h.DeleteReminder)
		v1.POST("/reminders/:id/notify", h.NotifyReminder)
	}

	return router, db, sender
}

// doJSON performs a request with an optional JSON body and decodes the
// JSON response.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	out := map[string]any{}
	if len(resp.Body.Bytes()) > 0 {
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatalf("json.Unmarshal(%q): %v", resp.Body.String(), err)
		}
	}
	return resp.Code, out
}

func mustStatus(t *testing.T, actual int, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

// createReminder posts a minimal valid reminder and returns its response.
func createReminder(t *testing.T, router *gin.Engine, name string, extra map[string]any) map[string]any {
	t.Helper()

	body := map[string]any{
		"name":        name,
		"description": "trocar o óleo a cada 10 mil km",
	}
	for k, v := range extra {
		body[k] = v
	}

	status, out := doJSON(t, router, "POST", "/v1/reminders", body)
	mustStatus(t, status, 201)
	return out
}
