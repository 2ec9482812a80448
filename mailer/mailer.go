package mailer

import (
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/vinimoraes/lembretes-api/config"
	"github.com/vinimoraes/lembretes-api/models"
)

// Reason identifies which event a notification email is about.
type Reason string

const (
	ReasonCreated Reason = "created"
	ReasonUpdated Reason = "updated"
	ReasonDueSoon Reason = "due_soon"
)

const subject = "Aviso de Lembrete"

// dialTimeout bounds the SMTP dial so a dead relay cannot hang the
// request path indefinitely.
const dialTimeout = 10 * time.Second

// Sender delivers a finished message. The production implementation dials
// SMTP; tests substitute a recorder.
type Sender interface {
	Send(msg *mail.Msg) error
}

type smtpSender struct {
	client *mail.Client
}

func (s *smtpSender) Send(msg *mail.Msg) error {
	return s.client.DialAndSend(msg)
}

// Mailer builds and sends reminder notification emails.
type Mailer struct {
	sender Sender
	from   string
}

// New creates a Mailer that submits through the configured SMTP relay.
func New(cfg *config.Config) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPSender),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTimeout(dialTimeout),
	}
	if cfg.SMTPPort == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &Mailer{
		sender: &smtpSender{client: client},
		from:   cfg.SMTPSender,
	}, nil
}

// NewWithSender creates a Mailer with a custom delivery backend.
func NewWithSender(sender Sender, from string) *Mailer {
	return &Mailer{sender: sender, from: from}
}

// Notify builds the notification email for the given reminder and reason
// and hands it to the sender. The caller decides whether the reminder is
// eligible; a failure here never undoes a committed mutation.
func (m *Mailer) Notify(reminder *models.Reminder, reason Reason) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(reminder.NotificationAddress()); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, plainBody(reminder, reason))
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody(reminder, reason))

	if err := m.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

// closing returns the phrase that ends the message body for each reason.
func closing(reason Reason) string {
	switch reason {
	case ReasonCreated:
		return "foi criado"
	case ReasonUpdated:
		return "foi atualizado"
	default:
		return "está próximo à data estipulada"
	}
}

// formatDueDate renders the due date for the message body.
func formatDueDate(reminder *models.Reminder) string {
	if reminder.DueDate == nil {
		return "sem data definida"
	}
	return reminder.DueDate.Format("02/01/2006 15:04")
}

func plainBody(reminder *models.Reminder, reason Reason) string {
	return fmt.Sprintf(
		"Olá usuário(a), este é um email automatizado para avisar\n"+
			"que o lembrete nome: %s, de descrição: %s,\n"+
			"e com data final: %s, %s.\n\n"+
			"Atenciosamente,\n"+
			"Aplicativo Lembretes\n",
		reminder.Name, reminder.Description, formatDueDate(reminder), closing(reason),
	)
}

func htmlBody(reminder *models.Reminder, reason Reason) string {
	return fmt.Sprintf(
		`<!DOCTYPE html>
<html>
  <body>
    <h1 style="color:#dd8888;">Lembrete:</h1>
    <div>
      <p>Olá usuário(a), este é um email automatizado para avisar<br>
      que o lembrete nome: <strong>%s</strong><br>
      de descrição: <strong>%s</strong>,
      e com data final: <strong>%s</strong>,<br>
      %s.</p>
      <p>Atenciosamente,</p>
      <p>Aplicativo Lembretes</p>
    </div>
  </body>
</html>
`,
		reminder.Name, reminder.Description, formatDueDate(reminder), closing(reason),
	)
}
