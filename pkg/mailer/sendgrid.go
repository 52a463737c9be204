package mailer

import (
	"context"
	"fmt"

	"lms-backend/internal/credential"
	"lms-backend/pkg/utils"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer delivers credential messages through the SendGrid v3 API.
type SendGridMailer struct {
	client sendClient
	from   *mail.Email
	log    *zap.Logger
}

func NewSendGridMailer(cfg utils.MailConfig, log *zap.Logger) *SendGridMailer {
	return newSendGridMailer(sendgrid.NewSendClient(cfg.APIKey), cfg, log)
}

func newSendGridMailer(client sendClient, cfg utils.MailConfig, log *zap.Logger) *SendGridMailer {
	return &SendGridMailer{
		client: client,
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
		log:    log.With(zap.String("mailer", "sendgrid")),
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg credential.Message) error {
	message := mail.NewSingleEmail(m.from, msg.Subject, mail.NewEmail("", msg.To), msg.Text, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", msg.To, err)
	}

	if resp.StatusCode >= 300 {
		m.log.Warn("SendGrid rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body),
			zap.String("to", msg.To),
		)
		return fmt.Errorf("sendgrid send to %s: status %d", msg.To, resp.StatusCode)
	}

	return nil
}

// New returns a SendGrid mailer when cfg enables it. Otherwise it returns
// nil so that passcodes fall back to the log.
func New(cfg *utils.Config, log *zap.Logger) credential.Mailer {
	if !cfg.MailEnabled() {
		log.Info("Mail delivery disabled, passcodes will be logged")
		return nil
	}
	return NewSendGridMailer(cfg.Mail, log)
}
