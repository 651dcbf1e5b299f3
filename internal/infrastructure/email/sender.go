package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillsync/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var ErrSendFailed = errors.New("email send failed")

type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// NewSender returns a SendGrid sender when an API key is configured and a
// log-only sender otherwise.
func NewSender(cfg config.EmailConfig, logger *zap.Logger) Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("email")
	if strings.TrimSpace(cfg.SendGridAPIKey) == "" || strings.TrimSpace(cfg.FromEmail) == "" {
		logger.Info("sendgrid not configured, emails are logged only")
		return LogSender{Logger: logger}
	}
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *zap.Logger
}

func (s *SendGridSender) Send(ctx context.Context, m Message) error {
	to := mail.NewEmail(m.ToName, m.To)
	msg := mail.NewSingleEmail(s.from, m.Subject, to, m.Text, m.HTML)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if resp.StatusCode >= 300 {
		s.logger.Warn("sendgrid rejected message",
			zap.String("to", m.To),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode)
	}

	s.logger.Info("email sent", zap.String("to", m.To), zap.String("subject", m.Subject))
	return nil
}

type LogSender struct {
	Logger *zap.Logger
}

func (s LogSender) Send(ctx context.Context, m Message) error {
	l := s.Logger
	if l == nil {
		l = zap.NewNop()
	}
	l.Info("email not sent (sendgrid disabled)",
		zap.String("to", m.To),
		zap.String("subject", m.Subject),
		zap.String("body", m.Text),
	)
	return nil
}
