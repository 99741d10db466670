package notifications

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// MailerServiceImpl implements domain.Mailer over SMTP
type MailerServiceImpl struct {
	dialer  *gomail.Dialer
	from    string
	apiHost string
	logger  *zap.Logger
}

// NewMailerService creates a new SMTP mailer. With an empty host the
// mailer logs messages instead of dialing, for local development.
func NewMailerService(host string, port int, username, password, from, apiHost string, logger *zap.Logger) domain.Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &MailerServiceImpl{
		from:    from,
		apiHost: apiHost,
		logger:  logger,
	}
	if host != "" {
		svc.dialer = gomail.NewDialer(host, port, username, password)
	}
	return svc
}

// SendActivation implements domain.Mailer
func (m *MailerServiceImpl) SendActivation(ctx context.Context, to, name, activationLink string) error {
	url := fmt.Sprintf("%s/api/auth/activate/%s", m.apiHost, activationLink)
	subject := "Welcome to Quote App! Confirm your Email!"
	body := fmt.Sprintf(
		"<p>Hey %s,</p><p>Please confirm your email by following this link:</p><p><a href=%q>%s</a></p>",
		name, url, url,
	)
	return m.send(ctx, to, subject, body)
}

// SendOtp implements domain.Mailer
func (m *MailerServiceImpl) SendOtp(ctx context.Context, to, code string) error {
	subject := "Verification code for reset password"
	body := fmt.Sprintf("<p>Your verification code is <b>%s</b>. It expires in 5 minutes.</p>", code)
	return m.send(ctx, to, subject, body)
}

func (m *MailerServiceImpl) send(ctx context.Context, to, subject, body string) error {
	if m.dialer == nil {
		m.logger.Info("mock mail delivery",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	// gomail has no context support, so the dial-and-send runs in its
	// own goroutine and the caller's deadline bounds the wait. On
	// timeout the goroutine finishes (or fails) on its own; the
	// channel buffer lets it exit either way.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, ctx.Err())
	}
}
