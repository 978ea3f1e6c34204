package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/vespaiach/ledger-api/internal/config"
	"github.com/vespaiach/ledger-api/internal/utils"
)

// Mailer dispatches the sign-in key to an email address. Fire-and-observe:
// the sign-in flow logs failures but never retries or queues.
type Mailer interface {
	SendSigninKey(ctx context.Context, email, key string) error
}

type sendgridMailer struct {
	client      *sendgrid.Client
	fromEmail   string
	orgName     string
	appUrl      string
	sandboxMode bool
	keyTTL      time.Duration
}

func NewSendgridMailer(cfg *config.Config) Mailer {
	return &sendgridMailer{
		client:      sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail:   cfg.SendgridFromEmail,
		orgName:     cfg.OrganizationName,
		appUrl:      cfg.AppUrl,
		sandboxMode: cfg.SendgridSandboxMode,
		keyTTL:      cfg.SigninKeyAvailableTime,
	}
}

func (m *sendgridMailer) SendSigninKey(ctx context.Context, email, key string) error {
	from := mail.NewEmail(m.orgName, m.fromEmail)
	to := mail.NewEmail("", email)
	subject := m.orgName + " - Sign-in Link"

	link := fmt.Sprintf("%s/signin?key=%s", m.appUrl, key)
	plain := fmt.Sprintf(
		"Open %s to sign in, or paste this key into the app: %s. The link expires in %d minutes.",
		link, key, int(m.keyTTL.Minutes()),
	)
	html := fmt.Sprintf(signinEmailHTML,
		"Sign in to "+m.orgName,
		fmt.Sprintf("Click the button below to sign in. This link will expire in %d minutes.", int(m.keyTTL.Minutes())),
		link, key, time.Now().Year(),
	)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	if m.sandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send sign-in email to %s via SendGrid", email)
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 400 {
		utils.Logger.Errorf("SendGrid rejected sign-in email to %s: status %d", email, resp.StatusCode)
		return fmt.Errorf("%w: sendgrid returned status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}
	return nil
}
