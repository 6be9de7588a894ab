// Package notify delivers outgoing email. Production uses Amazon SES; local
// setups log the message instead of sending it.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/escrowline/backend/internal/config"
)

// Message is a plain text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "email not sent, log mailer in use",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// NewMailerFromConfig creates the mailer selected by MAIL_PROVIDER
func NewMailerFromConfig(ctx context.Context, cfg config.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "log":
		slog.Info("initializing log mailer")
		return LogMailer{}, nil
	case "ses":
		slog.Info("initializing SES mailer", "region", cfg.SESRegion, "from", cfg.From)
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SESRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return NewSESMailer(sesv2.NewFromConfig(awsCfg), cfg.From), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", cfg.Provider)
	}
}
