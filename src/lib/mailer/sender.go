package mailer

import (
	"context"
	"log"
	"strings"

	"portfolio/src/lib"
)

// Sender delivers one outgoing email. Implementations: SMTP, SES, SQS queue, Resend and log.
type Sender interface {
	Send(ctx context.Context, in *lib.SendMailInput) error
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, in *lib.SendMailInput) error {
	log.Printf("[mailer] to=%s subject=%q bytes=%d\n", strings.Join(in.To, ","), in.Subject, len(in.Body))
	return nil
}
