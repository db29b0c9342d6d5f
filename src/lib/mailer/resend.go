package mailer

import (
	"context"
	"fmt"
	"log"
	"net/mail"

	"portfolio/src/lib"

	"github.com/resend/resend-go/v2"
)

type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) Send(ctx context.Context, in *lib.SendMailInput) error {
	from := in.From
	if from == "" {
		from = s.from
	}
	if in.FromName != "" {
		from = (&mail.Address{Name: in.FromName, Address: from}).String()
	}
	params := &resend.SendEmailRequest{
		From:    from,
		To:      in.To,
		Cc:      in.Cc,
		Bcc:     in.Bcc,
		Subject: in.Subject,
	}
	if in.Html {
		params.Html = in.Body
	} else {
		params.Text = in.Body
	}
	if in.ReplyTo != "" {
		params.ReplyTo = in.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	log.Printf("[mailer] resend sent %s\n", sent.Id)
	return nil
}
