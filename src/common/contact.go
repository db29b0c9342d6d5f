package common

import (
	"context"
	"errors"
	"fmt"
	"html"

	"portfolio/src/lib"
	"portfolio/src/lib/mailer"
	"portfolio/src/types"
)

var ErrContactNotConfigured = errors.New("contact delivery is not configured")

type ContactService struct {
	mailer mailer.Sender
	owner  string
}

func NewContactService(sender mailer.Sender, owner string) *ContactService {
	return &ContactService{mailer: sender, owner: owner}
}

// Send forwards a visitor's message to the site owner with reply-to set to the visitor.
func (c *ContactService) Send(ctx context.Context, body *types.ContactRequestBody) error {
	from := body.Sender()
	missing := missingFields(
		[2]string{"fromEmail", from},
		[2]string{"subject", body.Subject},
		[2]string{"message", body.Message},
	)
	if len(missing) > 0 {
		return &ValidationError{Message: "Missing required fields", Missing: missing}
	}
	if c.mailer == nil || c.owner == "" {
		return ErrContactNotConfigured
	}
	return c.mailer.Send(ctx, NewContactMessage(c.owner, from, body.Subject, body.Message))
}

func NewContactMessage(owner, from, subject, message string) *lib.SendMailInput {
	return &lib.SendMailInput{
		To:       []string{owner},
		ReplyTo:  from,
		Subject:  fmt.Sprintf("Portfolio Inquiry: %s", subject),
		Body: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.4">
  <h3>New Contact</h3>
  <p><strong>From:</strong> %s</p>
  <p><strong>Message:</strong></p>
  <pre>%s</pre>
</div>`, html.EscapeString(from), html.EscapeString(message)),
		Html: true,
	}
}
