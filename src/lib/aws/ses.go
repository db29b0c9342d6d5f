package aws

import (
	"context"
	"fmt"
	"log"
	"net/mail"

	"portfolio/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESSendEmailAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	client SESSendEmailAPI
	from   string
}

func NewSESSender(client SESSendEmailAPI, from string) *SESSender {
	return &SESSender{client: client, from: from}
}

func NewSESClient(cfg aws.Config) *ses.Client {
	return ses.NewFromConfig(cfg)
}

func (s *SESSender) Send(ctx context.Context, in *lib.SendMailInput) error {
	from := in.From
	if from == "" {
		from = s.from
	}
	if in.FromName != "" {
		from = (&mail.Address{Name: in.FromName, Address: from}).String()
	}
	body := &types.Body{}
	content := &types.Content{Data: aws.String(in.Body), Charset: aws.String("UTF-8")}
	if in.Html {
		body.Html = content
	} else {
		body.Text = content
	}
	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses:  in.To,
			CcAddresses:  in.Cc,
			BccAddresses: in.Bcc,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(in.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if in.ReplyTo != "" {
		input.ReplyToAddresses = []string{in.ReplyTo}
	}
	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses: %w", err)
	}
	log.Printf("Sent email with id: %s\n", aws.ToString(out.MessageId))
	return nil
}
