package mailer

import (
	"context"
	"fmt"

	"portfolio/src/config"
	"portfolio/src/lib"
	awslib "portfolio/src/lib/aws"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type AWSConfigLoader func(ctx context.Context) (aws.Config, error)

// New builds the Sender selected by MAIL_DRIVER. It returns nil for the none driver.
func New(ctx context.Context, cfg *config.Config, loadAWS AWSConfigLoader) (Sender, error) {
	switch cfg.MailDriver {
	case "none":
		return nil, nil
	case "log":
		return LogSender{}, nil
	case "resend":
		return NewResendSender(cfg.ResendAPIKey, cfg.MailFrom), nil
	case "smtp":
		s, err := lib.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "ses":
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, err
		}
		return awslib.NewSESSender(awslib.NewSESClient(awsCfg), cfg.MailFrom), nil
	case "sqs":
		awsCfg, err := loadAWS(ctx)
		if err != nil {
			return nil, err
		}
		q, err := awslib.NewSQSMailQueue(ctx, awslib.NewSQSClient(awsCfg), cfg.EmailQueue)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
}
