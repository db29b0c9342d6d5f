package lib

import (
	"context"
	"log"

	"github.com/wneessen/go-mail"
)

type SendMailInput struct {
	From     string
	FromName string
	To       []string
	Cc       []string
	Bcc      []string
	ReplyTo  string
	Subject  string
	Body     string
	Html     bool
}

type SMTPSender struct {
	client *mail.Client
	from   string
}

func NewSMTPSender(host string, port int, user, pass, from string) (*SMTPSender, error) {
	opts := []mail.Option{mail.WithPort(port), mail.WithTLSPortPolicy(mail.TLSOpportunistic)}
	if user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(user), mail.WithPassword(pass))
	}
	c, err := mail.NewClient(host, opts...)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return &SMTPSender{client: c, from: from}, nil
}

func (s *SMTPSender) Send(ctx context.Context, in *SendMailInput) error {
	if in.From == "" {
		in.From = s.from
	}
	msg, err := NewSMTPMessage(in)
	if err != nil {
		return err
	}
	return s.client.DialAndSendWithContext(ctx, msg)
}

func NewSMTPMessage(in *SendMailInput) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if in.FromName != "" {
		if err := msg.FromFormat(in.FromName, in.From); err != nil {
			return nil, err
		}
	} else if err := msg.From(in.From); err != nil {
		return nil, err
	}
	if err := msg.To(in.To...); err != nil {
		return nil, err
	}
	if in.ReplyTo != "" {
		if err := msg.ReplyTo(in.ReplyTo); err != nil {
			return nil, err
		}
	}
	if len(in.Cc) > 0 {
		if err := msg.Cc(in.Cc...); err != nil {
			log.Printf("Failed to set Cc address: %s\n", err.Error())
		}
	}
	if len(in.Bcc) > 0 {
		if err := msg.Bcc(in.Bcc...); err != nil {
			log.Printf("Failed to set Bcc address: %s\n", err.Error())
		}
	}
	msg.Subject(in.Subject)
	if in.Html {
		msg.SetBodyString(mail.TypeTextHTML, in.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, in.Body)
	}
	return msg, nil
}
