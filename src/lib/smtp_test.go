package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestNewSMTPMessage(t *testing.T) {
	msg, err := NewSMTPMessage(&SendMailInput{
		From:     "site@example.com",
		FromName: "Portfolio",
		To:       []string{"owner@example.com"},
		ReplyTo:  "client@example.com",
		Subject:  "Portfolio Inquiry: Hello",
		Body:     "<p>hi</p>",
		Html:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"<owner@example.com>"}, msg.GetToString())
	assert.Equal(t, []string{"Portfolio Inquiry: Hello"}, msg.GetGenHeader(mail.HeaderSubject))
}

func TestNewSMTPMessageRejectsBadRecipient(t *testing.T) {
	_, err := NewSMTPMessage(&SendMailInput{
		From: "site@example.com",
		To:   []string{"not an address"},
	})
	assert.Error(t, err)
}

func TestNewSMTPSender(t *testing.T) {
	s, err := NewSMTPSender("smtp.example.com", 587, "user", "pass", "site@example.com")
	require.NoError(t, err)
	assert.NotNil(t, s)
}
