package common

import (
	"context"
	"errors"
	"testing"

	"portfolio/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSend(t *testing.T) {
	m := &fakeMailer{}
	c := NewContactService(m, "owner@example.com")

	err := c.Send(context.Background(), &types.ContactRequestBody{
		Email:   "client@example.com",
		Subject: "Music video",
		Message: "<script>alert(1)</script> budget?",
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, msg.To)
	assert.Equal(t, "client@example.com", msg.ReplyTo)
	assert.Equal(t, "Portfolio Inquiry: Music video", msg.Subject)
	assert.True(t, msg.Html)
	assert.Contains(t, msg.Body, "&lt;script&gt;")
	assert.NotContains(t, msg.Body, "<script>")
}

func TestContactMissingFields(t *testing.T) {
	c := NewContactService(&fakeMailer{}, "owner@example.com")

	err := c.Send(context.Background(), &types.ContactRequestBody{Subject: "hi"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"fromEmail", "message"}, verr.Missing)
}

func TestContactNotConfigured(t *testing.T) {
	body := &types.ContactRequestBody{FromEmail: "a@example.com", Subject: "s", Message: "m"}

	assert.ErrorIs(t, NewContactService(nil, "owner@example.com").Send(context.Background(), body), ErrContactNotConfigured)
	assert.ErrorIs(t, NewContactService(&fakeMailer{}, "").Send(context.Background(), body), ErrContactNotConfigured)
}

func TestContactDeliveryFailure(t *testing.T) {
	c := NewContactService(&fakeMailer{err: errors.New("boom")}, "owner@example.com")
	err := c.Send(context.Background(), &types.ContactRequestBody{FromEmail: "a@example.com", Subject: "s", Message: "m"})
	assert.EqualError(t, err, "boom")
}
