package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"fastfood/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_BuildsMessage(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "shop@example.com"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	require.NoError(t, s.Send(context.Background(), "a@example.com", "Reset code", "123456"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"a@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Reset code\r\n")
	assert.Contains(t, gotMsg, "\r\n\r\n123456")
}

func TestSend_WrapsError(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 25})
	s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }

	err := s.Send(context.Background(), "a@example.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestSend_NoHost(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{})
	assert.Error(t, s.Send(context.Background(), "a@example.com", "s", "b"))
}
