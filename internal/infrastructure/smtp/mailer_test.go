package smtp

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/student-records-api/internal/config"
)

type sent struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newTestMailer(cfg *config.Config, captured *sent, err error) *Mailer {
	m := NewMailer(cfg)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*captured = sent{addr: addr, auth: a, from: from, to: to, msg: string(msg)}
		return err
	}
	return m
}

func TestSendOTP_ComposesMessage(t *testing.T) {
	var got sent
	m := newTestMailer(&config.Config{SMTPHost: "mail.local", SMTPPort: "1025", SMTPFrom: "noreply@x.com", OTPTTL: 10 * time.Minute}, &got, nil)

	require.NoError(t, m.SendOTP(context.Background(), "a@x.com", "123456"))
	assert.Equal(t, "mail.local:1025", got.addr)
	assert.Nil(t, got.auth)
	assert.Equal(t, []string{"a@x.com"}, got.to)
	assert.Contains(t, got.msg, "To: a@x.com\r\n")
	assert.Contains(t, got.msg, "123456")
	assert.Contains(t, got.msg, "10 minutes")
}

func TestSendOTP_UsesAuthWhenConfigured(t *testing.T) {
	var got sent
	m := newTestMailer(&config.Config{SMTPHost: "mail.local", SMTPPort: "587", SMTPUsername: "u", SMTPPassword: "p"}, &got, nil)

	require.NoError(t, m.SendOTP(context.Background(), "a@x.com", "123456"))
	assert.NotNil(t, got.auth)
}

func TestSendOTP_PropagatesFailure(t *testing.T) {
	var got sent
	m := newTestMailer(&config.Config{SMTPHost: "mail.local", SMTPPort: "25"}, &got, errors.New("connection refused"))

	err := m.SendOTP(context.Background(), "a@x.com", "123456")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendOTP_CancelledContext(t *testing.T) {
	var got sent
	m := newTestMailer(&config.Config{}, &got, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.SendOTP(ctx, "a@x.com", "123456"), context.Canceled)
	assert.Empty(t, got.addr)
}

func TestSendEmail_RejectsHeaderInjection(t *testing.T) {
	var got sent
	m := newTestMailer(&config.Config{}, &got, nil)

	assert.Error(t, m.SendEmail("a@x.com\r\nBcc: evil@x.com", "hi", "body"))
	assert.Empty(t, got.addr)
}
