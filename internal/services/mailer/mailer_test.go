package mailer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdshive/membership-portal/internal/lib/smtp"
)

// clientFake запоминает команды SMTP сессии.
type clientFake struct {
	from    string
	rcpts   []string
	body    bytes.Buffer
	rcptErr error
	quit    bool
}

func (c *clientFake) Mail(from string) error { c.from = from; return nil }

func (c *clientFake) Rcpt(to string) error {
	if c.rcptErr != nil {
		return c.rcptErr
	}
	c.rcpts = append(c.rcpts, to)
	return nil
}

func (c *clientFake) Data() (io.WriteCloser, error) { return nopWriteCloser{&c.body}, nil }

func (c *clientFake) Quit() error { c.quit = true; return nil }

func (c *clientFake) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type transportFake struct {
	client *clientFake
	err    error
}

func (t *transportFake) Connect() (smtp.Client, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.client, nil
}

func (t *transportFake) GetSMTPUser() string { return "noreply@nerdshive.com" }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_SendLoginCode(t *testing.T) {
	client := &clientFake{}
	svc := NewService(&transportFake{client: client}, newNoopLogger())

	err := svc.SendLoginCode("admin@nerdshive.com", "482913")
	require.NoError(t, err)

	assert.Equal(t, "noreply@nerdshive.com", client.from)
	assert.Equal(t, []string{"admin@nerdshive.com"}, client.rcpts)
	assert.Contains(t, client.body.String(), "482913")
	assert.Contains(t, client.body.String(), "Subject: ")
	assert.True(t, client.quit)
}

func TestService_SendLoginCode_ConnectError(t *testing.T) {
	svc := NewService(&transportFake{err: errors.New("dial tcp: refused")}, newNoopLogger())

	err := svc.SendLoginCode("admin@nerdshive.com", "482913")
	assert.Error(t, err)
}

func TestService_SendLoginCode_RcptError(t *testing.T) {
	client := &clientFake{rcptErr: errors.New("mailbox unavailable")}
	svc := NewService(&transportFake{client: client}, newNoopLogger())

	err := svc.SendLoginCode("admin@nerdshive.com", "482913")
	assert.Error(t, err)
	assert.False(t, client.quit)
}
