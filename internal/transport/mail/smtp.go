package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	netmail "net/mail"
	"net/url"
	"strings"

	"github.com/dajohi/goemail"
)

var ErrNotConfigured = errors.New("mailer not configured")

// Sender delivers one plain text message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPConfig struct {
	Host       string
	Port       string
	Username   string
	Password   string
	From       string
	UseTLS     bool
	SkipVerify bool
}

type SMTPSender struct {
	client   *goemail.SMTP
	fromName string
	fromAddr string
}

// NewSMTPSender returns nil and ErrNotConfigured when host or sender
// address is missing; callers treat that as mail being disabled.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" || strings.TrimSpace(cfg.From) == "" {
		return nil, ErrNotConfigured
	}
	from, err := netmail.ParseAddress(strings.TrimSpace(cfg.From))
	if err != nil {
		return nil, fmt.Errorf("mail: parse from address: %w", err)
	}

	u := &url.URL{Scheme: "smtp", Host: host}
	if cfg.UseTLS {
		u.Scheme = "smtps"
	}
	if port := strings.TrimSpace(cfg.Port); port != "" {
		u.Host = net.JoinHostPort(host, port)
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	log.Printf("mail host: %s://%s@%s", u.Scheme, cfg.Username, u.Host)

	tlsConfig := &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: cfg.SkipVerify,
	}
	client, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("mail: smtp client: %w", err)
	}
	return &SMTPSender{client: client, fromName: from.Name, fromAddr: from.Address}, nil
}

// Send delivers through goemail, which has no context support; ctx is only
// checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if s == nil || s.client == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := goemail.NewMessage(s.fromAddr, subject, body)
	if s.fromName != "" {
		msg.SetName(s.fromName)
	}
	msg.AddBCC(to)
	return s.client.Send(msg)
}
