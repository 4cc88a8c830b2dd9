package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const passwordResetSubject = "Password Reset Request"

type PasswordResetMailer struct {
	sender Sender
	ttl    time.Duration
}

func NewPasswordResetMailer(sender Sender, ttl time.Duration) *PasswordResetMailer {
	return &PasswordResetMailer{sender: sender, ttl: ttl}
}

func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, email, name, link string) error {
	if m == nil || m.sender == nil {
		return errors.New("mailer not configured")
	}
	return m.sender.Send(ctx, email, passwordResetSubject, passwordResetBody(name, link, m.ttl))
}

func passwordResetBody(name, link string, ttl time.Duration) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "User"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	b.WriteString("You requested a password reset. Open the link below to choose a new password:\n\n")
	fmt.Fprintf(&b, "%s\n\n", link)
	if ttl > 0 {
		fmt.Fprintf(&b, "This link will expire in %s.\n", humanizeTTL(ttl))
	}
	b.WriteString("If you didn't request this, please ignore this email.\n\n")
	b.WriteString("Best regards,\nPortfolio Team\n")
	return b.String()
}

func humanizeTTL(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		if d == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}
