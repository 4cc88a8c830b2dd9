package mail

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/metrics"
)

const DefaultSendTimeout = 30 * time.Second

var ErrDispatcherClosed = errors.New("mail dispatcher closed")

type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, name, link string) error
}

// Dispatcher sends reset mail off the request path. Failures are logged and
// counted; callers never see them.
type Dispatcher struct {
	next    PasswordResetSender
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(next PasswordResetSender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Dispatcher{next: next, timeout: timeout}
}

func (d *Dispatcher) SendPasswordReset(ctx context.Context, email, name, link string) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.wg.Add(1)
	d.mu.Unlock()

	// The request context ends with the response; the send must outlive it.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	go func() {
		defer d.wg.Done()
		defer cancel()
		metrics.MailInFlight.Inc()
		defer metrics.MailInFlight.Dec()

		if err := d.send(sendCtx, email, name, link); err != nil {
			metrics.MailDeliveries.WithLabelValues("password_reset", metrics.OutcomeFailure).Inc()
			log.Printf("mail: password reset to %s failed: %v", maskEmail(email), err)
			return
		}
		metrics.MailDeliveries.WithLabelValues("password_reset", metrics.OutcomeSuccess).Inc()
	}()
	return nil
}

// send gives up on the delivery after the timeout, but the SMTP client does
// not watch ctx, so the attempt itself keeps running until it returns. It is
// tracked by wg so Close waits for it.
func (d *Dispatcher) send(ctx context.Context, email, name, link string) error {
	done := make(chan error, 1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		done <- d.next.SendPasswordReset(ctx, email, name, link)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting mail and waits for in-flight sends, including
// attempts that outlived their timeout, or for ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func maskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
