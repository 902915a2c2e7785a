package mailer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

const sendTimeout = 30 * time.Second

// sender delivers composed messages to the relay.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer sends order confirmations from a single background worker. Enqueueing
// never blocks; when the queue is full the notification is dropped.
type Mailer struct {
	sender sender
	from   string
	queue  chan model.OrderNotification
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// New creates an SMTP mailer and starts its worker.
func New(cfg config.SMTPConfig, logger zerolog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(sendTimeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	m := newMailer(client, cfg.From, cfg.QueueSize, logger)
	m.start()

	m.logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Int("queue_size", cfg.QueueSize).
		Msg("mailer started")

	return m, nil
}

func newMailer(s sender, from string, queueSize int, logger zerolog.Logger) *Mailer {
	return &Mailer{
		sender: s,
		from:   from,
		queue:  make(chan model.OrderNotification, queueSize),
		logger: logger.With().Str("component", "mailer").Logger(),
		done:   make(chan struct{}),
	}
}

func (m *Mailer) start() {
	go m.run()
}

// NotifyOrderPlaced queues an order confirmation.
func (m *Mailer) NotifyOrderPlaced(_ context.Context, n model.OrderNotification) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		m.logger.Warn().Str("order_id", n.OrderID.String()).Msg("mailer closed, dropping confirmation")
		return
	}

	select {
	case m.queue <- n:
	default:
		m.logger.Warn().Str("order_id", n.OrderID.String()).Msg("mail queue full, dropping confirmation")
	}
}

// Close stops accepting notifications and waits until queued ones are sent
// or ctx expires.
func (m *Mailer) Close(ctx context.Context) error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()

	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mailer did not drain: %w", ctx.Err())
	}
}

func (m *Mailer) run() {
	defer close(m.done)

	for n := range m.queue {
		if err := m.send(n); err != nil {
			m.logger.Error().
				Err(err).
				Str("order_id", n.OrderID.String()).
				Msg("failed to send order confirmation")
			continue
		}
		m.logger.Debug().Str("order_id", n.OrderID.String()).Msg("order confirmation sent")
	}
}

func (m *Mailer) send(n model.OrderNotification) error {
	msg, err := m.compose(n)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	return m.sender.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) compose(n model.OrderNotification) (*mail.Msg, error) {
	text, err := renderText(n)
	if err != nil {
		return nil, err
	}
	html, err := renderHTML(n)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Your order " + shortID(n) + " is confirmed")
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)
	return msg, nil
}
