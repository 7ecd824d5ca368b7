package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/hirosato/lidere-backoffice/internal/domain/events"
)

// RoutingKeyPrefix prefixes the view name in every invalidation routing key
const RoutingKeyPrefix = "views.invalidate."

// Channel is the part of *amqp091.Channel the publisher uses
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends view invalidations to a durable topic exchange
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  Channel
	reopen   func() (Channel, error)
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	// Secrets pasted with stray characters before the scheme
	idx := strings.Index(strings.ToLower(clean), "amqp")
	if idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// Dial connects to the broker at amqpURL and declares exchange
func Dial(amqpURL, exchange string, logger *slog.Logger) (*Publisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	reopen := func() (Channel, error) {
		return conn.Channel()
	}
	p, err := NewPublisher(reopen, exchange, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher opens a channel with open and declares exchange on it
func NewPublisher(open func() (Channel, error), exchange string, logger *slog.Logger) (*Publisher, error) {
	ch, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := declare(ch, exchange); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &Publisher{
		channel:  ch,
		reopen:   open,
		exchange: exchange,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func declare(ch Channel, exchange string) error {
	return ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	)
}

// Invalidate publishes one event per call, routed once per view
func (p *Publisher) Invalidate(ctx context.Context, views ...events.View) error {
	if len(views) == 0 {
		return nil
	}
	event := events.NewInvalidationEvent(views, p.now())
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode invalidation event: %w", err)
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, view := range views {
		if err := p.publish(ctx, RoutingKeyPrefix+string(view), msg); err != nil {
			errs = append(errs, fmt.Errorf("view %s: %w", view, err))
		}
	}
	return errors.Join(errs...)
}

// publish sends msg, reopening the channel once when the first attempt fails
func (p *Publisher) publish(ctx context.Context, routingKey string, msg amqp091.Publishing) error {
	err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err == nil {
		return nil
	}
	p.logger.WarnContext(ctx, "publish failed, reopening channel", "exchange", p.exchange, "routingKey", routingKey, "error", err)

	ch, chErr := p.reopen()
	if chErr != nil {
		return errors.Join(err, chErr)
	}
	p.channel.Close()
	p.channel = ch
	if exErr := declare(ch, p.exchange); exErr != nil {
		return errors.Join(err, exErr)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

// Close closes the channel and the connection
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
