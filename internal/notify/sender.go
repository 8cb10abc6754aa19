// Package notify forwards pipeline events to RabbitMQ as JSON messages.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ytget/playlist-demo/internal/model"
)

// DefaultQueue is declared durable on connect.
const DefaultQueue = "notify.q"

const publishTimeout = 5 * time.Second

// Message is the body published for every event.
type Message struct {
	SessionID string      `json:"session_id"`
	Event     model.Event `json:"event"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Sender publishes session events to a queue.
type Sender struct {
	connection *amqp.Connection
	channel    publisher
	queueName  string
}

// NewSender dials rmqURL and declares queue.
func NewSender(rmqURL, queue string) (*Sender, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(rmqURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, errors.Wrapf(err, "declare queue %s", queue)
	}

	return &Sender{
		connection: conn,
		channel:    ch,
		queueName:  queue,
	}, nil
}

// Publish sends one event for sessionID.
func (s *Sender) Publish(ctx context.Context, sessionID string, event model.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	body, err := json.Marshal(Message{SessionID: sessionID, Event: event})
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return s.channel.PublishWithContext(ctx,
		"",          // exchange
		s.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   event.Timestamp,
			Body:        body,
		})
}

// ShouldForward reports whether an event is worth a queue message. Per-video
// progress chatter stays local.
func ShouldForward(event model.Event) bool {
	return event.Type != model.EventProgress && event.Type != model.EventVideoStatus
}

// Close closes the channel and connection
func (s *Sender) Close() error {
	if ch, ok := s.channel.(*amqp.Channel); ok && ch != nil {
		ch.Close()
	}
	if s.connection != nil {
		return s.connection.Close()
	}
	return nil
}
