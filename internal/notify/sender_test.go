package notify

import (
	"context"
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ytget/playlist-demo/internal/model"
)

type recordingChannel struct {
	key  string
	msgs []amqp.Publishing
}

func (r *recordingChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	r.key = key
	r.msgs = append(r.msgs, msg)
	return nil
}

func TestPublish(t *testing.T) {
	ch := &recordingChannel{}
	sender := &Sender{channel: ch, queueName: DefaultQueue}

	event := model.ErrorEvent(model.EventBlocked, "PL1", model.ErrSaveBlocked)
	if err := sender.Publish(context.Background(), "s1", event); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if ch.key != DefaultQueue || len(ch.msgs) != 1 {
		t.Fatalf("expected one message on %s, got %d on %s", DefaultQueue, len(ch.msgs), ch.key)
	}
	if ch.msgs[0].ContentType != "application/json" {
		t.Errorf("unexpected content type %s", ch.msgs[0].ContentType)
	}

	var msg Message
	if err := json.Unmarshal(ch.msgs[0].Body, &msg); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if msg.SessionID != "s1" || msg.Event.Type != model.EventBlocked || msg.Event.Error.Kind != model.KindSaveBlocked {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestShouldForward(t *testing.T) {
	tests := []struct {
		eventType model.EventType
		expected  bool
	}{
		{model.EventProgress, false},
		{model.EventVideoStatus, false},
		{model.EventCompleted, true},
		{model.EventBlocked, true},
		{model.EventCancelled, true},
		{model.EventAnalyzed, true},
		{model.EventValidationError, true},
	}

	for _, tt := range tests {
		if got := ShouldForward(model.NewEvent(tt.eventType, "PL")); got != tt.expected {
			t.Errorf("ShouldForward(%s) = %v, expected %v", tt.eventType, got, tt.expected)
		}
	}
}
