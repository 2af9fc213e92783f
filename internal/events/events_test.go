package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/clubworks/clubd/internal/model"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	opts := &natsserver.Options{Host: "127.0.0.1", Port: -1}
	srv, err := natsserver.NewServer(opts)
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

func TestNoopPublisher_Publish(t *testing.T) {
	pub := &NoopPublisher{}
	err := pub.Publish(context.Background(), TopicEventCreated, EventCreated{})
	if err != nil {
		t.Fatalf("NoopPublisher.Publish returned unexpected error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("NoopPublisher.Close returned unexpected error: %v", err)
	}
}

func TestPublisherImplementations(t *testing.T) {
	var _ Publisher = (*NoopPublisher)(nil)
	var _ Publisher = (*NATSPublisher)(nil)
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	// Subscribe to capture published messages.
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connecting subscriber: %v", err)
	}
	defer nc.Close()

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(TopicEventCreated, ch)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer sub.Unsubscribe() //nolint:errcheck
	nc.Flush()

	evt := EventCreated{Event: &model.Event{ID: "evt-1", Name: "Bake Sale"}, Actor: "usr-1"}
	if err := pub.Publish(context.Background(), TopicEventCreated, evt); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	select {
	case msg := <-ch:
		var got EventCreated
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("unmarshaling payload: %v", err)
		}
		if got.Event.ID != "evt-1" || got.Actor != "usr-1" {
			t.Errorf("got %+v, want event evt-1 by usr-1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNATSSubscriber_ReceivesMessages(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("club.>")
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer cancel()

	if err := pub.Publish(context.Background(), TopicEventDeleted, EventDeleted{EventID: "evt-1"}); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	select {
	case msg := <-ch:
		var got EventDeleted
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("unmarshaling payload: %v", err)
		}
		if got.EventID != "evt-1" {
			t.Errorf("EventID = %q, want evt-1", got.EventID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNATSSubscriber_SubscribeMessages(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.SubscribeMessages("club.>")
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer cancel()

	if err := pub.Publish(context.Background(), TopicEventRSVP, RSVPAdded{EventID: "evt-1", UserID: "usr-1"}); err != nil {
		t.Fatalf("publishing: %v", err)
	}

	select {
	case msg := <-ch:
		if msg.Subject != TopicEventRSVP {
			t.Errorf("Subject = %q, want %q", msg.Subject, TopicEventRSVP)
		}
		var got RSVPAdded
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("unmarshaling payload: %v", err)
		}
		if got.EventID != "evt-1" || got.UserID != "usr-1" {
			t.Errorf("got %+v, want evt-1/usr-1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNATSSubscriber_Cancel(t *testing.T) {
	url := startTestNATS(t)

	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("club.>")
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}

	cancel()

	// Channel should be closed.
	_, ok := <-ch
	if ok {
		t.Fatal("expected channel to be closed after cancel")
	}
}
