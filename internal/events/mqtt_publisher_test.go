package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeBroker struct {
	connectErr   error
	publishErr   error
	connected    bool
	disconnected bool
	topics       []string
	payloads     [][]byte
	qos          []byte
}

func (f *fakeBroker) Connect() error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeBroker) Publish(topic string, qos byte, _ bool, payload []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	f.qos = append(f.qos, qos)
	return nil
}

func (f *fakeBroker) Disconnect() { f.disconnected = true }

func TestMQTTPublisherPublishes(t *testing.T) {
	broker := &fakeBroker{}
	p := newMQTTPublisher(broker, "/yacht/", 1)

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	ev := Event{
		Type:        TypeAssigned,
		GuestID:     "g-1",
		GuestName:   "Alice",
		CabinNumber: "101",
		DeviceID:    "wb-1",
		OccurredAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(broker.topics) != 1 || broker.topics[0] != "yacht/assignments/assigned" {
		t.Fatalf("topics = %v", broker.topics)
	}
	if broker.qos[0] != 1 {
		t.Errorf("qos = %d, want 1", broker.qos[0])
	}
	var got Event
	if err := json.Unmarshal(broker.payloads[0], &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.GuestName != "Alice" || got.CabinNumber != "101" {
		t.Errorf("payload = %+v", got)
	}

	p.Stop()
	if !broker.disconnected {
		t.Error("Stop should disconnect")
	}
}

func TestMQTTPublisherRequiresStart(t *testing.T) {
	p := newMQTTPublisher(&fakeBroker{}, "yacht", 0)

	if err := p.Publish(context.Background(), Event{Type: TypeUnassigned}); err == nil {
		t.Error("publish before Start should fail")
	}
}

func TestMQTTPublisherErrors(t *testing.T) {
	broker := &fakeBroker{connectErr: errors.New("refused")}
	p := newMQTTPublisher(broker, "yacht", 0)
	if err := p.Start(); err == nil {
		t.Fatal("expected connect error")
	}

	broker.connectErr = nil
	broker.publishErr = errors.New("broken pipe")
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Publish(context.Background(), Event{Type: TypeLinkMissing}); err == nil {
		t.Error("expected publish error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Publish(ctx, Event{Type: TypeAssigned}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (NopPublisher{}).Publish(context.Background(), Event{}); err != nil {
		t.Errorf("NopPublisher returned %v", err)
	}
}
