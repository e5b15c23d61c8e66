package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"yacht-tracker/internal/logger"
	pkgmqtt "yacht-tracker/pkg/mqtt"

	"go.uber.org/zap"
)

// brokerClient is the subset of pkg/mqtt.Client the publisher uses.
type brokerClient interface {
	Connect() error
	Publish(topic string, qos byte, retained bool, payload []byte) error
	Disconnect()
}

type MQTTPublisherConfig struct {
	ClientConfig *pkgmqtt.Config
	TopicPrefix  string
	QoS          byte
}

// MQTTPublisher announces assignment events on
// <prefix>/assignments/<type>.
type MQTTPublisher struct {
	client      brokerClient
	topicPrefix string
	qos         byte

	mu      sync.Mutex
	started bool
}

func NewMQTTPublisher(cfg *MQTTPublisherConfig) (*MQTTPublisher, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt publisher config is not configured")
	}
	return newMQTTPublisher(pkgmqtt.NewClient(cfg.ClientConfig), cfg.TopicPrefix, cfg.QoS), nil
}

func newMQTTPublisher(client brokerClient, prefix string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{
		client:      client,
		topicPrefix: strings.Trim(prefix, "/"),
		qos:         qos,
	}
}

// Start connects to the broker.
func (p *MQTTPublisher) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := p.client.Connect(); err != nil {
		return err
	}
	p.started = true
	logger.Info("MQTT event publisher started", zap.String("topic_prefix", p.topicPrefix))
	return nil
}

func (p *MQTTPublisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	p.client.Disconnect()
	p.started = false
	logger.Info("MQTT event publisher stopped")
}

func (p *MQTTPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return errors.New("mqtt publisher is not started")
	}

	topic, payload, err := p.encode(event)
	if err != nil {
		return err
	}
	if err := p.client.Publish(topic, p.qos, false, payload); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *MQTTPublisher) encode(event Event) (string, []byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	topic := "assignments/" + string(event.Type)
	if p.topicPrefix != "" {
		topic = p.topicPrefix + "/" + topic
	}
	return topic, payload, nil
}
