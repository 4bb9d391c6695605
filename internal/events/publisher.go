package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Publisher pushes trip lifecycle events onto the fleet message bus.
// Publishing is fire and forget: a failed publish is logged and never fails
// the request that triggered it.
type Publisher interface {
	Publish(topic string, event interface{})
}

// Noop discards all events. Used when no broker is configured.
type Noop struct{}

// Publish discards the event.
func (Noop) Publish(string, interface{}) {}

// MQTTPublisher publishes events over MQTT.
type MQTTPublisher struct {
	client mqtt.Client
}

// ConnectMQTT connects to the broker and returns a publisher.
func ConnectMQTT(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout for %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTPublisher{client: client}, nil
}

// Publish sends the event as JSON at QoS 0 without waiting for delivery.
func (p *MQTTPublisher) Publish(topic string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).WithField("topic", topic).Warn("event marshal failed")
		return
	}
	token := p.client.Publish(topic, 0, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			log.WithError(err).WithField("topic", topic).Warn("event publish failed")
		}
	}()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
