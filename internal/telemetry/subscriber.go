package telemetry

import (
	"encoding/json"
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

// Subscriber keeps the most recent telemetry sample seen on a topic.
type Subscriber struct {
	broker string
	topic  string
	client mqtt.Client

	mu     sync.RWMutex
	latest domain.TelemetrySample
	seen   bool
}

func NewSubscriber(broker, topic string) *Subscriber {
	return &Subscriber{broker: broker, topic: topic}
}

func (s *Subscriber) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.broker).
		SetClientID("congestion-dashboard").
		SetAutoReconnect(true)
	opts.OnConnect = func(c mqtt.Client) {
		if token := c.Subscribe(s.topic, 0, s.handle); token.Wait() && token.Error() != nil {
			log.Error().Err(token.Error()).Str("topic", s.topic).Msg("telemetry subscribe failed")
		}
	}
	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	log.Info().Str("broker", s.broker).Str("topic", s.topic).Msg("telemetry subscriber running")
	return nil
}

func (s *Subscriber) Stop() {
	if s.client != nil {
		s.client.Disconnect(250)
	}
}

func (s *Subscriber) handle(_ mqtt.Client, msg mqtt.Message) {
	if err := s.Ingest(msg.Payload()); err != nil {
		log.Error().Err(err).Str("topic", msg.Topic()).Msg("telemetry ingest failed")
	}
}

// Ingest decodes one JSON sample and keeps it if it is newer than the
// current one.
func (s *Subscriber) Ingest(payload []byte) error {
	var sample domain.TelemetrySample
	if err := json.Unmarshal(payload, &sample); err != nil {
		return fmt.Errorf("decode telemetry: %w", err)
	}
	if sample.TerminalCapacity <= 0 {
		return fmt.Errorf("telemetry sample from %q has no terminal capacity", sample.SourceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen && sample.Timestamp.Before(s.latest.Timestamp) {
		return nil
	}
	s.latest = sample
	s.seen = true
	return nil
}

func (s *Subscriber) Latest() (domain.TelemetrySample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.seen
}
