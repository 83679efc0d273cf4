package main

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/airflow-ai/congestion-dashboard/internal/config"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

const (
	capacity = 1000
	interval = 2 * time.Second
)

// sample produces a reading that follows a daily curve peaking in the
// morning and the early evening.
func sample(source string, now time.Time, rng *rand.Rand) domain.TelemetrySample {
	hour := float64(now.Hour()) + float64(now.Minute())/60
	wave := 0.5 + 0.25*math.Sin((hour-6)*math.Pi/6) + 0.15*math.Sin((hour-12)*math.Pi/3)
	count := int(wave*capacity) + rng.Intn(80) - 40
	if count < 0 {
		count = 0
	}
	active := 15 + rng.Intn(20)
	arriving := rng.Intn(active + 1)
	return domain.TelemetrySample{
		SourceID:         source,
		Timestamp:        now,
		CCTVCount:        count,
		TerminalCapacity: capacity,
		ActiveFlights:    active,
		ArrivingFlights:  arriving,
		DepartingFlights: active - arriving,
	}
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	source := "cctv-sim-" + uuid.NewString()[:8]
	topic := config.TelemetryTopic()

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker()).SetClientID(source)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Str("source", source).Str("topic", topic).Msg("publishing telemetry")
	for {
		select {
		case <-sig:
			log.Info().Msg("simulation done")
			return
		case now := <-ticker.C:
			payload, err := json.Marshal(sample(source, now, rng))
			if err != nil {
				log.Error().Err(err).Msg("marshal sample")
				continue
			}
			token := client.Publish(topic, 0, false, payload)
			if token.Wait() && token.Error() != nil {
				log.Error().Err(token.Error()).Msg("publish failed")
			}
		}
	}
}
