package config

import (
	"time"

	"github.com/spf13/viper"
)

func Load() error {
	// Dashboard
	viper.SetDefault("DASHBOARD_ADDR", ":3000")
	viper.SetDefault("DISPLAY_TIMEZONE", "Local")
	viper.SetDefault("REVEAL_STEP", "30ms")

	// Prediction service
	viper.SetDefault("PREDICTION_API_URL", "http://localhost:8000")
	viper.SetDefault("PREDICTION_API_TIMEOUT", "30s")
	viper.SetDefault("HEALTH_POLL_INTERVAL", "30s")
	viper.SetDefault("BREAKER_MAX_FAILURES", 3)
	viper.SetDefault("BREAKER_RESET_TIMEOUT", "30s")

	// Telemetry feed
	viper.SetDefault("TELEMETRY_ENABLED", "false")
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("TELEMETRY_TOPIC", "airport/telemetry")

	// AWS Configuration
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("USE_CLOUD_SERVICES", "false") // Toggle for local vs cloud

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", "false")

	viper.AutomaticEnv()
	return nil
}

func DashboardAddr() string             { return viper.GetString("DASHBOARD_ADDR") }
func PredictionAPIURL() string          { return viper.GetString("PREDICTION_API_URL") }
func PredictionTimeout() time.Duration  { return viper.GetDuration("PREDICTION_API_TIMEOUT") }
func HealthPollInterval() time.Duration { return viper.GetDuration("HEALTH_POLL_INTERVAL") }
func RevealStep() time.Duration         { return viper.GetDuration("REVEAL_STEP") }
func BreakerMaxFailures() uint32        { return viper.GetUint32("BREAKER_MAX_FAILURES") }
func BreakerResetTimeout() time.Duration {
	return viper.GetDuration("BREAKER_RESET_TIMEOUT")
}
func TelemetryEnabled() bool  { return viper.GetBool("TELEMETRY_ENABLED") }
func MQTTBroker() string      { return viper.GetString("MQTT_BROKER") }
func TelemetryTopic() string  { return viper.GetString("TELEMETRY_TOPIC") }
func AWSRegion() string       { return viper.GetString("AWS_REGION") }
func SNSTopicArn() string     { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func UseCloudServices() bool  { return viper.GetBool("USE_CLOUD_SERVICES") }
func LogLevel() string        { return viper.GetString("LOG_LEVEL") }
func LogPretty() bool         { return viper.GetBool("LOG_PRETTY") }

// DisplayLocation resolves DISPLAY_TIMEZONE, falling back to the process
// local zone when the name is unknown.
func DisplayLocation() *time.Location {
	name := viper.GetString("DISPLAY_TIMEZONE")
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
