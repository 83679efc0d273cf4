package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/airflow-ai/congestion-dashboard/internal/api"
	"github.com/airflow-ai/congestion-dashboard/internal/cloud"
	"github.com/airflow-ai/congestion-dashboard/internal/config"
	"github.com/airflow-ai/congestion-dashboard/internal/controller"
	httpHandlers "github.com/airflow-ai/congestion-dashboard/internal/http"
	"github.com/airflow-ai/congestion-dashboard/internal/telemetry"
	"github.com/airflow-ai/congestion-dashboard/internal/web"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	setupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.New(api.Options{
		BaseURL:      config.PredictionAPIURL(),
		Timeout:      config.PredictionTimeout(),
		MaxFailures:  config.BreakerMaxFailures(),
		ResetTimeout: config.BreakerResetTimeout(),
	})

	opts := controller.Options{
		RevealStep: config.RevealStep(),
		Location:   config.DisplayLocation(),
	}

	if config.TelemetryEnabled() {
		sub := telemetry.NewSubscriber(config.MQTTBroker(), config.TelemetryTopic())
		if err := sub.Start(); err != nil {
			log.Error().Err(err).Msg("telemetry subscriber failed to start; using built-in defaults")
		} else {
			defer sub.Stop()
			opts.Telemetry = sub
		}
	}

	if config.UseCloudServices() && config.SNSTopicArn() != "" {
		sns, err := cloud.NewSNSClient(ctx, config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Error().Err(err).Msg("sns client init failed; critical alerts disabled")
		} else {
			opts.Notifier = sns
		}
	}

	ctl := controller.New(client, opts)
	defer ctl.Close()
	go ctl.PollHealth(ctx, config.HealthPollInterval())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httpHandlers.Register(app, ctl, web.NewRenderer())

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	addr := config.DashboardAddr()
	log.Info().Str("addr", addr).Str("prediction_api", config.PredictionAPIURL()).Msg("dashboard listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server exit")
	}
}

func setupLogging() {
	level, err := zerolog.ParseLevel(config.LogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if config.LogPretty() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
