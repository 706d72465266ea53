package main

import (
	"context"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/me-thanay/SIH-krishi-mithr-sub000/apis"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/cloud"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/configs"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/engine"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/log"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/notify"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/relay"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/speech"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/telemetry"
	"github.com/me-thanay/SIH-krishi-mithr-sub000/voice"
)

var logger zerolog.Logger
var appVersion string

func init() {
	logger = log.Logger("main")
}

func main() {
	_ = godotenv.Load()

	injector := configs.GetInjector()

	configFile, ok := os.LookupEnv("CONFIG_FILE")
	if !ok {
		logger.Fatal().Msg("Please export CONFIG_FILE")
	}
	cfg, err := configs.LoadConfig(configFile)
	if err != nil {
		logger.Fatal().Msgf("Load config error: %s", err)
	}
	injector.Map(cfg)

	hostname, _ := os.Hostname()
	log.InitGlobalLogger(hostname, cfg.Logging.Level)
	logger.Info().Str("version", appVersion).Msg("starting field box")

	clk := clock.New()
	client := cloud.NewClient(cloud.ClientConfig{
		BaseURL:        cfg.Farm.BaseURL,
		RequestTimeout: cfg.Farm.RequestTimeout,
	})

	queue := notify.NewQueue(clk)
	hub := notify.NewHub()
	go hub.Run()
	queue.OnChange(hub.BroadcastRecord)
	store := notify.NewStore()

	synth := speech.NewHTTPSynthesizer(cfg.Voice.Endpoint)
	reader := voice.NewReader(synth, clk, cfg.Voice.Locale, cfg.Voice.UtteranceGap)
	if !synth.Available() {
		logger.Warn().Msg("speech synthesis unavailable, voice alerts disabled")
		queue.Push("", voice.PhraseVoiceBroken, telemetry.SeverityWarning, cfg.Notify.CommandErrTTL)
	}

	poller := telemetry.NewPoller(client, clk, cfg.Poll)
	dispatcher := relay.NewDispatcher(client, queue, reader, poller.RequestRefresh, relay.Config{
		RelayIDs:      cfg.Relays.IDs,
		CommandOkTTL:  cfg.Notify.CommandOkTTL,
		CommandErrTTL: cfg.Notify.CommandErrTTL,
	})
	eng := engine.New(poller, store, queue, dispatcher, clk, cfg.Poll, cfg.Notify)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	eng.Start(ctx)

	injector.Map(poller)
	injector.Map(queue)
	injector.Map(hub)
	injector.Map(dispatcher)
	injector.Map(reader)

	if err := apis.Run(injector, cfg); err != nil {
		logger.Fatal().Msgf("Failed to run api server: %s", err)
	}
}
