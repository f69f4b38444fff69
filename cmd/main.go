package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/config"
	"prospector-engine/internal/events"
	"prospector-engine/internal/logger"
	"prospector-engine/internal/metrics"
	"prospector-engine/internal/notify"
	"prospector-engine/internal/services"
	"prospector-engine/internal/sources"
	"prospector-engine/internal/store"
)

func buildSources(cfg *config.Config) []sources.Source {

	client := sources.NewClient(cfg.Sources.RequestDelay)
	if cfg.Sources.MaxRequestsPerSecond > 0 {
		client.SetRateLimit(cfg.Sources.MaxRequestsPerSecond)
	}

	var srcs []sources.Source
	if cfg.Sources.LinkedIn {
		srcs = append(srcs, sources.NewLinkedIn(client, cfg.Sources.SerpAPIKey))
	}
	if cfg.Sources.Indeed {
		srcs = append(srcs, sources.NewIndeed(client))
	}
	if cfg.Sources.Wellfound {
		srcs = append(srcs, sources.NewWellfound(client))
	}
	if cfg.Sources.Aboveboard {
		srcs = append(srcs, sources.NewAboveboard(client))
	}
	return srcs
}

func buildHistory(cfg *config.Config) (store.History, func()) {

	if cfg.Store.Driver == config.StoreDriverSQLite {
		db, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			log.Fatalf("can't open history database: %v", err)
		}
		return db, func() { _ = db.Close() }
	}

	return store.NewJSONFile(cfg.Store.Path), func() {}
}

func buildRouter(cfg *config.Config, bus EventBus.Bus) *notify.Router {

	var sinks []notify.Sink

	slack := notify.NewSlackSink(cfg.Notifier.SlackBotToken, cfg.Notifier.SlackChannelID, cfg.Notifier.SlackWebhookURL)
	if slack.Configured() {
		sinks = append(sinks, slack)
	}

	router := notify.NewRouter(sinks, bus, cfg.Pipeline.MinScore, cfg.Pipeline.HotThreshold, cfg.Pipeline.DigestSize)
	if cfg.Pipeline.RealertTTL > 0 {
		router.SuppressRealerts(cfg.Pipeline.RealertTTL)
	}
	return router
}

func printRunSummary(event events.RunCompleted) {

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("  Prospector results: %d unique postings found\n", len(event.Postings))
	fmt.Println(strings.Repeat("=", 60))

	shown := event.Postings
	if len(shown) > 20 {
		shown = shown[:20]
	}

	for _, p := range shown {
		marker := "  "
		if p.Score >= 70 {
			marker = "🔥"
		} else if p.Score >= 50 {
			marker = "⭐"
		}
		location := p.Location
		if location == "" {
			location = "No location"
		}
		fmt.Printf("  %s [%3d] %s — %s\n", marker, p.Score, p.Company, p.Title)
		fmt.Printf("        %s | %s\n", p.Source, location)
		fmt.Printf("        %s\n\n", p.URL)
	}

	if len(event.Postings) > 20 {
		fmt.Printf("  ... and %d more in history\n", len(event.Postings)-20)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	history, closeHistory := buildHistory(cfg)
	defer closeHistory()

	bus := EventBus.New()
	router := buildRouter(cfg, bus)

	if cfg.Notifier.TelegramToken != "" {
		if _, err := notify.NewTelegramAlerter(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatID, bus); err != nil {
			log.Errorf("can't create telegram alerter: %v", err)
		}
	}

	if err := bus.Subscribe(events.RunCompletedTopic, printRunSummary); err != nil {
		log.Fatalf("can't subscribe to run summaries: %v", err)
	}

	orchestrator, err := services.NewOrchestrator(buildSources(cfg), router, history, bus, cfg.Pipeline.FetchTimeout)
	if err != nil {
		log.Fatalf("can't create orchestrator: %v", err)
	}

	if cfg.Pipeline.Schedule == "" {
		if _, err := orchestrator.Run(ctx); err != nil {
			log.Fatalf("prospecting run failed: %v", err)
		}
		return
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Pipeline.Schedule, func() {
		if _, err := orchestrator.Run(ctx); err != nil {
			log.Errorf("prospecting run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("invalid run schedule: %v", err)
	}

	scheduler.Start()
	log.Infof("scheduled prospecting runs: %q", cfg.Pipeline.Schedule)

	<-ctx.Done()

	log.Info("Shutting down services...")
	scheduler.Stop()
	log.Info("Services stopped.")
}
