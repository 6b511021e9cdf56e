package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finvoy/ledger-notify/internal/config"
	"github.com/finvoy/ledger-notify/internal/dedupe"
	"github.com/finvoy/ledger-notify/internal/dispatch"
	"github.com/finvoy/ledger-notify/internal/events/kafka"
	"github.com/finvoy/ledger-notify/internal/interfaces"
	"github.com/finvoy/ledger-notify/internal/schedule"
	"github.com/finvoy/ledger-notify/internal/storage/postgres"
	"github.com/finvoy/ledger-notify/internal/whatsapp"
)

func main() {
	log := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration invalid")
	}

	ctx := context.Background()

	source, err := postgres.Open(ctx, cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("could not connect to the accounting database")
	}
	defer source.Close()

	messenger, err := whatsapp.NewClient(cfg.EvolutionAPIURL, cfg.EvolutionAPIKey, cfg.EvolutionInstance, log)
	if err != nil {
		log.WithError(err).Fatal("could not build the messaging client")
	}
	if !messenger.CheckInstanceStatus(ctx) {
		log.Warn("messaging instance is not connected, sends may fail")
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	store, err := dedupe.OpenFileStore(cfg.NotifiedLogPath)
	if err != nil {
		log.WithError(err).Fatal("could not open the notified log")
	}
	defer store.Close()

	dispatcher := dispatch.NewDispatcher(source, messenger, publisher, cfg.WhatsAppNumber, log)
	monitor := dispatch.NewMonitor(source, store, messenger, cfg.WhatsAppNumber, cfg.MonitorWindow, cfg.MonitorLimit, log)

	scheduler := schedule.New(log)
	scheduler.AddDaily(schedule.DailyJob{
		Name: "receivables-today", Hour: 7, Minute: 0,
		Run: func(ctx context.Context) {
			dispatcher.DispatchReceivablesDueOn(ctx, time.Now(), true)
		},
	})
	scheduler.AddDaily(schedule.DailyJob{
		Name: "payables-today", Hour: 7, Minute: 30,
		Run: func(ctx context.Context) {
			dispatcher.DispatchPayablesToday(ctx, time.Now())
		},
	})
	scheduler.AddDaily(schedule.DailyJob{
		Name: "receivables-tomorrow", Hour: 17, Minute: 30,
		Run: func(ctx context.Context) {
			dispatcher.DispatchReceivablesDueOn(ctx, time.Now().AddDate(0, 0, 1), false)
		},
	})
	scheduler.AddDaily(schedule.DailyJob{
		Name: "purchases-today", Hour: 18, Minute: 0,
		Run: func(ctx context.Context) {
			dispatcher.DispatchPurchasesToday(ctx, time.Now())
		},
	})
	scheduler.AddInterval(schedule.IntervalJob{
		Name: "posting-monitor", Every: 15 * time.Minute,
		Run: func(ctx context.Context) {
			monitor.Run(ctx)
		},
	})

	scheduler.Start()
	log.Info("notifier started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	scheduler.Stop()
	log.Info("notifier stopped")
}
