// One-shot runner for external cron: executes a single report kind and
// exits 0 on sent/skipped, 1 on failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/finvoy/ledger-notify/internal/config"
	"github.com/finvoy/ledger-notify/internal/dedupe"
	"github.com/finvoy/ledger-notify/internal/dispatch"
	"github.com/finvoy/ledger-notify/internal/storage/postgres"
	"github.com/finvoy/ledger-notify/internal/whatsapp"
)

func main() {
	kind := flag.String("kind", "", "payables | receivables-today | receivables-tomorrow | purchases | monitor")
	flag.Parse()

	log := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration invalid")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	source, err := postgres.Open(ctx, cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("could not connect to the accounting database")
	}
	defer source.Close()

	messenger, err := whatsapp.NewClient(cfg.EvolutionAPIURL, cfg.EvolutionAPIKey, cfg.EvolutionInstance, log)
	if err != nil {
		log.WithError(err).Fatal("could not build the messaging client")
	}

	dispatcher := dispatch.NewDispatcher(source, messenger, nil, cfg.WhatsAppNumber, log)

	var outcome dispatch.Outcome
	switch *kind {
	case "payables":
		outcome, _ = dispatcher.DispatchPayablesToday(ctx, time.Now())
	case "receivables-today":
		outcome, _ = dispatcher.DispatchReceivablesDueOn(ctx, time.Now(), true)
	case "receivables-tomorrow":
		outcome, _ = dispatcher.DispatchReceivablesDueOn(ctx, time.Now().AddDate(0, 0, 1), false)
	case "purchases":
		outcome, _ = dispatcher.DispatchPurchasesToday(ctx, time.Now())
	case "monitor":
		store, err := dedupe.OpenFileStore(cfg.NotifiedLogPath)
		if err != nil {
			log.WithError(err).Fatal("could not open the notified log")
		}
		defer store.Close()
		monitor := dispatch.NewMonitor(source, store, messenger, cfg.WhatsAppNumber, cfg.MonitorWindow, cfg.MonitorLimit, log)
		if _, err := monitor.Run(ctx); err != nil {
			os.Exit(1)
		}
		return
	default:
		fmt.Fprintln(os.Stderr, "usage: dispatch -kind payables|receivables-today|receivables-tomorrow|purchases|monitor")
		os.Exit(2)
	}

	if outcome == dispatch.OutcomeFailed {
		os.Exit(1)
	}
}
