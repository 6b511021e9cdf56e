package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/finvoy/ledger-notify/internal/interfaces"
	"github.com/finvoy/ledger-notify/internal/models"
	"github.com/finvoy/ledger-notify/internal/models/events"
	"github.com/finvoy/ledger-notify/internal/report"
)

// Outcome is the terminal state of one dispatch attempt.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"    // formatted text delivered to the gateway
	OutcomeSkipped Outcome = "skipped" // nothing matched the selection, nothing sent
	OutcomeFailed  Outcome = "failed"  // fetch or send error; no retry this attempt
)

// Dispatcher runs one report kind end to end: fetch, aggregate, format,
// send. A run goes to completion before the next one starts; the caller
// (scheduler or one-shot binary) serializes invocations.
type Dispatcher struct {
	source    interfaces.LedgerSource
	messenger interfaces.Messenger
	publisher interfaces.EventPublisher // optional, nil disables auditing
	number    string
	log       *logrus.Logger
}

func NewDispatcher(
	source interfaces.LedgerSource,
	messenger interfaces.Messenger,
	publisher interfaces.EventPublisher,
	number string,
	log *logrus.Logger,
) *Dispatcher {
	return &Dispatcher{
		source:    source,
		messenger: messenger,
		publisher: publisher,
		number:    number,
		log:       log,
	}
}

// DispatchPayablesToday sends the payables-due-today summary, grouped by
// company. Re-running on the same day reselects the same rows and resends;
// that is the accepted behavior for the date-driven reports, which carry
// no persisted dedupe.
func (d *Dispatcher) DispatchPayablesToday(ctx context.Context, asOf time.Time) (Outcome, error) {
	entries, err := d.source.PayablesDueOn(ctx, asOf)
	if err != nil {
		d.log.WithError(err).Error("payables fetch failed")
		return OutcomeFailed, err
	}
	return d.send(ctx, report.AggregatePayables(entries, asOf))
}

// DispatchReceivablesDueOn sends the receivables summary for the given due
// date. dueToday selects the HOJE vs. AMANHÃ wording.
func (d *Dispatcher) DispatchReceivablesDueOn(ctx context.Context, due time.Time, dueToday bool) (Outcome, error) {
	entries, err := d.source.ReceivablesDueOn(ctx, due)
	if err != nil {
		d.log.WithError(err).Error("receivables fetch failed")
		return OutcomeFailed, err
	}
	return d.send(ctx, report.AggregateReceivables(entries, due, dueToday))
}

// DispatchPurchasesToday sends the summary of purchase orders created or
// modified today, grouped by lifecycle state.
func (d *Dispatcher) DispatchPurchasesToday(ctx context.Context, asOf time.Time) (Outcome, error) {
	orders, err := d.source.PurchasesTouchedToday(ctx)
	if err != nil {
		d.log.WithError(err).Error("purchases fetch failed")
		return OutcomeFailed, err
	}
	return d.send(ctx, report.AggregatePurchases(orders, asOf))
}

func (d *Dispatcher) send(ctx context.Context, rep *models.Report) (Outcome, error) {
	text := report.Format(rep)
	if text == "" {
		d.log.Info("nothing to report, skipping dispatch")
		return OutcomeSkipped, nil
	}

	attemptID := uuid.New().String()
	logger := d.log.WithFields(logrus.Fields{
		"attempt": attemptID,
		"kind":    string(rep.Kind),
		"entries": rep.EntryCount,
	})

	outcome := OutcomeSent
	sendErr := d.messenger.Send(ctx, d.number, text)
	if sendErr != nil {
		outcome = OutcomeFailed
		logger.WithError(sendErr).Error("dispatch failed")
	} else {
		logger.Info("dispatch sent")
	}

	d.audit(attemptID, rep, outcome)
	return outcome, sendErr
}

// audit publishes the dispatch record when a publisher is configured.
// A publish failure is logged and ignored, auditing never blocks sends.
func (d *Dispatcher) audit(attemptID string, rep *models.Report, outcome Outcome) {
	if d.publisher == nil {
		return
	}
	event := events.NotificationDispatched{
		AttemptID:   attemptID,
		Kind:        string(rep.Kind),
		Destination: d.number,
		EntryCount:  rep.EntryCount,
		GrandTotal:  rep.GrandTotal,
		Outcome:     string(outcome),
		OccurredAt:  time.Now(),
	}
	if err := d.publisher.Publish("notification_dispatched", event); err != nil {
		d.log.WithError(err).Warn("audit publish failed")
	}
}
