package dispatch

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finvoy/ledger-notify/internal/interfaces"
	"github.com/finvoy/ledger-notify/internal/report"
)

// Monitor is the continuous variant: it polls for documents posted within
// a trailing window and sends one message per posting not yet in the
// dedupe store. Unlike the date-driven summaries it tracks identifiers,
// because overlapping windows would otherwise re-notify on every poll.
type Monitor struct {
	source    interfaces.LedgerSource
	store     interfaces.DedupeStore
	messenger interfaces.Messenger
	number    string
	window    time.Duration
	limit     int
	log       *logrus.Logger
}

func NewMonitor(
	source interfaces.LedgerSource,
	store interfaces.DedupeStore,
	messenger interfaces.Messenger,
	number string,
	window time.Duration,
	limit int,
	log *logrus.Logger,
) *Monitor {
	return &Monitor{
		source:    source,
		store:     store,
		messenger: messenger,
		number:    number,
		window:    window,
		limit:     limit,
		log:       log,
	}
}

// Run performs one poll cycle and returns how many notifications were
// attempted. Each fresh posting is marked in the dedupe store right after
// its send attempt, whether or not the send succeeded; a failed mark
// persist is logged but the in-memory mark stands, so one broken disk
// cannot turn into a duplicate flood within this process lifetime.
func (m *Monitor) Run(ctx context.Context) (int, error) {
	postings, err := m.source.RecentPostings(ctx, m.window, m.limit)
	if err != nil {
		m.log.WithError(err).Error("postings fetch failed")
		return 0, err
	}

	attempted := 0
	for _, posting := range postings {
		if m.store.Contains(posting.ID) {
			continue
		}

		logger := m.log.WithFields(logrus.Fields{
			"posting": posting.ID,
			"name":    posting.Name,
		})

		text := report.FormatPosting(posting)
		if err := m.messenger.Send(ctx, m.number, text); err != nil {
			logger.WithError(err).Error("posting dispatch failed")
		} else {
			logger.Info("posting dispatched")
		}
		attempted++

		if err := m.store.Add(posting.ID); err != nil {
			logger.WithError(err).Warn("dedupe persist failed, in-memory mark kept")
		}
	}
	return attempted, nil
}
