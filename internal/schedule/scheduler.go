package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DailyJob runs once per day when the wall clock passes the given time.
type DailyJob struct {
	Name   string
	Hour   int
	Minute int
	Run    func(ctx context.Context)
}

// IntervalJob runs on a fixed period, first firing one period after Start.
type IntervalJob struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context)
}

// Scheduler drives the notifier's triggers from a single goroutine, so
// jobs never overlap: each run completes before the next job starts.
type Scheduler struct {
	CheckInterval time.Duration

	daily    []DailyJob
	interval []IntervalJob
	log      *logrus.Logger

	ticker   *time.Ticker
	stop     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	lastDay  map[string]string    // daily job name -> date last fired
	nextTick map[string]time.Time // interval job name -> next due time
}

func New(log *logrus.Logger) *Scheduler {
	return &Scheduler{
		CheckInterval: 30 * time.Second,
		log:           log,
		stop:          make(chan struct{}),
		lastDay:       make(map[string]string),
		nextTick:      make(map[string]time.Time),
	}
}

func (s *Scheduler) AddDaily(job DailyJob) {
	s.daily = append(s.daily, job)
}

func (s *Scheduler) AddInterval(job IntervalJob) {
	s.interval = append(s.interval, job)
}

// Start begins the scheduling loop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, job := range s.interval {
		s.nextTick[job.Name] = now.Add(job.Every)
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)
	go s.run()

	for _, job := range s.daily {
		s.log.WithFields(logrus.Fields{
			"job": job.Name,
			"at":  fmt.Sprintf("%02d:%02d", job.Hour, job.Minute),
		}).Info("daily job registered")
	}
	for _, job := range s.interval {
		s.log.WithFields(logrus.Fields{
			"job":   job.Name,
			"every": job.Every.String(),
		}).Info("interval job registered")
	}
}

// Stop halts the loop and waits for an in-flight job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.log.Info("scheduler stopped")
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ticker.C:
			s.check(time.Now())
		case <-s.stop:
			return
		}
	}
}

// check fires every job that has come due. A daily job fires at most once
// per calendar day, even when the process was asleep over its slot.
func (s *Scheduler) check(now time.Time) {
	ctx := context.Background()
	day := now.Format("2006-01-02")

	for _, job := range s.daily {
		due := time.Date(now.Year(), now.Month(), now.Day(), job.Hour, job.Minute, 0, 0, now.Location())
		if now.Before(due) || s.lastDay[job.Name] == day {
			continue
		}
		s.lastDay[job.Name] = day
		s.log.WithFields(logrus.Fields{"job": job.Name}).Info("running daily job")
		job.Run(ctx)
	}

	for _, job := range s.interval {
		if now.Before(s.nextTick[job.Name]) {
			continue
		}
		s.nextTick[job.Name] = now.Add(job.Every)
		s.log.WithFields(logrus.Fields{"job": job.Name}).Info("running interval job")
		job.Run(ctx)
	}
}
