package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/dedup"
	"prospector-engine/internal/entities"
	"prospector-engine/internal/events"
	"prospector-engine/internal/logger"
	"prospector-engine/internal/metrics"
	"prospector-engine/internal/scoring"
	"prospector-engine/internal/sources"
)

type notificationRouter interface {
	Configured() bool
	Notify(ctx context.Context, postings []entities.Posting, scanned int) int
}

type historyStore interface {
	Append(ctx context.Context, newPostings []entities.Posting) ([]entities.Posting, error)
}

var errorNilHistory = errors.New("history store is nil")

// Orchestrator composes sources, scoring, dedup, notification and storage
// into a single prospecting run.
type Orchestrator struct {
	sources      []sources.Source
	router       notificationRouter
	history      historyStore
	bus          EventBus.Bus
	fetchTimeout time.Duration
	now          func() time.Time
}

func NewOrchestrator(srcs []sources.Source, router notificationRouter, history historyStore,
	bus EventBus.Bus, fetchTimeout time.Duration) (*Orchestrator, error) {

	if history == nil {
		return nil, errorNilHistory
	}

	return &Orchestrator{
		sources:      srcs,
		router:       router,
		history:      history,
		bus:          bus,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}, nil
}

// SetClock overrides the scoring reference time, for tests.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// Run executes one full pipeline pass and returns this run's deduplicated,
// scored postings sorted descending by score. Collaborator failures are
// recovered inside their stages; only configuration-level problems surface
// as errors.
func (o *Orchestrator) Run(ctx context.Context) ([]entities.Posting, error) {

	start := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	if len(o.sources) == 0 {
		log.Warn("no sources enabled, nothing to prospect")
		return []entities.Posting{}, nil
	}

	log.Infof("running %d sources...", len(o.sources))
	working := o.fetchAll(ctx)
	log.Infof("collected %d raw postings", len(working))

	now := o.now().UTC()
	for i := range working {
		working[i].Score = scoring.Score(working[i], now)
	}

	unique := dedup.Deduplicate(working)
	log.Infof("after dedup: %d unique postings", len(unique))

	sort.SliceStable(unique, func(i, j int) bool { return unique[i].Score > unique[j].Score })

	notified := 0
	if o.router != nil && o.router.Configured() {
		notified = o.router.Notify(ctx, unique, len(working))
		log.Infof("dispatched %d notification messages", notified)
	} else {
		log.Warn("no notification sink configured, skipping notifications")
	}

	storedTotal := 0
	history, err := o.history.Append(ctx, unique)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("failed to persist postings: %v", err)
	} else {
		storedTotal = len(history)
		log.Infof("total stored postings: %d", storedTotal)
	}

	if o.bus != nil {
		o.bus.Publish(events.RunCompletedTopic, events.RunCompleted{
			Postings: unique,
			Scanned:  len(working),
			Notified: notified,
			Stored:   storedTotal,
			Duration: time.Since(start),
		})
	}

	return unique, nil
}

// fetchAll fans out one fault-isolated fetch per source and joins the
// results in declared source order rather than completion order, keeping
// dedup tie-breaks reproducible across runs.
func (o *Orchestrator) fetchAll(ctx context.Context) []entities.Posting {

	results := make([][]entities.Posting, len(o.sources))

	var wg sync.WaitGroup
	for i, src := range o.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()

			fetchCtx := ctx
			if o.fetchTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, o.fetchTimeout)
				defer cancel()
			}

			results[i] = sources.SafeFetch(fetchCtx, src)
		}(i, src)
	}
	wg.Wait()

	return lo.Flatten(results)
}
