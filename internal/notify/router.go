package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/entities"
	"prospector-engine/internal/events"
	"prospector-engine/internal/logger"
	"prospector-engine/internal/metrics"
)

// Sink delivers one rendered message to some destination.
type Sink interface {
	Name() string
	Dispatch(ctx context.Context, msg Message) error
}

// Router partitions scored postings into two alert tiers. Postings at or
// above the hot threshold are dispatched individually; the rest of the
// qualifying postings are batched into a single top-N digest. Postings
// below the minimum score never reach a sink.
type Router struct {
	sinks        []Sink
	bus          EventBus.Bus
	minScore     int
	hotThreshold int
	digestSize   int
	alerted      *gocache.Cache
	warnOnce     sync.Once
}

func NewRouter(sinks []Sink, bus EventBus.Bus, minScore, hotThreshold, digestSize int) *Router {
	return &Router{
		sinks:        sinks,
		bus:          bus,
		minScore:     minScore,
		hotThreshold: hotThreshold,
		digestSize:   digestSize,
	}
}

// SuppressRealerts stops a hot lead from being re-dispatched when its
// identity key was already alerted within the TTL window.
func (r *Router) SuppressRealerts(ttl time.Duration) {
	r.alerted = gocache.New(ttl, 2*ttl)
}

func (r *Router) Configured() bool {
	return len(r.sinks) > 0
}

// Notify dispatches qualifying postings and returns the number of messages
// successfully delivered. Hot leads count individually; the digest counts
// once no matter how many postings it carries. Sink failures are logged and
// never abort the remaining messages.
func (r *Router) Notify(ctx context.Context, postings []entities.Posting, scanned int) int {
	if !r.Configured() {
		r.warnOnce.Do(func() {
			log.Warn("no notification sink configured, alerts are disabled")
		})
		return 0
	}

	qualifying := lo.Filter(postings, func(p entities.Posting, _ int) bool {
		return p.Score >= r.minScore
	})
	if len(qualifying) == 0 {
		log.Infof("no postings above minimum score threshold (%d)", r.minScore)
		return 0
	}

	hot := lo.Filter(qualifying, func(p entities.Posting, _ int) bool {
		return p.Score >= r.hotThreshold
	})
	rest := lo.Filter(qualifying, func(p entities.Posting, _ int) bool {
		return p.Score < r.hotThreshold
	})

	sent := 0
	for _, p := range hot {
		if r.alreadyAlerted(p) {
			log.Debugf("suppressing re-alert for %q", p.IdentityKey())
			continue
		}
		if r.bus != nil {
			r.bus.Publish(events.HotLeadFoundTopic, events.HotLeadFound{Posting: p})
		}
		if r.dispatch(ctx, hotMessage(p)) {
			sent++
			metrics.NotificationsCounter.WithLabelValues("hot").Inc()
			log.Infof("notified hot lead: %s at %s (score: %d)", p.Title, p.Company, p.Score)
			// an undelivered lead stays eligible for the next run
			r.markAlerted(p)
		}
	}

	if len(rest) > 0 {
		sort.SliceStable(rest, func(i, j int) bool { return rest[i].Score > rest[j].Score })
		if len(rest) > r.digestSize {
			rest = rest[:r.digestSize]
		}
		if r.dispatch(ctx, digestMessage(rest, scanned)) {
			sent++
			metrics.NotificationsCounter.WithLabelValues("digest").Inc()
			log.Infof("notified digest with %d postings", len(rest))
		}
	}

	return sent
}

// dispatch sends one message to every sink; the message counts as delivered
// when at least one sink accepted it.
func (r *Router) dispatch(ctx context.Context, msg Message) bool {
	delivered := false
	for _, sink := range r.sinks {
		if err := sink.Dispatch(ctx, msg); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSink).
				Errorf("failed to dispatch via %s: %v", sink.Name(), err)
			continue
		}
		delivered = true
	}
	return delivered
}

func (r *Router) alreadyAlerted(p entities.Posting) bool {
	if r.alerted == nil {
		return false
	}
	_, found := r.alerted.Get(p.IdentityKey())
	return found
}

func (r *Router) markAlerted(p entities.Posting) {
	if r.alerted == nil {
		return
	}
	r.alerted.SetDefault(p.IdentityKey(), struct{}{})
}
