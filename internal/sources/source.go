package sources

import (
	"context"

	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/entities"
	"prospector-engine/internal/logger"
	"prospector-engine/internal/metrics"
)

// Source is the capability every job board adapter provides. Fetch may
// perform network I/O, may fail and may panic; callers go through SafeFetch.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]entities.Posting, error)
}

// SafeFetch is the fault-isolating wrapper around a source: any error or
// panic during fetch is logged and turned into an empty result, so one
// misbehaving source can never abort the overall run.
func SafeFetch(ctx context.Context, source Source) (postings []entities.Posting) {

	defer func() {
		if r := recover(); r != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
				Errorf("[%s] fetch panicked: %v", source.Name(), r)
			postings = nil
		}
	}()

	results, err := source.Fetch(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
			Errorf("[%s] fetch failed: %v", source.Name(), err)
		return nil
	}

	log.Infof("[%s] found %d postings", source.Name(), len(results))
	metrics.FetchedPostingsCounter.WithLabelValues(source.Name()).Add(float64(len(results)))
	return results
}
