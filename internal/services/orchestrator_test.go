package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"prospector-engine/internal/entities"
	"prospector-engine/internal/events"
	"prospector-engine/internal/notify"
	"prospector-engine/internal/sources"
)

type stubSource struct {
	name     string
	postings []entities.Posting
	err      error
	panics   bool
}

func (s stubSource) Name() string {
	return s.name
}

func (s stubSource) Fetch(_ context.Context) ([]entities.Posting, error) {
	if s.panics {
		panic("adapter blew up")
	}
	return s.postings, s.err
}

type stubRouter struct {
	notified []entities.Posting
	scanned  int
}

func (r *stubRouter) Configured() bool {
	return true
}

func (r *stubRouter) Notify(_ context.Context, postings []entities.Posting, scanned int) int {
	r.notified = postings
	r.scanned = scanned
	return len(postings)
}

type stubHistory struct {
	appended []entities.Posting
	err      error
}

func (h *stubHistory) Append(_ context.Context, newPostings []entities.Posting) ([]entities.Posting, error) {
	if h.err != nil {
		return nil, h.err
	}
	h.appended = append(h.appended, newPostings...)
	return h.appended, nil
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func Test_NewOrchestrator_RequiresHistoryStore(t *testing.T) {
	_, err := NewOrchestrator(nil, &stubRouter{}, nil, nil, time.Minute)
	assert.Error(t, err)
}

func Test_Run_WithoutSourcesReturnsEmpty(t *testing.T) {

	orchestrator, err := NewOrchestrator(nil, &stubRouter{}, &stubHistory{}, nil, time.Minute)
	assert.NoError(t, err)

	postings, err := orchestrator.Run(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func Test_Run_FaultsInOneSourceDoNotAbortOthers(t *testing.T) {

	assert := assert.New(t)

	srcs := []sources.Source{
		stubSource{name: "healthy", postings: []entities.Posting{
			{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "healthy"},
		}},
		stubSource{name: "failing", err: errors.New("connection refused")},
		stubSource{name: "panicking", panics: true},
	}

	orchestrator, err := NewOrchestrator(srcs, &stubRouter{}, &stubHistory{}, nil, time.Minute)
	assert.NoError(err)
	orchestrator.SetClock(fixedClock())

	postings, err := orchestrator.Run(context.Background())

	assert.NoError(err)
	assert.Len(postings, 1)
	assert.Equal("Acme", postings[0].Company)
}

func Test_Run_ScoresDeduplicatesAndSorts(t *testing.T) {

	assert := assert.New(t)
	now := fixedClock()()
	fresh := now.Add(-12 * time.Hour)

	srcs := []sources.Source{
		stubSource{name: "linkedin", postings: []entities.Posting{
			{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "linkedin",
				PostedAt: &fresh, Location: "Remote", Description: "Series B startup"},
			{Title: "Director of Product", Company: "MegaCorp", URL: "url2", Source: "linkedin"},
		}},
		stubSource{name: "indeed", postings: []entities.Posting{
			// duplicate of the Acme CPO with weaker signals
			{Title: "chief product officer", Company: "ACME", URL: "url3", Source: "indeed"},
		}},
	}

	router := &stubRouter{}
	history := &stubHistory{}
	orchestrator, err := NewOrchestrator(srcs, router, history, nil, time.Minute)
	assert.NoError(err)
	orchestrator.SetClock(fixedClock())

	postings, err := orchestrator.Run(context.Background())
	assert.NoError(err)

	assert.Len(postings, 2)
	for _, p := range postings {
		assert.GreaterOrEqual(p.Score, 0)
		assert.LessOrEqual(p.Score, 100)
	}

	// the richer duplicate wins and sorts first
	assert.Equal("url1", postings[0].URL)
	assert.Greater(postings[0].Score, postings[1].Score)

	assert.Equal(postings, router.notified)
	assert.Equal(3, router.scanned)
	assert.Equal(postings, history.appended)
}

func Test_Run_StoreFailureIsNotFatal(t *testing.T) {

	srcs := []sources.Source{
		stubSource{name: "linkedin", postings: []entities.Posting{
			{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "linkedin"},
		}},
	}

	history := &stubHistory{err: errors.New("disk full")}
	orchestrator, err := NewOrchestrator(srcs, &stubRouter{}, history, nil, time.Minute)
	assert.NoError(t, err)

	postings, err := orchestrator.Run(context.Background())

	assert.NoError(t, err)
	assert.Len(t, postings, 1)
}

func Test_Run_NilRouterSkipsNotifications(t *testing.T) {

	srcs := []sources.Source{
		stubSource{name: "linkedin", postings: []entities.Posting{
			{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "linkedin"},
		}},
	}

	orchestrator, err := NewOrchestrator(srcs, nil, &stubHistory{}, nil, time.Minute)
	assert.NoError(t, err)

	postings, err := orchestrator.Run(context.Background())

	assert.NoError(t, err)
	assert.Len(t, postings, 1)
}

type capturingSink struct {
	messages []notify.Message
}

func (s *capturingSink) Name() string {
	return "capturing"
}

func (s *capturingSink) Dispatch(_ context.Context, msg notify.Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

func Test_Run_EndToEndWithRealRouter(t *testing.T) {

	assert := assert.New(t)
	fresh := fixedClock()().Add(-6 * time.Hour)

	srcs := []sources.Source{
		stubSource{name: "linkedin", postings: []entities.Posting{
			{Title: "Chief Product Officer", Company: "Acme Corp", URL: "url1", Source: "linkedin",
				PostedAt: &fresh, Location: "Remote",
				Description: "Series B startup hiring its first product hire"},
			{Title: "VP of Product", Company: "Google", URL: "url2", Source: "linkedin"},
		}},
		stubSource{name: "indeed", postings: []entities.Posting{
			{Title: "Chief Product Officer", Company: "Acme Corp", URL: "url3", Source: "indeed"},
		}},
	}

	sink := &capturingSink{}
	router := notify.NewRouter([]notify.Sink{sink}, nil, 40, 70, 5)
	history := &stubHistory{}

	orchestrator, err := NewOrchestrator(srcs, router, history, nil, time.Minute)
	assert.NoError(err)
	orchestrator.SetClock(fixedClock())

	postings, err := orchestrator.Run(context.Background())
	assert.NoError(err)

	// the two Acme duplicates collapse into the richer one
	assert.Len(postings, 2)
	assert.Equal("url1", postings[0].URL)
	assert.GreaterOrEqual(postings[0].Score, 70)

	// the enterprise VP posting scores below the minimum and is silenced,
	// so the single hot lead is the only message dispatched
	assert.Less(postings[1].Score, 40)
	assert.Len(sink.messages, 1)
	assert.Contains(sink.messages[0].Fallback, "Acme Corp")
}

func Test_Run_PublishesRunCompletedEvent(t *testing.T) {

	assert := assert.New(t)

	bus := EventBus.New()
	var completed *events.RunCompleted
	err := bus.Subscribe(events.RunCompletedTopic, func(event events.RunCompleted) {
		completed = &event
	})
	assert.NoError(err)

	srcs := []sources.Source{
		stubSource{name: "linkedin", postings: []entities.Posting{
			{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "linkedin"},
			{Title: "VP of Product", Company: "Globex", URL: "url2", Source: "linkedin"},
		}},
	}

	orchestrator, err := NewOrchestrator(srcs, &stubRouter{}, &stubHistory{}, bus, time.Minute)
	assert.NoError(err)
	orchestrator.SetClock(fixedClock())

	postings, err := orchestrator.Run(context.Background())
	assert.NoError(err)

	assert.NotNil(completed)
	assert.Equal(postings, completed.Postings)
	assert.Equal(2, completed.Scanned)
	assert.Equal(2, completed.Notified)
	assert.Equal(2, completed.Stored)
}
