package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"prospector-engine/internal/entities"
)

func newTestSQLite(t *testing.T) *SQLite {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "postings.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func Test_SQLite_LoadEmptyDatabase(t *testing.T) {

	store := newTestSQLite(t)

	postings, err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func Test_SQLite_AppendThenLoadRoundTrips(t *testing.T) {

	assert := assert.New(t)
	store := newTestSQLite(t)

	postedAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	postings := []entities.Posting{
		{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "linkedin",
			PostedAt: &postedAt, Location: "Remote", Description: "Series B", Score: 85},
		{Title: "VP of Product", Company: "Globex", URL: "url2", Source: "indeed", Score: 60},
	}

	saved, err := store.Append(context.Background(), postings)
	assert.NoError(err)
	assert.Len(saved, 2)

	loaded, err := store.Load(context.Background())
	assert.NoError(err)
	assert.Len(loaded, 2)
	assert.Equal("Acme", loaded[0].Company)
	assert.Equal(85, loaded[0].Score)
	assert.True(loaded[0].PostedAt.Equal(postedAt))
	assert.Equal("Globex", loaded[1].Company)
}

func Test_SQLite_AppendIsIdempotent(t *testing.T) {

	assert := assert.New(t)
	store := newTestSQLite(t)

	postings := []entities.Posting{
		{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Score: 85},
	}

	_, err := store.Append(context.Background(), postings)
	assert.NoError(err)

	saved, err := store.Append(context.Background(), postings)
	assert.NoError(err)
	assert.Len(saved, 1)
}

func Test_SQLite_AppendMatchesKeysCaseInsensitively(t *testing.T) {

	assert := assert.New(t)
	store := newTestSQLite(t)

	_, err := store.Append(context.Background(), []entities.Posting{
		{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Score: 85},
	})
	assert.NoError(err)

	saved, err := store.Append(context.Background(), []entities.Posting{
		{Title: "CHIEF PRODUCT OFFICER", Company: "acme", URL: "url2", Score: 70},
	})
	assert.NoError(err)
	assert.Len(saved, 1)
	assert.Equal("url1", saved[0].URL)
}

func Test_SQLite_SurvivesReopen(t *testing.T) {

	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "postings.db")

	store, err := NewSQLite(path)
	assert.NoError(err)
	_, err = store.Append(context.Background(), []entities.Posting{
		{Title: "CPO", Company: "Acme", Score: 85},
	})
	assert.NoError(err)
	assert.NoError(store.Close())

	reopened, err := NewSQLite(path)
	assert.NoError(err)
	defer reopened.Close()

	loaded, err := reopened.Load(context.Background())
	assert.NoError(err)
	assert.Len(loaded, 1)
	assert.Equal("Acme", loaded[0].Company)
}
