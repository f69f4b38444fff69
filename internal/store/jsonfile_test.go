package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"prospector-engine/internal/entities"
)

func historyPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "postings.json")
}

func Test_JSONFile_LoadMissingFileReturnsEmpty(t *testing.T) {

	store := NewJSONFile(historyPath(t))

	postings, err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func Test_JSONFile_LoadMalformedFileReturnsEmpty(t *testing.T) {

	path := historyPath(t)
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	postings, err := NewJSONFile(path).Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, postings)
}

func Test_JSONFile_AppendThenLoadRoundTrips(t *testing.T) {

	assert := assert.New(t)
	store := NewJSONFile(historyPath(t))

	postings := []entities.Posting{
		{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "linkedin", Score: 85},
		{Title: "VP of Product", Company: "Globex", URL: "url2", Source: "indeed", Score: 60},
	}

	saved, err := store.Append(context.Background(), postings)
	assert.NoError(err)
	assert.Equal(postings, saved)

	loaded, err := store.Load(context.Background())
	assert.NoError(err)
	assert.Equal(postings, loaded)
}

func Test_JSONFile_AppendIsIdempotent(t *testing.T) {

	assert := assert.New(t)
	store := NewJSONFile(historyPath(t))

	postings := []entities.Posting{
		{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Source: "linkedin", Score: 85},
	}

	_, err := store.Append(context.Background(), postings)
	assert.NoError(err)

	saved, err := store.Append(context.Background(), postings)
	assert.NoError(err)
	assert.Len(saved, 1)
}

func Test_JSONFile_AppendOnlyAddsNewKeys(t *testing.T) {

	assert := assert.New(t)
	store := NewJSONFile(historyPath(t))

	_, err := store.Append(context.Background(), []entities.Posting{
		{Title: "Chief Product Officer", Company: "Acme", URL: "url1", Score: 85},
	})
	assert.NoError(err)

	saved, err := store.Append(context.Background(), []entities.Posting{
		{Title: "Chief Product Officer", Company: "Acme", URL: "other", Score: 99},
		{Title: "VP of Product", Company: "Globex", URL: "url2", Score: 60},
	})
	assert.NoError(err)

	assert.Len(saved, 2)
	assert.Equal("url1", saved[0].URL, "existing entries keep their first-stored form")
	assert.Equal("Globex", saved[1].Company)
}

func Test_JSONFile_AppendCreatesParentDirectories(t *testing.T) {

	path := filepath.Join(t.TempDir(), "nested", "deeper", "postings.json")
	store := NewJSONFile(path)

	_, err := store.Append(context.Background(), []entities.Posting{
		{Title: "CPO", Company: "Acme"},
	})

	assert.NoError(t, err)
	assert.FileExists(t, path)
}
