package store

import (
	"context"

	"prospector-engine/internal/entities"
)

// History is the durable record of postings across runs, unique by identity
// key. Append merges, persists when something new arrived and returns the
// full history; the in-run deduplicator only covers a single batch, the
// store covers all runs. Load recovers locally from missing or malformed
// backing data by returning an empty history.
//
// Load-then-append is not safe under concurrent runs: callers must
// serialize runs against one backing resource.
type History interface {
	Load(ctx context.Context) ([]entities.Posting, error)
	Append(ctx context.Context, newPostings []entities.Posting) ([]entities.Posting, error)
}
