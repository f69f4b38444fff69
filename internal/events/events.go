package events

import (
	"time"

	"prospector-engine/internal/entities"
)

const (
	HotLeadFoundTopic = "lead:hot"
	RunCompletedTopic = "run:completed"
)

// HotLeadFound is published for every posting that clears the hot-lead
// threshold during a run.
type HotLeadFound struct {
	Posting entities.Posting
}

// RunCompleted summarizes one pipeline run.
type RunCompleted struct {
	Postings []entities.Posting
	Scanned  int
	Notified int
	Stored   int
	Duration time.Duration
}
