package entities

import (
	"strings"
	"time"
)

// Posting is a normalized job posting produced by any source adapter.
// Score stays zero until the scoring engine has run.
type Posting struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Score       int        `json:"score"`
}

// IdentityKey identifies the same real-world opportunity across sources:
// two postings with equal keys are duplicates regardless of URL or source.
func (p Posting) IdentityKey() string {
	return normalize(p.Company) + "|" + normalize(p.Title)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
