package scoring

import (
	"strings"
	"time"

	"prospector-engine/internal/entities"
)

// Score rates a posting against the ideal-customer profile on a 0-100 scale.
// It is deterministic given the posting and the reference time, holds no
// state and is safe to call concurrently.
//
// Breakdown: title 0-50, company fit -30..+25, remote-friendliness 0-10,
// freshness 0-15, plus a base offset of 5. The raw sum is clamped in both
// directions: an enterprise penalty under a weak title can go negative, and
// a posting matching every positive signal can exceed 100.
func Score(p entities.Posting, now time.Time) int {
	combined := p.Title + " " + p.Location + " " + p.Description

	total := ScoreTitle(p.Title) +
		ScoreCompany(p.Company, p.Title, p.Description) +
		ScoreRemote(combined) +
		ScoreFreshness(p.PostedAt, now) +
		baseOffset

	return clamp(total, 0, 100)
}

// ScoreTitle returns the best single matching seniority weight, 0-50.
// Max, not sum: "VP of Product, Head of Product team" is one seniority level.
func ScoreTitle(title string) int {
	lower := strings.ToLower(title)
	best := 0
	for _, p := range titlePatterns {
		if p.weight > best && p.re.MatchString(lower) {
			best = p.weight
		}
	}
	return best
}

// ScoreCompany rates company fit, -30..+25. A hit on the enterprise or
// recruiter keyword lists short-circuits to the floor penalty with no
// positive accumulation; otherwise startup signals across the combined
// text are summed and capped.
func ScoreCompany(company, title, description string) int {
	companyLower := strings.ToLower(strings.TrimSpace(company))

	for _, kw := range enterpriseKeywords {
		if strings.Contains(companyLower, kw) {
			return enterprisePenalty
		}
	}
	for _, kw := range recruiterKeywords {
		if strings.Contains(companyLower, kw) {
			return recruiterPenalty
		}
	}

	combined := strings.ToLower(company + " " + title + " " + description)
	total := 0
	for _, p := range startupSignals {
		if p.re.MatchString(combined) {
			total += p.weight
		}
	}
	if total > companyMax {
		total = companyMax
	}
	return total
}

// ScoreRemote rates remote-friendliness of the combined text, 0-10.
func ScoreRemote(text string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, p := range remoteSignals {
		if p.re.MatchString(lower) {
			total += p.weight
		}
	}
	if total > remoteMax {
		total = remoteMax
	}
	return total
}

// ScoreFreshness rates posting age in whole days, 0-15. A missing date gets
// a moderate default rather than a zero. Timestamps are compared in UTC.
func ScoreFreshness(postedAt *time.Time, now time.Time) int {
	if postedAt == nil {
		return unknownDateFreshness
	}

	ageDays := int(now.UTC().Sub(postedAt.UTC()).Hours() / 24)

	switch {
	case ageDays <= 1:
		return 15
	case ageDays <= 3:
		return 12
	case ageDays <= 7:
		return 8
	case ageDays <= 14:
		return 4
	case ageDays <= 30:
		return 2
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
