package dedup

import "prospector-engine/internal/entities"

// Deduplicate collapses postings sharing an identity key down to one
// instance each. The highest-scored duplicate wins; on equal scores the
// first-seen instance is kept, so the result is deterministic for a given
// input order. First-seen positions are preserved in the output. The input
// is never mutated.
func Deduplicate(postings []entities.Posting) []entities.Posting {
	out := make([]entities.Posting, 0, len(postings))
	index := make(map[string]int, len(postings))

	for _, p := range postings {
		key := p.IdentityKey()
		if at, seen := index[key]; seen {
			if p.Score > out[at].Score {
				out[at] = p
			}
			continue
		}
		index[key] = len(out)
		out = append(out, p)
	}

	return out
}
