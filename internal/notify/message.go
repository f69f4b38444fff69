package notify

import (
	"fmt"
	"strings"

	"prospector-engine/internal/entities"
)

// Message is a rendered notification: a plain-text fallback for sinks that
// only support text, plus structured blocks for sinks with rich rendering.
type Message struct {
	Fallback string
	Blocks   []Block
}

type Block struct {
	Type string     `json:"type"`
	Text *BlockText `json:"text,omitempty"`
}

type BlockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func section(text string) Block {
	return Block{Type: "section", Text: &BlockText{Type: "mrkdwn", Text: text}}
}

func divider() Block {
	return Block{Type: "divider"}
}

// FormatPosting renders one posting as a mrkdwn string.
func FormatPosting(p entities.Posting) string {
	marker := "📋"
	if p.Score >= 70 {
		marker = "🔥"
	} else if p.Score >= 50 {
		marker = "⭐"
	}

	location := p.Location
	if location == "" {
		location = "Not specified"
	}

	return fmt.Sprintf("%s *%s* — %s\nScore: *%d/100* | Source: %s\nLocation: %s\n<%s|View posting>",
		marker, p.Company, p.Title, p.Score, p.Source, location, p.URL)
}

func hotMessage(p entities.Posting) Message {
	return Message{
		Fallback: fmt.Sprintf("%s — %s (Score: %d)", p.Company, p.Title, p.Score),
		Blocks:   []Block{section(FormatPosting(p)), divider()},
	}
}

func digestMessage(postings []entities.Posting, scanned int) Message {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*Lead digest* — top %d of %d scanned postings\n", len(postings), scanned))

	blocks := []Block{section(sb.String())}
	for _, p := range postings {
		blocks = append(blocks, section(FormatPosting(p)))
	}
	blocks = append(blocks, divider())

	return Message{
		Fallback: fmt.Sprintf("Lead digest: %d postings (of %d scanned)", len(postings), scanned),
		Blocks:   blocks,
	}
}
