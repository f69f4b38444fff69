package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/entities"
)

var indeedSearchTerms = []string{
	"chief product officer",
	"CPTO",
	"VP of Product",
	"Head of Product",
}

// Indeed aggressively blocks non-browser requests with 403; a blocked
// search is logged at debug and skipped rather than treated as a failure.
type Indeed struct {
	client *Client
}

func NewIndeed(client *Client) *Indeed {
	return &Indeed{client: client}
}

func (i *Indeed) Name() string {
	return "indeed"
}

func (i *Indeed) Fetch(ctx context.Context) ([]entities.Posting, error) {

	var postings []entities.Posting

	for _, term := range indeedSearchTerms {
		batch, err := i.search(ctx, term)
		if err != nil {
			var reqErr *RequestError
			if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusForbidden {
				log.Debugf("[indeed] blocked (403), a browser or SerpAPI is required")
			} else {
				log.Errorf("[indeed] search failed for %q: %v", term, err)
			}
			continue
		}
		postings = append(postings, batch...)
	}

	return postings, nil
}

func (i *Indeed) search(ctx context.Context, term string) ([]entities.Posting, error) {

	searchURL := fmt.Sprintf("https://www.indeed.com/jobs?q=%s&sort=date&fromage=14", url.QueryEscape(term))
	body, err := i.client.Get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing search results: %v", err)
	}

	var postings []entities.Posting
	doc.Find("div.job_seen_beacon, div.jobsearch-ResultsList > div").Each(func(_ int, card *goquery.Selection) {

		titleEl := card.Find("h2.jobTitle a, a.jcs-JobTitle").First()
		title := strings.TrimSpace(titleEl.Text())
		if title == "" {
			return
		}

		href, _ := titleEl.Attr("href")
		if strings.HasPrefix(href, "/") {
			href = "https://www.indeed.com" + href
		}

		postings = append(postings, entities.Posting{
			Title:       title,
			Company:     textOrDefault(card, "span[data-testid='company-name'], span.companyName", "Unknown"),
			URL:         href,
			Source:      i.Name(),
			Location:    textOrDefault(card, "div[data-testid='text-location'], div.companyLocation", ""),
			Description: textOrDefault(card, "div.job-snippet, td.snip", ""),
		})
	})

	return postings, nil
}

func textOrDefault(s *goquery.Selection, selector, fallback string) string {
	text := strings.TrimSpace(s.Find(selector).First().Text())
	if text == "" {
		return fallback
	}
	return text
}
