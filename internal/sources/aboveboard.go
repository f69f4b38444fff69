package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/entities"
)

const aboveboardSearchURL = "https://trueplatform.com/search/"

// Aboveboard (now TruePlatform) is an executive job board. The site is
// JS-rendered, so a plain HTTP fetch may legitimately come back empty.
type Aboveboard struct {
	client *Client
}

func NewAboveboard(client *Client) *Aboveboard {
	return &Aboveboard{client: client}
}

func (a *Aboveboard) Name() string {
	return "aboveboard"
}

func (a *Aboveboard) Fetch(ctx context.Context) ([]entities.Posting, error) {

	body, err := a.client.Get(ctx, aboveboardSearchURL)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) &&
			(reqErr.StatusCode == http.StatusForbidden || reqErr.StatusCode == http.StatusNotFound) {
			log.Debugf("[aboveboard] site requires JS rendering, skipping")
			return nil, nil
		}
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing listing page: %v", err)
	}

	var postings []entities.Posting
	doc.Find("div.job-card, article.job-listing, div[data-job-id]").Each(func(_ int, card *goquery.Selection) {

		title := strings.TrimSpace(card.Find("h3, h2, a.job-title").First().Text())
		if title == "" {
			return
		}

		href, _ := card.Find("a[href]").First().Attr("href")
		if strings.HasPrefix(href, "/") {
			href = "https://trueplatform.com" + href
		}

		postings = append(postings, entities.Posting{
			Title:    title,
			Company:  textOrDefault(card, "span.company-name, div.company", "Unknown"),
			URL:      href,
			Source:   a.Name(),
			Location: textOrDefault(card, "span.location, div.location", ""),
		})
	})

	return postings, nil
}
