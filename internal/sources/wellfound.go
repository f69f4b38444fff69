package sources

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"prospector-engine/internal/entities"
)

const wellfoundSearchURL = "https://wellfound.com/role/product-manager"

var wellfoundTitleKeywords = []string{
	"chief product",
	"cpto",
	"vp product",
	"vp of product",
	"head of product",
	"product leader",
	"svp product",
	"director product",
}

// Wellfound lists startup roles; only senior product titles are kept.
type Wellfound struct {
	client *Client
}

func NewWellfound(client *Client) *Wellfound {
	return &Wellfound{client: client}
}

func (w *Wellfound) Name() string {
	return "wellfound"
}

func (w *Wellfound) Fetch(ctx context.Context) ([]entities.Posting, error) {

	body, err := w.client.Get(ctx, wellfoundSearchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing listing page: %v", err)
	}

	var postings []entities.Posting
	doc.Find("div.styles_jobListing__title, div[data-test='StartupResult'], div.job-listing").
		Each(func(_ int, card *goquery.Selection) {

			title := strings.TrimSpace(card.Find("a.job-title, h4, a[href*='/jobs/']").First().Text())
			if title == "" || !isSeniorProductTitle(title) {
				return
			}

			href, _ := card.Find("a[href*='/jobs/']").First().Attr("href")
			if strings.HasPrefix(href, "/") {
				href = "https://wellfound.com" + href
			}

			postings = append(postings, entities.Posting{
				Title:    title,
				Company:  textOrDefault(card, "a.company-name, h2, a[href*='/company/']", "Unknown"),
				URL:      href,
				Source:   w.Name(),
				Location: textOrDefault(card, "span.location, div.text-neutral-400", ""),
			})
		})

	return postings, nil
}

func isSeniorProductTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range wellfoundTitleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
