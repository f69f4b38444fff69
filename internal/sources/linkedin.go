package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"prospector-engine/internal/entities"
)

var linkedInQueries = []string{
	`site:linkedin.com/jobs "chief product officer"`,
	`site:linkedin.com/jobs "CPTO"`,
	`site:linkedin.com/jobs "VP of Product"`,
	`site:linkedin.com/jobs "Head of Product"`,
}

var (
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:at|@)\s+(.+?)(?:\s*[-|]|$)`),
		regexp.MustCompile(`(?i)[-|]\s*(.+?)\s*[-|]\s*LinkedIn`),
	}
	linkedInSuffix = regexp.MustCompile(`(?i)\s*[-|].*LinkedIn.*$`)
	trailingDash   = regexp.MustCompile(`\s*[-|]\s*$`)
)

// LinkedIn finds postings through search results: SerpAPI when a key is
// configured, plain Google dorking otherwise.
type LinkedIn struct {
	client     *Client
	serpAPIKey string
}

func NewLinkedIn(client *Client, serpAPIKey string) *LinkedIn {
	return &LinkedIn{client: client, serpAPIKey: serpAPIKey}
}

func (l *LinkedIn) Name() string {
	return "linkedin"
}

func (l *LinkedIn) Fetch(ctx context.Context) ([]entities.Posting, error) {

	var postings []entities.Posting

	for _, query := range linkedInQueries {
		var batch []entities.Posting
		var err error

		if l.serpAPIKey != "" {
			batch, err = l.searchSerpAPI(ctx, query)
		} else {
			batch, err = l.searchGoogle(ctx, query)
		}
		if err != nil {
			log.Errorf("[linkedin] search failed for %q: %v", query, err)
			continue
		}
		postings = append(postings, batch...)
	}

	return postings, nil
}

func (l *LinkedIn) searchSerpAPI(ctx context.Context, query string) ([]entities.Posting, error) {

	params := url.Values{}
	params.Add("q", query)
	params.Add("api_key", l.serpAPIKey)
	params.Add("num", "20")

	body, err := l.client.Get(ctx, "https://serpapi.com/search.json?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	var postings []entities.Posting
	for _, result := range response.OrganicResults {
		if !strings.Contains(result.Link, "linkedin.com/jobs") {
			continue
		}
		postings = append(postings, entities.Posting{
			Title:       cleanTitle(result.Title),
			Company:     extractCompany(result.Title),
			URL:         result.Link,
			Source:      l.Name(),
			Description: result.Snippet,
		})
	}
	return postings, nil
}

func (l *LinkedIn) searchGoogle(ctx context.Context, query string) ([]entities.Posting, error) {

	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query) + "&num=20"
	body, err := l.client.Get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing search results: %v", err)
	}

	var postings []entities.Posting
	doc.Find("div.g").Each(func(_ int, result *goquery.Selection) {

		link, _ := result.Find("a[href]").First().Attr("href")
		if !strings.Contains(link, "linkedin.com/jobs") {
			return
		}

		title := strings.TrimSpace(result.Find("h3").First().Text())
		if title == "" {
			return
		}

		snippet := strings.TrimSpace(result.Find("div.VwiC3b").First().Text())
		if snippet == "" {
			snippet = strings.TrimSpace(result.Find("span.st").First().Text())
		}

		postings = append(postings, entities.Posting{
			Title:       cleanTitle(title),
			Company:     extractCompany(title),
			URL:         link,
			Source:      l.Name(),
			Description: snippet,
		})
	})

	return postings, nil
}

// extractCompany pulls the company from "Role at Company - LinkedIn" shaped
// search result titles.
func extractCompany(title string) string {
	for _, pattern := range companyPatterns {
		if match := pattern.FindStringSubmatch(title); match != nil {
			company := strings.TrimSpace(match[1])
			company = linkedInSuffix.ReplaceAllString(company, "")
			return company
		}
	}
	return "Unknown"
}

func cleanTitle(title string) string {
	title = linkedInSuffix.ReplaceAllString(title, "")
	title = trailingDash.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
