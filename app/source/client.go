package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/madisonhq/press-dossier/app/dossier"
)

var _ dossier.ArticleSource = (*Client)(nil)

// Client adapts the journalist search provider to the aggregator's needs.
// Every transport, quota, or decoding failure is normalized to
// dossier.ErrSourceUnavailable; nothing provider-specific escapes.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// AuthorArticles looks the reporter up by name and fetches their most recent
// bylines, bounded by limit. An unknown journalist is a valid empty result,
// not an error.
func (c *Client) AuthorArticles(ctx context.Context, reporterName string, limit int) (dossier.AuthorSearchResult, error) {
	journalist, err := c.searchJournalist(ctx, reporterName)
	if err != nil {
		return dossier.AuthorSearchResult{}, err
	}
	if journalist == nil {
		slog.Debug("No journalist record found", "reporter", reporterName)
		return dossier.AuthorSearchResult{}, nil
	}

	result := dossier.AuthorSearchResult{
		SocialLinks: socialLinks(journalist),
	}

	raw, err := c.fetchArticles(ctx, journalist.ID, limit)
	if err != nil {
		return dossier.AuthorSearchResult{}, err
	}

	// Providers occasionally return the same piece twice (syndication, index
	// lag); dedupe by URL and normalized headline so history counts stay honest.
	seenURL := make(map[string]bool)
	seenHeadline := make(map[string]bool)
	for _, item := range raw {
		article, ok := parseArticle(item)
		if !ok {
			continue
		}
		headlineKey := strings.ToLower(strings.TrimSpace(article.Headline))
		if seenURL[article.URL] || seenHeadline[headlineKey] {
			continue
		}
		seenURL[article.URL] = true
		seenHeadline[headlineKey] = true
		result.Articles = append(result.Articles, article)
	}

	// Provider sorts by date already; re-sort defensively but keep provider
	// order within equal dates.
	sort.SliceStable(result.Articles, func(i, j int) bool {
		return result.Articles[i].PublishedAt.After(result.Articles[j].PublishedAt)
	})

	return result, nil
}

// TopicReporters returns journalists covering a topic, for the beat lookup
// mode. Results are a passthrough of what the provider knows.
func (c *Client) TopicReporters(ctx context.Context, topic string, limit int) ([]TopicMatch, error) {
	params := url.Values{}
	params.Set("topic", topic)
	params.Set("size", strconv.Itoa(limit))

	var resp journalistSearchResponse
	if err := c.get(ctx, "/journalists", params, &resp); err != nil {
		return nil, err
	}

	matches := make([]TopicMatch, 0, len(resp.Results))
	for _, j := range resp.Results {
		if j.Name == "" {
			continue
		}
		match := TopicMatch{
			Name:          j.Name,
			Title:         j.Title,
			TwitterHandle: j.TwitterHandle,
			LinkedInURL:   j.LinkedinURL,
			ArticleCount:  j.MonthlyPosts,
		}
		for _, s := range j.TopSources {
			if s.Name != "" {
				match.Outlets = append(match.Outlets, CleanOutletName(s.Name))
			}
		}
		matches = append(matches, match)
	}

	return matches, nil
}

func (c *Client) searchJournalist(ctx context.Context, name string) (*journalistRecord, error) {
	params := url.Values{}
	params.Set("name", name)

	var resp journalistSearchResponse
	if err := c.get(ctx, "/journalists", params, &resp); err != nil {
		return nil, err
	}

	for i := range resp.Results {
		if resp.Results[i].ID != "" {
			return &resp.Results[i], nil
		}
	}
	return nil, nil
}

func (c *Client) fetchArticles(ctx context.Context, journalistID string, limit int) ([]articleRecord, error) {
	params := url.Values{}
	params.Set("journalistId", journalistID)
	params.Set("sortBy", "date")
	params.Set("size", strconv.Itoa(limit))
	params.Set("language", "en")

	var resp articlesResponse
	if err := c.get(ctx, "/all", params, &resp); err != nil {
		return nil, err
	}

	return resp.Articles, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return unavailable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return unavailable(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return unavailable(fmt.Errorf("rate limited"))
	}
	if resp.StatusCode != http.StatusOK {
		return unavailable(fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return unavailable(fmt.Errorf("malformed response: %w", err))
	}

	return nil
}

func unavailable(cause error) error {
	return fmt.Errorf("%w: %v", dossier.ErrSourceUnavailable, cause)
}

func socialLinks(j *journalistRecord) *dossier.SocialLinks {
	if j.TwitterHandle == "" && j.LinkedinURL == "" && j.WebsiteURL == "" && j.Title == "" {
		return nil
	}
	links := &dossier.SocialLinks{
		TwitterHandle: j.TwitterHandle,
		LinkedInURL:   j.LinkedinURL,
		WebsiteURL:    j.WebsiteURL,
		Title:         j.Title,
	}
	if j.TwitterHandle != "" {
		links.TwitterURL = "https://twitter.com/" + j.TwitterHandle
	}
	return links
}

// parseArticle normalizes one provider record. Articles without a URL, a
// headline, or a parseable publish date are dropped here so the aggregator
// never sees a null date.
func parseArticle(item articleRecord) (dossier.Article, bool) {
	if item.URL == "" || item.Title == "" {
		return dossier.Article{}, false
	}
	u, err := url.Parse(item.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return dossier.Article{}, false
	}

	publishedAt, ok := parseDate(item.PubDate)
	if !ok {
		return dossier.Article{}, false
	}

	article := dossier.Article{
		Headline:    item.Title,
		Outlet:      CleanOutletName(item.Source.Domain),
		PublishedAt: publishedAt,
		URL:         item.URL,
	}

	if len(item.Topics) > 0 {
		article.Beat = item.Topics[0].Name
	}

	return article, true
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
