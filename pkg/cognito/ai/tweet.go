package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

var (
	tweetURLRegex  = regexp.MustCompile(`https?://(?:twitter|x)\.com/[A-Za-z0-9_]+/status/[0-9]+`)
	tweetTextRegex = regexp.MustCompile(`<p[^>]*>([\s\S]*?)</p>`)
	htmlTagRegex   = regexp.MustCompile(`<[^>]+>`)
)

// ExtractTweetURL returns the first tweet URL found in text, or ""
func ExtractTweetURL(text string) string {
	return tweetURLRegex.FindString(text)
}

// TweetFetcher retrieves tweet text through Twitter's public oEmbed
// endpoint, which needs no credentials.
type TweetFetcher struct {
	client *http.Client
	base   string
}

// NewTweetFetcher creates a fetcher against the public oEmbed endpoint
func NewTweetFetcher() *TweetFetcher {
	return &TweetFetcher{
		client: &http.Client{Timeout: 10 * time.Second},
		base:   "https://publish.twitter.com/oembed",
	}
}

// Fetch returns the tweet's text, or an error if the tweet cannot be read.
// The oEmbed payload embeds the text in an HTML snippet's first paragraph.
func (f *TweetFetcher) Fetch(ctx context.Context, tweetURL string) (string, error) {
	reqURL := f.base + "?url=" + url.QueryEscape(tweetURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var payload struct {
		HTML string `json:"html"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	match := tweetTextRegex.FindStringSubmatch(payload.HTML)
	if match == nil {
		return "", fmt.Errorf("no tweet text in oembed payload")
	}
	return htmlTagRegex.ReplaceAllString(match[1], ""), nil
}
