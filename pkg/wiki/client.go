// Package wiki retrieves article summaries from the Wikimedia APIs: the
// featured-content feed for today's featured article and the legacy REST
// endpoint for a random summary. It resolves everything the card composer
// needs — strings, thumbnail image, article URL — before composition starts.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"time"
)

// Article is the resolved content for one summary card.
type Article struct {
	Title        string
	Description  string
	Extract      string
	ThumbnailURL string // empty when the article has no thumbnail
	URL          string // desktop page URL; target of the card's QR code
}

// Client talks to the Wikimedia feed and Wikipedia REST APIs.
type Client struct {
	http      *http.Client
	userAgent string
	feedBase  string
	restBase  string // format string taking the language code
}

// NewClient builds a client identifying itself with the given contact email,
// as the Wikimedia API etiquette requires.
func NewClient(email string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		userAgent: fmt.Sprintf("inkcard (%s)", email),
		feedBase:  "https://api.wikimedia.org/feed/v1/wikipedia",
		restBase:  "https://%s.wikipedia.org/api/rest_v1",
	}
}

type pageSummary struct {
	Titles struct {
		Display string `json:"display"`
	} `json:"titles"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

type featuredResponse struct {
	TFA *pageSummary `json:"tfa"`
}

// Featured returns today's featured article for the language edition. An
// empty date defaults to today; otherwise it must be in "2006/01/02" form.
func (c *Client) Featured(ctx context.Context, lang, date string) (Article, error) {
	if date == "" {
		date = time.Now().Format("2006/01/02")
	}

	var resp featuredResponse
	url := fmt.Sprintf("%s/%s/featured/%s", c.feedBase, lang, date)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return Article{}, err
	}
	if resp.TFA == nil {
		return Article{}, fmt.Errorf("no featured article for %s/%s", lang, date)
	}
	return resp.TFA.article(), nil
}

// Random returns a random article summary from the language edition.
func (c *Client) Random(ctx context.Context, lang string) (Article, error) {
	var resp pageSummary
	url := fmt.Sprintf(c.restBase, lang) + "/page/random/summary"
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return Article{}, err
	}
	return resp.article(), nil
}

// Image downloads and decodes the thumbnail at url.
func (c *Client) Image(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode thumbnail %s: %w", url, err)
	}
	return img, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}
	return nil
}

func (s *pageSummary) article() Article {
	a := Article{
		Title:       unescape(s.Titles.Display),
		Description: s.Description,
		Extract:     s.Extract,
		URL:         s.ContentURLs.Desktop.Page,
	}
	if s.Thumbnail != nil {
		a.ThumbnailURL = s.Thumbnail.Source
	}
	return a
}

var htmlTags = regexp.MustCompile(`<.*?>`)

// unescape strips markup from display titles, which the feed returns with
// HTML tags and entities embedded.
func unescape(s string) string {
	return html.UnescapeString(htmlTags.ReplaceAllString(s, ""))
}
