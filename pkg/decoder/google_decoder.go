package decoder

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gary-picks-engine/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"
)

// GoogleDecoder resolves Google News RSS redirect links to the underlying
// article URL. Results are cached since feeds repeat links across polls.
type GoogleDecoder struct {
	client *http.Client
	log    *logger.Logger
	cache  *cache.Cache
}

// NewGoogleDecoder creates a new GoogleDecoder.
func NewGoogleDecoder(log *logger.Logger) *GoogleDecoder {
	return &GoogleDecoder{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
		cache:  cache.New(30*time.Minute, time.Hour),
	}
}

// Decode returns the canonical article URL behind a news.google.com link.
// Non-Google links are returned unchanged.
func (d *GoogleDecoder) Decode(ctx context.Context, sourceURL string) (string, error) {
	if !strings.Contains(sourceURL, "news.google.com") {
		return sourceURL, nil
	}

	if cached, found := d.cache.Get(sourceURL); found {
		return cached.(string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch redirect page: %w", err)
	}
	defer resp.Body.Close()

	// Google often answers the interstitial with a plain redirect.
	if finalURL := resp.Request.URL.String(); !strings.Contains(finalURL, "news.google.com") {
		d.cache.Set(sourceURL, finalURL, cache.DefaultExpiration)
		return finalURL, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse redirect page: %w", err)
	}

	target := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if ok && strings.HasPrefix(href, "http") && !strings.Contains(href, "google.com") {
			target = href
			return false
		}
		return true
	})

	if target == "" {
		return "", fmt.Errorf("no outbound link found on redirect page")
	}

	d.cache.Set(sourceURL, target, cache.DefaultExpiration)
	return target, nil
}
