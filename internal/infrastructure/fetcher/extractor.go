package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsReporter/internal/ports"
)

// maxExtractedChars bounds how much page text is handed to the summarizer.
const maxExtractedChars = 8000

// Extractor downloads article pages and pulls their readable paragraph text.
// It enriches thin discovery snippets; callers fall back to the snippet when
// extraction fails.
type Extractor struct {
	client *http.Client
}

var _ ports.PageFetcher = (*Extractor)(nil)

// NewExtractor wires an HTTP client; a nil client gets a sane default.
func NewExtractor(client *http.Client) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Extractor{client: client}
}

// FetchText downloads the page and returns its concatenated paragraph text.
func (e *Extractor) FetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsReporter/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	return extractText(doc), nil
}

// extractText walks paragraph nodes and joins their trimmed text. Script and
// style subtrees never contain <p>, so a plain selector is enough.
func extractText(doc *goquery.Document) string {
	var parts []string
	total := 0

	doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return true
		}

		parts = append(parts, text)
		total += len(text)
		return total < maxExtractedChars
	})

	joined := strings.Join(parts, "\n\n")
	if len(joined) > maxExtractedChars {
		joined = joined[:maxExtractedChars]
	}
	return joined
}
