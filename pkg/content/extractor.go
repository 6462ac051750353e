// Package content turns fetched article HTML into plain text and flags
// content the reader cannot actually access.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxTextLen caps extracted text, in characters
const MaxTextLen = 200_000

// article-scoped extraction below this many characters falls back to the
// whole document, guarding against <article> wrapping only a teaser
const articleMinLen = 600

// Extractor fetches article pages and extracts readable text
type Extractor struct {
	client    *http.Client
	userAgent string
}

// NewExtractor creates an extractor with a bounded per-request timeout
func NewExtractor(timeout time.Duration, userAgent string) *Extractor {
	return &Extractor{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// FetchPage retrieves an article page. It returns the body and HTTP status;
// non-2xx/3xx statuses are not an error here since the status feeds the
// paywall determination.
func (e *Extractor) FetchPage(ctx context.Context, pageURL string) (body string, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024)) // 4MB is plenty for an article page
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body from %s: %w", pageURL, err)
	}

	return string(data), resp.StatusCode, nil
}

// ExtractText converts article HTML to plain text, see the package-level
// ExtractText
func (e *Extractor) ExtractText(htmlStr string) string {
	return ExtractText(htmlStr)
}

// ExtractText converts article HTML to plain text. Script, style and
// noscript blocks are removed first; when an <article> element is present
// extraction scopes to it, falling back to the full document if the scoped
// result looks like a teaser. Whitespace runs collapse to single spaces and
// the result is capped at MaxTextLen characters.
func ExtractText(htmlStr string) string {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	text := ""
	if article := doc.Find("article").First(); article.Length() > 0 {
		text = collapseWhitespace(article.Text())
	}

	if utf8.RuneCountInString(text) < articleMinLen {
		full := collapseWhitespace(doc.Text())
		if utf8.RuneCountInString(full) > utf8.RuneCountInString(text) {
			text = full
		}
	}

	return truncate(text, MaxTextLen)
}

// collapseWhitespace reduces every whitespace run to a single space and trims
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts a string to at most n characters, not bytes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
