// Package scraper fetches web pages directly and converts them to Markdown,
// producing the same record shape as the remote web scrape endpoint.
package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	ierrors "github.com/cnosuke/mcp-supadata/internal/errors"
	"github.com/cnosuke/mcp-supadata/supadata"
	"github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

type Config struct {
	Timeout   int // seconds
	UserAgent string
	MaxLength int // characters, 0 = unlimited
}

// Scraper serves GET /web/scrape locally. It implements supadata.Transport.
type Scraper struct {
	client    *http.Client
	userAgent string
	maxLength int
}

// New creates a new Scraper.
func New(cfg *Config) *Scraper {
	zap.S().Infow("creating local scraper",
		"timeout", cfg.Timeout,
		"user_agent", cfg.UserAgent,
		"max_length", cfg.MaxLength)

	return &Scraper{
		client:    &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		userAgent: cfg.UserAgent,
		maxLength: cfg.MaxLength,
	}
}

type page struct {
	url         string
	status      int
	body        string
	contentType string
}

// Get scrapes the "url" query parameter. path is ignored; route only
// /web/scrape here.
func (s *Scraper) Get(ctx context.Context, path string, q supadata.Query) (any, error) {
	target, _ := q["url"].(string)
	if target == "" {
		return nil, &ierrors.ValidationError{Input: target, Cause: "URL is required"}
	}
	return s.Scrape(ctx, target)
}

// Scrape fetches urlStr and returns {url, content, name, description, countCharacters}.
func (s *Scraper) Scrape(ctx context.Context, urlStr string) (map[string]any, error) {
	zap.S().Debugw("scraping URL", "url", urlStr, "max_length", s.maxLength)

	p, err := s.fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	if p.status < 200 || p.status >= 300 {
		return nil, &ierrors.RemoteError{Status: p.status, Message: "failed to fetch " + urlStr}
	}

	var content, name, description string
	if strings.Contains(p.contentType, "text/html") {
		content, name, description = processHTMLContent(p.body, p.url)
	} else {
		content = p.body
		zap.S().Debugw("non-HTML content", "url", urlStr, "content_type", p.contentType)
	}

	trimmed := trimContent(content, s.maxLength)
	if len(trimmed) != len(content) {
		zap.S().Debugw("content trimmed",
			"url", urlStr,
			"original_length", utf8.RuneCountInString(content),
			"max_length", s.maxLength)
	}

	return map[string]any{
		"url":             p.url,
		"content":         trimmed,
		"name":            name,
		"description":     description,
		"countCharacters": float64(utf8.RuneCountInString(trimmed)),
	}, nil
}

func (s *Scraper) fetch(ctx context.Context, urlStr string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &ierrors.ValidationError{Input: urlStr, Cause: "invalid URL: " + err.Error()}
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ierrors.RemoteError{Message: "failed to execute request: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ierrors.RemoteError{Status: resp.StatusCode, Message: "failed to read response body: " + err.Error()}
	}

	zap.S().Debugw("response received",
		"url", urlStr,
		"status", resp.StatusCode,
		"bytes", len(body),
		"content_type", resp.Header.Get("Content-Type"))

	return &page{
		url:         resp.Request.URL.String(),
		status:      resp.StatusCode,
		body:        string(body),
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}

// processHTMLContent extracts the main content with readability and converts
// it to Markdown. It falls back to converting the whole page, then to the raw body.
func processHTMLContent(body, urlStr string) (content, title, excerpt string) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		parsedURL = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(body), parsedURL)
	if err != nil {
		zap.S().Warnw("readability extraction failed, falling back to basic conversion", "url", urlStr, "error", err)
		markdown, err := convertHTMLToMarkdown(body)
		if err != nil {
			zap.S().Warnw("fallback HTML conversion also failed", "url", urlStr, "error", err)
			return body, "", ""
		}
		return markdown, "", ""
	}

	markdown, err := convertHTMLToMarkdown(article.Content)
	if err != nil {
		zap.S().Warnw("failed to convert extracted content to Markdown", "url", urlStr, "error", err)
		markdown = article.TextContent
	}
	if article.Title != "" {
		markdown = "# " + article.Title + "\n\n" + markdown
	}

	zap.S().Debugw("processed HTML content",
		"url", urlStr,
		"title", article.Title,
		"length", len(markdown))

	return markdown, article.Title, article.Excerpt
}

func convertHTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	return converter.ConvertString(html)
}

// trimContent cuts content to at most maxLength characters. maxLength <= 0 keeps everything.
func trimContent(content string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(content) <= maxLength {
		return content
	}
	return string([]rune(content)[:maxLength])
}
