// Package resolver derives display names for bookmark URLs.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/shelf/internal/logger"
)

// FallbackName is used when no name can be derived from a URL.
const FallbackName = "Website"

// maxBodySize caps how much of a page is read when looking for its title.
const maxBodySize = 1 << 20

// Resolver produces a display name for a URL. Implementations may block.
type Resolver interface {
	ResolveName(ctx context.Context, rawURL string) (string, error)
}

// SiteName returns the first label of the URL's hostname without a
// leading "www.", e.g. https://www.example.com/x -> "example".
func SiteName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return FallbackName
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return FallbackName
	}
	return label
}

// Hostname resolves names with SiteName and never blocks.
type Hostname struct{}

func (Hostname) ResolveName(_ context.Context, rawURL string) (string, error) {
	return SiteName(rawURL), nil
}

// TitleResolver fetches the page and uses its <title>, falling back to
// SiteName when the page can't be fetched or has no title.
type TitleResolver struct {
	client *http.Client
	log    logger.Logger
}

// NewTitleResolver creates a TitleResolver with the given request timeout.
func NewTitleResolver(timeout time.Duration, log logger.Logger) *TitleResolver {
	if log == nil {
		log = logger.Nop()
	}
	return &TitleResolver{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// ResolveName only fails when ctx is done.
func (r *TitleResolver) ResolveName(ctx context.Context, rawURL string) (string, error) {
	title, err := r.fetchTitle(ctx, rawURL)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		r.log.Debug("title lookup failed", logger.String("url", rawURL), logger.Error(err))
		return SiteName(rawURL), nil
	}
	if title == "" {
		return SiteName(rawURL), nil
	}
	return title, nil
}

func (r *TitleResolver) fetchTitle(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "shelf/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	return findTitle(doc), nil
}

// findTitle returns the whitespace-collapsed text of the first <title>.
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") {
		var text strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
			}
		}
		return strings.Join(strings.Fields(text.String()), " ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
