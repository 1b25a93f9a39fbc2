// Package passive discovers candidate subdomain names from third-party
// sources without touching the target's own infrastructure: the crt.sh
// certificate-transparency log and two search engines. Candidates are
// bare names; resolution is the caller's job.
package passive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Source discovers candidate names for a domain. Implementations fail
// with an error on transport or parse trouble; a reachable source that
// simply knows nothing returns an empty list.
type Source interface {
	Name() string
	Discover(ctx context.Context, domain string) ([]string, error)
}

// Pause between paginated sub-requests within one Discover call. This
// is request pacing toward the source, independent of the retry backoff
// that wraps whole Discover calls.
const pageInterval = time.Second

// ExtractHost pulls a subdomain of domain out of a URL. The suffix must
// be preceded by a dot, so "notexample.com" never matches "example.com"
// and the bare domain itself is not a candidate.
func ExtractHost(rawURL, domain string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return ""
	}
	if strings.HasSuffix(host, "."+strings.ToLower(domain)) {
		return host
	}
	return ""
}

// fetchDocument GETs a page and parses it. Non-2xx responses are
// reported through the status code with a nil document so callers can
// skip the page without treating it as a source failure.
func fetchDocument(ctx context.Context, client *http.Client, pageURL, userAgent string) (*html.Node, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, nil
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return doc, resp.StatusCode, nil
}

// collectLinks gathers every anchor href in the document.
func collectLinks(node *html.Node) []string {
	var links []string
	if node.Type == html.ElementNode && node.Data == "a" {
		for _, attr := range node.Attr {
			if attr.Key == "href" {
				links = append(links, attr.Val)
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		links = append(links, collectLinks(child)...)
	}
	return links
}

// collectText gathers every non-empty text node in the document.
func collectText(node *html.Node) []string {
	var texts []string
	if node.Type == html.TextNode {
		if t := strings.TrimSpace(node.Data); t != "" {
			texts = append(texts, t)
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		texts = append(texts, collectText(child)...)
	}
	return texts
}

// unique sorts and de-duplicates candidates before a source returns them.
func unique(names []string) []string {
	if len(names) == 0 {
		return names
	}
	sort.Strings(names)
	out := names[:1]
	for _, n := range names[1:] {
		if n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return out
}
