package passive

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/dnsweep/dnsweep/progress"
)

const (
	bingUserAgent = "Mozilla/5.0 (compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm)"
	bingPages     = 15
)

// Bing walks paginated search results for domain: queries and mines the
// result links for subdomains.
type Bing struct {
	client   *http.Client
	limiter  *rate.Limiter
	reporter progress.Reporter
}

func NewBing(client *http.Client, reporter progress.Reporter) *Bing {
	if reporter == nil {
		reporter = progress.Discard
	}
	return &Bing{
		client:   client,
		limiter:  rate.NewLimiter(rate.Every(pageInterval), 1),
		reporter: reporter,
	}
}

func (s *Bing) Name() string { return "Bing" }

func (s *Bing) Discover(ctx context.Context, domain string) ([]string, error) {
	var names []string

	for page := 0; page < bingPages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		pageURL := fmt.Sprintf(
			"https://www.bing.com/search?q=domain%%3A%s&qs=n&first=%d",
			url.QueryEscape(domain), page*10+1,
		)
		doc, status, err := fetchDocument(ctx, s.client, pageURL, bingUserAgent)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			// One bad page is not a failed source.
			s.reporter.Error("Bing returned status %d: %s", status, pageURL)
			continue
		}

		for _, href := range collectLinks(doc) {
			if host := ExtractHost(href, domain); host != "" {
				names = append(names, host)
			}
		}
	}

	return unique(names), nil
}
