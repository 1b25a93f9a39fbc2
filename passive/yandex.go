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
	yandexUserAgent = "Mozilla/5.0 (compatible; YandexBot/3.0; +http://yandex.com/bots)"
	yandexPages     = 10
)

// Yandex mines site: search results, which often index hosts the other
// engines miss.
type Yandex struct {
	client   *http.Client
	limiter  *rate.Limiter
	reporter progress.Reporter
}

func NewYandex(client *http.Client, reporter progress.Reporter) *Yandex {
	if reporter == nil {
		reporter = progress.Discard
	}
	return &Yandex{
		client:   client,
		limiter:  rate.NewLimiter(rate.Every(pageInterval), 1),
		reporter: reporter,
	}
}

func (s *Yandex) Name() string { return "Yandex" }

func (s *Yandex) Discover(ctx context.Context, domain string) ([]string, error) {
	var names []string

	for page := 0; page < yandexPages; page++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		pageURL := fmt.Sprintf(
			"https://yandex.com/search/?text=site:%s&p=%d",
			url.QueryEscape(domain), page,
		)
		doc, status, err := fetchDocument(ctx, s.client, pageURL, yandexUserAgent)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			s.reporter.Error("Yandex returned status %d: %s", status, pageURL)
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
