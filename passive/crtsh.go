package passive

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dnsweep/dnsweep/progress"
)

const crtshUserAgent = "Mozilla/5.0 (compatible; dnsweep/0.1; +https://github.com/dnsweep/dnsweep)"

// CrtSh queries the crt.sh certificate-transparency log. Certificates
// issued for any host under the target domain betray subdomains that
// never appear in search indexes.
type CrtSh struct {
	client   *http.Client
	reporter progress.Reporter
}

func NewCrtSh(client *http.Client, reporter progress.Reporter) *CrtSh {
	if reporter == nil {
		reporter = progress.Discard
	}
	return &CrtSh{client: client, reporter: reporter}
}

func (s *CrtSh) Name() string { return "crt.sh" }

func (s *CrtSh) Discover(ctx context.Context, domain string) ([]string, error) {
	pageURL := fmt.Sprintf("https://crt.sh/?q=%%25.%s", domain)

	doc, status, err := fetchDocument(ctx, s.client, pageURL, crtshUserAgent)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		// A bad page is skipped, not a failed source.
		s.reporter.Error("crt.sh returned status %d: %s", status, pageURL)
		return nil, nil
	}

	suffix := "." + strings.ToLower(domain)
	var names []string
	for _, text := range collectText(doc) {
		// Certificate identity cells can hold several names.
		for _, candidate := range strings.Fields(text) {
			candidate = strings.ToLower(strings.TrimSuffix(candidate, "."))
			if strings.HasPrefix(candidate, "*.") {
				continue
			}
			if strings.HasSuffix(candidate, suffix) {
				names = append(names, candidate)
			}
		}
	}

	return unique(names), nil
}
