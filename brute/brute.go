// Package brute resolves wordlist candidates against a base domain
// under a bounded concurrency budget. It is the only fan-out in the
// system wide enough to need admission control.
package brute

import (
	"context"
	"sync"

	"github.com/dnsweep/dnsweep/progress"
	"github.com/dnsweep/dnsweep/record"
)

const DefaultConcurrency = 10

// IPResolver is the one resolver operation brute forcing needs. The
// combined A+AAAA lookup never fails; a miss is an empty slice.
type IPResolver interface {
	LookupIP(ctx context.Context, host string) []record.Record
}

type Forcer struct {
	resolver    IPResolver
	concurrency int
	reporter    progress.Reporter
}

func New(resolver IPResolver, concurrency int, reporter progress.Reporter) *Forcer {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if reporter == nil {
		reporter = progress.Discard
	}
	return &Forcer{
		resolver:    resolver,
		concurrency: concurrency,
		reporter:    reporter,
	}
}

// Run resolves word+"."+domain for every word and returns the union of
// non-empty results. At most the configured number of resolutions are
// in flight at once; each candidate is independent, writes only its own
// result slot, and a miss contributes nothing. Result order follows the
// wordlist, not completion order, and is not part of the contract.
func (f *Forcer) Run(ctx context.Context, domain string, words []string) []record.Record {
	f.reporter.Update("brute forcing %d candidates against %s (concurrency %d)", len(words), domain, f.concurrency)

	var wg sync.WaitGroup
	gate := make(chan struct{}, f.concurrency)
	results := make([][]record.Record, len(words))

	wg.Add(len(words))
	for idx, word := range words {
		go func(idx int, word string) {
			defer wg.Done()

			gate <- struct{}{}
			defer func() { <-gate }()

			results[idx] = f.resolver.LookupIP(ctx, word+"."+domain)
		}(idx, word)
	}
	wg.Wait()

	var found []record.Record
	for _, recs := range results {
		found = append(found, recs...)
	}
	f.reporter.Update("brute force found %d records", len(found))
	return found
}
