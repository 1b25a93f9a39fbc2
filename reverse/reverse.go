// Package reverse sweeps PTR records across an expanded address range.
package reverse

import (
	"context"
	"net"

	"github.com/dnsweep/dnsweep/progress"
	"github.com/dnsweep/dnsweep/record"
)

// Addresses between operator progress lines. Feedback only, nothing
// depends on it.
const progressInterval = 100

type PTRResolver interface {
	LookupPTR(ctx context.Context, ip string) ([]record.Record, error)
}

type Sweeper struct {
	resolver PTRResolver
	reporter progress.Reporter
}

func New(resolver PTRResolver, reporter progress.Reporter) *Sweeper {
	if reporter == nil {
		reporter = progress.Discard
	}
	return &Sweeper{
		resolver: resolver,
		reporter: reporter,
	}
}

// Sweep issues one PTR lookup per address. Lookups fail independently;
// most addresses in a range have no PTR and that is not an error worth
// more than a verbose line.
func (s *Sweeper) Sweep(ctx context.Context, ips []net.IP) []record.Record {
	var results []record.Record
	resolved := 0

	for i, ip := range ips {
		if i%progressInterval == 0 {
			s.reporter.Update("processed %d/%d addresses, found %d PTR records", i, len(ips), resolved)
		}

		records, err := s.resolver.LookupPTR(ctx, ip.String())
		if err != nil {
			s.reporter.Update("no PTR record for %s: %v", ip, err)
			continue
		}
		resolved += len(records)
		results = append(results, records...)
	}

	s.reporter.Update("completed reverse sweep of %d addresses, found %d PTR records", len(ips), resolved)
	return results
}
