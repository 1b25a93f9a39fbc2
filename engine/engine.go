// Package engine dispatches enumeration techniques, merges what the
// orchestrators find and deduplicates the final record set.
package engine

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/dnsweep/dnsweep/brute"
	"github.com/dnsweep/dnsweep/netrange"
	"github.com/dnsweep/dnsweep/passive"
	"github.com/dnsweep/dnsweep/progress"
	"github.com/dnsweep/dnsweep/record"
	"github.com/dnsweep/dnsweep/target"
)

// Retry budget for each passive source before it is written off.
const sourceRetries = 3

// Resolver is the slice of the resolver capability the engine drives
// directly. Orchestrators hold their own, narrower views.
type Resolver interface {
	LookupIP(ctx context.Context, host string) []record.Record
	LookupMX(ctx context.Context, domain string) ([]record.Record, error)
	LookupNS(ctx context.Context, domain string) ([]record.Record, error)
	LookupSOA(ctx context.Context, domain string) ([]record.Record, error)
	LookupTXT(ctx context.Context, domain string) ([]record.Record, error)
	LookupCAA(ctx context.Context, domain string) ([]record.Record, error)
}

type ZoneWalker interface {
	Walk(ctx context.Context, domain string) ([]record.Record, error)
}

type RangeSweeper interface {
	Sweep(ctx context.Context, ips []net.IP) []record.Record
}

type BruteForcer interface {
	Run(ctx context.Context, domain string, words []string) []record.Record
}

type Config struct {
	Resolver Resolver
	Sources  []passive.Source
	Walker   ZoneWalker
	Sweeper  RangeSweeper
	Forcer   BruteForcer

	// WordlistPath may be empty; brute forcing then falls back to the
	// bundled default list.
	WordlistPath string
	Progress     progress.Reporter
}

type Engine struct {
	resolver     Resolver
	sources      []passive.Source
	walker       ZoneWalker
	sweeper      RangeSweeper
	forcer       BruteForcer
	wordlistPath string
	reporter     progress.Reporter
}

func New(cfg Config) *Engine {
	if cfg.Progress == nil {
		cfg.Progress = progress.Discard
	}
	return &Engine{
		resolver:     cfg.Resolver,
		sources:      cfg.Sources,
		walker:       cfg.Walker,
		sweeper:      cfg.Sweeper,
		forcer:       cfg.Forcer,
		wordlistPath: cfg.WordlistPath,
		reporter:     cfg.Progress,
	}
}

// Run validates the target, executes the selected technique and
// returns the deduplicated record set. Errors after validation only
// come from load-bearing steps (wordlist loading, NS discovery before
// a zone walk, range expansion); everything else degrades to partial
// results plus a diagnostic.
func (e *Engine) Run(ctx context.Context, technique target.Technique, desc target.Descriptor) ([]record.Record, error) {
	if err := desc.Validate(technique); err != nil {
		return nil, err
	}

	var results []record.Record

	switch technique {
	case target.Standard:
		if desc.Domain != "" {
			domain, err := target.NormalizeDomain(desc.Domain)
			if err != nil {
				return nil, err
			}
			e.reporter.Update("performing standard enumeration for domain: %s", domain)
			results = e.standard(ctx, domain)
		}

	case target.BruteForce:
		if desc.Domain != "" {
			domain, err := target.NormalizeDomain(desc.Domain)
			if err != nil {
				return nil, err
			}
			path := brute.ResolveWordlistPath(e.wordlistPath)
			words, err := brute.LoadWordlistFile(path)
			if err != nil {
				return nil, err
			}
			e.reporter.Update("performing brute force enumeration for domain: %s with wordlist: %s", domain, path)
			results = e.forcer.Run(ctx, domain, words)
		}

	case target.ZoneWalk:
		if desc.Domain != "" {
			domain, err := target.NormalizeDomain(desc.Domain)
			if err != nil {
				return nil, err
			}
			e.reporter.Update("performing zone walk for domain: %s", domain)
			walked, err := e.walker.Walk(ctx, domain)
			if err != nil {
				return nil, err
			}
			results = walked
		}

	case target.Reverse:
		ips, err := e.expandRanges(desc)
		if err != nil {
			return nil, err
		}
		e.reporter.Update("performing reverse lookups for %d addresses", len(ips))
		results = e.sweeper.Sweep(ctx, ips)
	}

	e.reporter.Update("enumeration completed, found %d records", len(results))
	return Dedupe(results), nil
}

// standard runs the direct lookups, then every passive source, then
// resolves whatever the sources turned up. No single lookup or source
// is allowed to sink the technique.
func (e *Engine) standard(ctx context.Context, domain string) []record.Record {
	var results []record.Record

	e.reporter.Update("getting A/AAAA records")
	results = append(results, e.resolver.LookupIP(ctx, domain)...)

	type namedLookup struct {
		what string
		run  func(context.Context, string) ([]record.Record, error)
	}
	lookups := []namedLookup{
		{"MX", e.resolver.LookupMX},
		{"NS", e.resolver.LookupNS},
		{"SOA", e.resolver.LookupSOA},
	}
	for _, l := range lookups {
		e.reporter.Update("getting %s records", l.what)
		records, err := l.run(ctx, domain)
		if err != nil {
			e.reporter.Error("failed to get %s records: %v", l.what, err)
			continue
		}
		results = append(results, records...)
	}

	e.reporter.Update("getting TXT records")
	txt, err := e.resolver.LookupTXT(ctx, domain)
	if err != nil {
		e.reporter.Error("failed to get TXT records: %v", err)
	} else {
		results = append(results, txt...)
		results = append(results, record.FilterSPF(txt)...)
	}

	e.reporter.Update("getting CAA records")
	caa, err := e.resolver.LookupCAA(ctx, domain)
	if err != nil {
		e.reporter.Error("failed to get CAA records: %v", err)
	} else {
		results = append(results, caa...)
	}

	for _, src := range e.sources {
		e.reporter.Update("performing %s enumeration", src.Name())
		names, err := passive.DiscoverWithRetry(ctx, src, domain, sourceRetries, e.reporter)
		if err != nil {
			e.reporter.Error("failed to enumerate via %s: %v", src.Name(), err)
			continue
		}

		e.reporter.Update("found %d candidates from %s, resolving", len(names), src.Name())
		for _, name := range names {
			results = append(results, e.resolver.LookupIP(ctx, name)...)
		}
	}

	return results
}

func (e *Engine) expandRanges(desc target.Descriptor) ([]net.IP, error) {
	specs := []string{}
	if desc.Range != "" {
		specs = append(specs, desc.Range)
	}
	if desc.RangeFile != "" {
		f, err := os.Open(desc.RangeFile)
		if err != nil {
			return nil, fmt.Errorf("opening range file: %w", err)
		}
		fromFile, err := netrange.ReadRanges(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		specs = append(specs, fromFile...)
	}

	var ips []net.IP
	for _, spec := range specs {
		expanded, err := netrange.Expand(spec)
		if err != nil {
			return nil, err
		}
		ips = append(ips, expanded...)
	}
	return ips, nil
}
