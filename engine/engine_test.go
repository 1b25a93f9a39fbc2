package engine

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsweep/dnsweep/passive"
	"github.com/dnsweep/dnsweep/record"
	"github.com/dnsweep/dnsweep/target"
)

type stubResolver struct {
	ips map[string][]record.Record
}

func (s *stubResolver) LookupIP(ctx context.Context, host string) []record.Record {
	return s.ips[host]
}

func (s *stubResolver) LookupMX(ctx context.Context, domain string) ([]record.Record, error) {
	return []record.Record{record.NewMX(domain, 10, "mail."+domain)}, nil
}

func (s *stubResolver) LookupNS(ctx context.Context, domain string) ([]record.Record, error) {
	return []record.Record{record.NewNS(domain, "ns1."+domain)}, nil
}

func (s *stubResolver) LookupSOA(ctx context.Context, domain string) ([]record.Record, error) {
	return nil, errors.New("SERVFAIL")
}

func (s *stubResolver) LookupTXT(ctx context.Context, domain string) ([]record.Record, error) {
	return []record.Record{record.NewTXT(domain, "v=spf1 -all")}, nil
}

func (s *stubResolver) LookupCAA(ctx context.Context, domain string) ([]record.Record, error) {
	return []record.Record{}, nil
}

type staticSource struct {
	names []string
}

func (s *staticSource) Name() string { return "static" }

func (s *staticSource) Discover(ctx context.Context, domain string) ([]string, error) {
	return s.names, nil
}

type stubWalker struct {
	records []record.Record
	err     error
}

func (s *stubWalker) Walk(ctx context.Context, domain string) ([]record.Record, error) {
	return s.records, s.err
}

type stubSweeper struct {
	got []net.IP
}

func (s *stubSweeper) Sweep(ctx context.Context, ips []net.IP) []record.Record {
	s.got = ips
	var out []record.Record
	for _, ip := range ips {
		out = append(out, record.NewPTR(ip.String(), "host.example.com"))
	}
	return out
}

type stubForcer struct {
	domain string
	words  []string
}

func (s *stubForcer) Run(ctx context.Context, domain string, words []string) []record.Record {
	s.domain = domain
	s.words = words
	return []record.Record{record.NewA("www."+domain, net.ParseIP("192.0.2.5"))}
}

func TestRunStandard(t *testing.T) {
	resolver := &stubResolver{ips: map[string][]record.Record{
		"example.com":     {record.NewA("example.com", net.ParseIP("192.0.2.1"))},
		"sub.example.com": {record.NewA("sub.example.com", net.ParseIP("192.0.2.2"))},
	}}
	eng := New(Config{
		Resolver: resolver,
		Sources:  []passive.Source{&staticSource{names: []string{"sub.example.com", "gone.example.com"}}},
	})

	results, err := eng.Run(context.Background(), target.Standard, target.Descriptor{Domain: "example.com"})
	require.NoError(t, err)

	// MX/NS/SOA/TXT/SPF all share the apex name, so after dedup only
	// the first apex record and the resolved candidate remain.
	require.Len(t, results, 2)
	assert.Equal(t, "example.com", results[0].Name)
	assert.Equal(t, record.A, results[0].Kind)
	assert.Equal(t, "sub.example.com", results[1].Name)
}

func TestRunBruteForce(t *testing.T) {
	dir := t.TempDir()
	wordlist := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(wordlist, []byte("www\nmail\n"), 0o644))

	forcer := &stubForcer{}
	eng := New(Config{Forcer: forcer, WordlistPath: wordlist})

	results, err := eng.Run(context.Background(), target.BruteForce, target.Descriptor{Domain: "Example.com"})
	require.NoError(t, err)

	assert.Equal(t, "example.com", forcer.domain, "domain is normalized before use")
	assert.Equal(t, []string{"www", "mail"}, forcer.words)
	require.Len(t, results, 1)
	assert.Equal(t, "www.example.com", results[0].Name)
}

func TestRunBruteForceMissingWordlist(t *testing.T) {
	eng := New(Config{Forcer: &stubForcer{}, WordlistPath: filepath.Join(t.TempDir(), "missing.txt")})

	_, err := eng.Run(context.Background(), target.BruteForce, target.Descriptor{Domain: "example.com"})
	assert.Error(t, err)
}

func TestRunZoneWalk(t *testing.T) {
	walker := &stubWalker{records: []record.Record{record.NewNS("example.com", "ns1.example.com")}}
	eng := New(Config{Walker: walker})

	results, err := eng.Run(context.Background(), target.ZoneWalk, target.Descriptor{Domain: "example.com"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, record.NS, results[0].Kind)
}

func TestRunZoneWalkFailureIsFatal(t *testing.T) {
	eng := New(Config{Walker: &stubWalker{err: errors.New("no nameservers")}})

	_, err := eng.Run(context.Background(), target.ZoneWalk, target.Descriptor{Domain: "example.com"})
	assert.Error(t, err)
}

func TestRunReverse(t *testing.T) {
	sweeper := &stubSweeper{}
	eng := New(Config{Sweeper: sweeper})

	results, err := eng.Run(context.Background(), target.Reverse, target.Descriptor{Range: "192.0.2.0-192.0.2.1"})
	require.NoError(t, err)

	require.Len(t, sweeper.got, 2)
	assert.Equal(t, "192.0.2.0", sweeper.got[0].String())
	assert.Len(t, results, 2)
}

func TestRunReverseRangeFile(t *testing.T) {
	dir := t.TempDir()
	rangeFile := filepath.Join(dir, "ranges.txt")
	require.NoError(t, os.WriteFile(rangeFile, []byte("192.0.2.8\n# skip\n192.0.2.9\n"), 0o644))

	sweeper := &stubSweeper{}
	eng := New(Config{Sweeper: sweeper})

	_, err := eng.Run(context.Background(), target.Reverse, target.Descriptor{RangeFile: rangeFile})
	require.NoError(t, err)
	require.Len(t, sweeper.got, 2)
}

func TestRunRejectsInvalidTarget(t *testing.T) {
	eng := New(Config{})

	_, err := eng.Run(context.Background(), target.Reverse, target.Descriptor{Domain: "example.com"})
	assert.Error(t, err)

	_, err = eng.Run(context.Background(), target.Standard, target.Descriptor{})
	assert.Error(t, err)
}
