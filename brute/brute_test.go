package brute

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsweep/dnsweep/record"
)

// countingResolver answers for hosts listed in answers and tracks the
// peak number of concurrent lookups.
type countingResolver struct {
	answers map[string]net.IP

	mu      sync.Mutex
	current int
	peak    int
}

func (r *countingResolver) LookupIP(ctx context.Context, host string) []record.Record {
	r.mu.Lock()
	r.current++
	if r.current > r.peak {
		r.peak = r.current
	}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.current--
		r.mu.Unlock()
	}()

	ip, ok := r.answers[host]
	if !ok {
		return nil
	}
	return []record.Record{record.NewA(host, ip)}
}

func TestRunCollectsHits(t *testing.T) {
	resolver := &countingResolver{answers: map[string]net.IP{
		"www.example.com":  net.ParseIP("192.0.2.1"),
		"mail.example.com": net.ParseIP("192.0.2.2"),
	}}
	forcer := New(resolver, 4, nil)

	records := forcer.Run(context.Background(), "example.com", []string{"www", "mail", "nothere", "ftp"})
	require.Len(t, records, 2)

	names := []string{records[0].Name, records[1].Name}
	assert.Contains(t, names, "www.example.com")
	assert.Contains(t, names, "mail.example.com")
}

func TestRunHonorsConcurrencyLimit(t *testing.T) {
	resolver := &countingResolver{answers: map[string]net.IP{}}
	forcer := New(resolver, 3, nil)

	words := make([]string, 50)
	for i := range words {
		words[i] = fmt.Sprintf("host%d", i)
	}

	forcer.Run(context.Background(), "example.com", words)
	assert.LessOrEqual(t, resolver.peak, 3)
	assert.Positive(t, resolver.peak)
}

func TestRunEmptyWordlist(t *testing.T) {
	forcer := New(&countingResolver{}, 2, nil)
	assert.Empty(t, forcer.Run(context.Background(), "example.com", nil))
}

func TestNewDefaultsConcurrency(t *testing.T) {
	forcer := New(&countingResolver{}, 0, nil)
	assert.Equal(t, DefaultConcurrency, forcer.concurrency)
}

func TestLoadWordlist(t *testing.T) {
	input := strings.NewReader("www\n\n# comment\nmail \nftp\n")
	words, err := LoadWordlist(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"www", "mail", "ftp"}, words)
}
