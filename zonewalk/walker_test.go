package zonewalk

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsweep/dnsweep/progress"
	"github.com/dnsweep/dnsweep/record"
)

type stubNSResolver struct {
	records []record.Record
	err     error
}

func (s *stubNSResolver) LookupNS(ctx context.Context, domain string) ([]record.Record, error) {
	return s.records, s.err
}

type stubTransferrer struct {
	zones map[string][]dns.RR
	calls []string
}

func (s *stubTransferrer) Transfer(ctx context.Context, domain, nameserver string) ([]dns.RR, error) {
	s.calls = append(s.calls, nameserver)
	rrs, ok := s.zones[nameserver]
	if !ok {
		return nil, errors.New("transfer refused")
	}
	return rrs, nil
}

func TestWalkNSLookupFailureIsFatal(t *testing.T) {
	walker := New(&stubNSResolver{err: errors.New("SERVFAIL")}, &stubTransferrer{}, nil)

	_, err := walker.Walk(context.Background(), "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example.com")
}

func TestWalkToleratesRefusingNameservers(t *testing.T) {
	ns := &stubNSResolver{records: []record.Record{
		record.NewNS("example.com", "ns1.example.com"),
		record.NewNS("example.com", "ns2.example.com"),
	}}
	xfr := &stubTransferrer{zones: map[string][]dns.RR{
		// ns1 refuses, ns2 answers.
		"ns2.example.com": {
			&dns.A{
				Hdr: dns.RR_Header{Name: "www.example.com.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 300},
				A:   net.ParseIP("192.0.2.1"),
			},
		},
	}}
	recorder := &progress.Recorder{}
	walker := New(ns, xfr, recorder)

	records, err := walker.Walk(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"ns1.example.com", "ns2.example.com"}, xfr.calls)
	require.Len(t, records, 3, "two NS records plus the transferred A record")
	assert.Equal(t, record.NS, records[0].Kind)
	assert.Equal(t, record.NS, records[1].Kind)
	assert.Equal(t, record.A, records[2].Kind)
	assert.Equal(t, "www.example.com", records[2].Name)
	assert.NotEmpty(t, recorder.Errors, "refused transfer is reported")
}

func TestWalkAllTransfersRefused(t *testing.T) {
	ns := &stubNSResolver{records: []record.Record{
		record.NewNS("example.com", "ns1.example.com"),
	}}
	walker := New(ns, &stubTransferrer{}, nil)

	records, err := walker.Walk(context.Background(), "example.com")
	require.NoError(t, err, "refused transfers are not a technique failure")
	require.Len(t, records, 1)
	assert.Equal(t, record.NS, records[0].Kind)
}
