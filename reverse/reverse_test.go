package reverse

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsweep/dnsweep/record"
)

type stubPTRResolver struct {
	answers map[string]string
}

func (s *stubPTRResolver) LookupPTR(ctx context.Context, ip string) ([]record.Record, error) {
	target, ok := s.answers[ip]
	if !ok {
		return nil, errors.New("no PTR record")
	}
	return []record.Record{record.NewPTR(ip, target)}, nil
}

func TestSweepCollectsAnswers(t *testing.T) {
	resolver := &stubPTRResolver{answers: map[string]string{
		"192.0.2.1": "one.example.com",
		"192.0.2.3": "three.example.com",
	}}
	sweeper := New(resolver, nil)

	ips := []net.IP{
		net.ParseIP("192.0.2.1"),
		net.ParseIP("192.0.2.2"),
		net.ParseIP("192.0.2.3"),
	}
	records := sweeper.Sweep(context.Background(), ips)

	require.Len(t, records, 2)
	assert.Equal(t, "192.0.2.1", records[0].Name)
	assert.Equal(t, record.PTRData{Target: "one.example.com"}, records[0].Data)
	assert.Equal(t, "192.0.2.3", records[1].Name)
}

func TestSweepEmptyRange(t *testing.T) {
	sweeper := New(&stubPTRResolver{}, nil)
	assert.Empty(t, sweeper.Sweep(context.Background(), nil))
}
