package zonewalk

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/miekg/dns"
)

const DefaultTimeout = 10 * time.Second

// Transferrer performs a raw zone transfer against one nameserver and
// hands back the wire records.
type Transferrer interface {
	Transfer(ctx context.Context, domain, nameserver string) ([]dns.RR, error)
}

// AXFR is the TCP zone-transfer client.
type AXFR struct {
	Port    uint16
	Timeout time.Duration
}

func NewAXFR(port uint16) *AXFR {
	if port == 0 {
		port = 53
	}
	return &AXFR{Port: port, Timeout: DefaultTimeout}
}

func (a *AXFR) Transfer(ctx context.Context, domain, nameserver string) ([]dns.RR, error) {
	transfer := &dns.Transfer{
		DialTimeout:  a.Timeout,
		ReadTimeout:  a.Timeout,
		WriteTimeout: a.Timeout,
	}

	m := new(dns.Msg)
	m.SetAxfr(dns.Fqdn(domain))

	addr := net.JoinHostPort(nameserver, strconv.Itoa(int(a.Port)))
	envelopes, err := transfer.In(m, addr)
	if err != nil {
		return nil, fmt.Errorf("AXFR against %s: %w", addr, err)
	}

	var rrs []dns.RR
	for envelope := range envelopes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if envelope.Error != nil {
			return nil, fmt.Errorf("AXFR against %s: %w", addr, envelope.Error)
		}
		rrs = append(rrs, envelope.RR...)
	}
	return rrs, nil
}
