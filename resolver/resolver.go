// Package resolver performs the typed DNS lookups every enumeration
// technique is built on. Wire handling is delegated to miekg/dns; this
// package translates answers into the record model and failures into
// the Error taxonomy.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/dnsweep/dnsweep/progress"
	"github.com/dnsweep/dnsweep/record"
)

const (
	DefaultPort    = 53
	DefaultTimeout = 5 * time.Second

	resolvConf = "/etc/resolv.conf"
)

// Queried when neither explicit nameservers nor a usable resolv.conf
// are available.
var fallbackNameservers = []string{"8.8.8.8", "1.1.1.1"}

type Config struct {
	// Nameservers is an optional list of server IPs. Empty means use
	// the system configuration.
	Nameservers []string
	TCPPort     uint16
	UDPPort     uint16
	Timeout     time.Duration
	Progress    progress.Reporter
}

type Resolver struct {
	udpServers []string
	tcpServers []string
	udp        *dns.Client
	tcp        *dns.Client
	progress   progress.Reporter
}

func New(cfg Config) (*Resolver, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.TCPPort == 0 {
		cfg.TCPPort = DefaultPort
	}
	if cfg.UDPPort == 0 {
		cfg.UDPPort = DefaultPort
	}
	if cfg.Progress == nil {
		cfg.Progress = progress.Discard
	}

	servers := cfg.Nameservers
	for _, ns := range servers {
		if net.ParseIP(strings.TrimSpace(ns)) == nil {
			return nil, newError(AddrParseError, fmt.Errorf("invalid nameserver address: %q", ns))
		}
	}
	if len(servers) == 0 {
		servers = systemNameservers()
	}

	r := &Resolver{
		udp:      &dns.Client{Timeout: cfg.Timeout},
		tcp:      &dns.Client{Net: "tcp", Timeout: cfg.Timeout},
		progress: cfg.Progress,
	}
	for _, ns := range servers {
		ns = strings.TrimSpace(ns)
		r.udpServers = append(r.udpServers, net.JoinHostPort(ns, strconv.Itoa(int(cfg.UDPPort))))
		r.tcpServers = append(r.tcpServers, net.JoinHostPort(ns, strconv.Itoa(int(cfg.TCPPort))))
	}

	return r, nil
}

func systemNameservers() []string {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil || len(conf.Servers) == 0 {
		return fallbackNameservers
	}
	return conf.Servers
}

// query sends one question to the configured servers in order and
// returns the first response. Truncated UDP answers are retried over
// TCP. NXDOMAIN comes back as a response with no answers, not as an
// error; rcode classification is left to the typed lookups.
func (r *Resolver) query(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	m.RecursionDesired = true

	var lastErr error
	for i, server := range r.udpServers {
		in, _, err := r.udp.ExchangeContext(ctx, m, server)
		if err == nil && in.Truncated {
			in, _, err = r.tcp.ExchangeContext(ctx, m, r.tcpServers[i])
		}
		if err != nil {
			lastErr = classify(err)
			continue
		}

		switch in.Rcode {
		case dns.RcodeSuccess, dns.RcodeNameError:
			return in, nil
		default:
			lastErr = newError(ResolutionError,
				fmt.Errorf("server %s answered %s for %s", server, dns.RcodeToString[in.Rcode], name))
		}
	}

	return nil, lastErr
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return newError(TimeoutError, fmt.Errorf("query timed out: %w", err))
	}
	return newError(IOError, fmt.Errorf("query failed: %w", err))
}

func noRecords(name string) error {
	return newError(ResolutionError, fmt.Errorf("%w for %q", ErrNoRecords, name))
}

func (r *Resolver) LookupA(ctx context.Context, host string) ([]record.Record, error) {
	in, err := r.query(ctx, host, dns.TypeA)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			records = append(records, record.NewA(host, a.A).WithTTL(a.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(host)
	}
	return records, nil
}

func (r *Resolver) LookupAAAA(ctx context.Context, host string) ([]record.Record, error) {
	in, err := r.query(ctx, host, dns.TypeAAAA)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if aaaa, ok := rr.(*dns.AAAA); ok {
			records = append(records, record.NewAAAA(host, aaaa.AAAA).WithTTL(aaaa.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(host)
	}
	return records, nil
}

// LookupIP unions A and AAAA answers. Either sub-query failing on its
// own is reported and swallowed; callers get an empty slice at worst,
// never an error.
func (r *Resolver) LookupIP(ctx context.Context, host string) []record.Record {
	var records []record.Record

	a, err := r.LookupA(ctx, host)
	if err != nil {
		r.progress.Update("no A records for %s: %v", host, err)
	}
	records = append(records, a...)

	aaaa, err := r.LookupAAAA(ctx, host)
	if err != nil {
		r.progress.Update("no AAAA records for %s: %v", host, err)
	}
	records = append(records, aaaa...)

	return records
}

func (r *Resolver) LookupMX(ctx context.Context, domain string) ([]record.Record, error) {
	in, err := r.query(ctx, domain, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if mx, ok := rr.(*dns.MX); ok {
			records = append(records, record.NewMX(domain, mx.Preference, mx.Mx).WithTTL(mx.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(domain)
	}
	return records, nil
}

func (r *Resolver) LookupNS(ctx context.Context, domain string) ([]record.Record, error) {
	in, err := r.query(ctx, domain, dns.TypeNS)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if ns, ok := rr.(*dns.NS); ok {
			records = append(records, record.NewNS(domain, ns.Ns).WithTTL(ns.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(domain)
	}
	return records, nil
}

func (r *Resolver) LookupSOA(ctx context.Context, domain string) ([]record.Record, error) {
	in, err := r.query(ctx, domain, dns.TypeSOA)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if soa, ok := rr.(*dns.SOA); ok {
			records = append(records, record.NewSOA(domain,
				soa.Ns, soa.Mbox,
				soa.Serial, soa.Refresh, soa.Retry, soa.Expire, soa.Minttl,
			).WithTTL(soa.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(domain)
	}
	return records, nil
}

func (r *Resolver) LookupTXT(ctx context.Context, domain string) ([]record.Record, error) {
	in, err := r.query(ctx, domain, dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if txt, ok := rr.(*dns.TXT); ok {
			records = append(records, record.NewTXT(domain, strings.Join(txt.Txt, "")).WithTTL(txt.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(domain)
	}
	return records, nil
}

// LookupSPF filters SPF policies out of the domain's TXT records. There
// is no SPF query type on the wire anymore.
func (r *Resolver) LookupSPF(ctx context.Context, domain string) ([]record.Record, error) {
	txt, err := r.LookupTXT(ctx, domain)
	if err != nil {
		return nil, err
	}
	return record.FilterSPF(txt), nil
}

func (r *Resolver) LookupSRV(ctx context.Context, service string) ([]record.Record, error) {
	in, err := r.query(ctx, service, dns.TypeSRV)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if srv, ok := rr.(*dns.SRV); ok {
			records = append(records, record.NewSRV(service,
				srv.Priority, srv.Weight, srv.Port, srv.Target,
			).WithTTL(srv.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(service)
	}
	return records, nil
}

// LookupCAA is a raw query. A domain legitimately has no CAA records
// far more often than not, so absence is an empty result rather than an
// error; transport failures still surface.
func (r *Resolver) LookupCAA(ctx context.Context, domain string) ([]record.Record, error) {
	in, err := r.query(ctx, domain, dns.TypeCAA)
	if err != nil {
		return nil, err
	}
	records := []record.Record{}
	for _, rr := range in.Answer {
		if caa, ok := rr.(*dns.CAA); ok {
			records = append(records, record.NewCAA(domain, caa.Flag, caa.Tag, caa.Value).WithTTL(caa.Hdr.Ttl))
		}
	}
	return records, nil
}

func (r *Resolver) LookupCNAME(ctx context.Context, host string) ([]record.Record, error) {
	in, err := r.query(ctx, host, dns.TypeCNAME)
	if err != nil {
		return nil, err
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if cname, ok := rr.(*dns.CNAME); ok {
			records = append(records, record.NewCNAME(host, cname.Target).WithTTL(cname.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(host)
	}
	return records, nil
}

func (r *Resolver) LookupPTR(ctx context.Context, ip string) ([]record.Record, error) {
	reverse, err := dns.ReverseAddr(ip)
	if err != nil {
		return nil, newError(AddrParseError, fmt.Errorf("invalid address %q: %w", ip, err))
	}
	in, qerr := r.query(ctx, reverse, dns.TypePTR)
	if qerr != nil {
		return nil, qerr
	}
	var records []record.Record
	for _, rr := range in.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			records = append(records, record.NewPTR(ip, ptr.Ptr).WithTTL(ptr.Hdr.Ttl))
		}
	}
	if len(records) == 0 {
		return nil, noRecords(reverse)
	}
	return records, nil
}
