package zonewalk

import (
	"strings"

	"github.com/miekg/dns"

	"github.com/dnsweep/dnsweep/record"
)

// Translate converts transferred wire records into the record model.
// Types outside the model degrade to a generic textual record instead
// of failing the transfer; a zone is allowed to contain anything.
func Translate(rrs []dns.RR) []record.Record {
	records := make([]record.Record, 0, len(rrs))
	for _, rr := range rrs {
		records = append(records, translateOne(rr))
	}
	return records
}

func translateOne(rr dns.RR) record.Record {
	name := rr.Header().Name
	ttl := rr.Header().Ttl

	switch v := rr.(type) {
	case *dns.A:
		return record.NewA(name, v.A).WithTTL(ttl)
	case *dns.AAAA:
		return record.NewAAAA(name, v.AAAA).WithTTL(ttl)
	case *dns.MX:
		return record.NewMX(name, v.Preference, v.Mx).WithTTL(ttl)
	case *dns.NS:
		return record.NewNS(name, v.Ns).WithTTL(ttl)
	case *dns.SOA:
		return record.NewSOA(name, v.Ns, v.Mbox,
			v.Serial, v.Refresh, v.Retry, v.Expire, v.Minttl).WithTTL(ttl)
	case *dns.TXT:
		return record.NewTXT(name, strings.Join(v.Txt, "")).WithTTL(ttl)
	case *dns.PTR:
		return record.NewPTR(name, v.Ptr).WithTTL(ttl)
	case *dns.SRV:
		return record.NewSRV(name, v.Priority, v.Weight, v.Port, v.Target).WithTTL(ttl)
	case *dns.CAA:
		return record.NewCAA(name, v.Flag, v.Tag, v.Value).WithTTL(ttl)
	case *dns.CNAME:
		return record.NewCNAME(name, v.Target).WithTTL(ttl)
	default:
		return record.NewTXT(name, rr.String()).WithTTL(ttl)
	}
}
