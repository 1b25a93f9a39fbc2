// Package record defines the canonical in-memory representation of a
// resolved DNS fact. Records are constructed by whichever capability
// discovered them and are immutable afterwards.
package record

import (
	"net"
	"strconv"
	"strings"
)

// Kind identifies a DNS record type. The set is closed: every Data
// variant maps to exactly one Kind and serializers switch over it
// exhaustively.
type Kind string

const (
	A     Kind = "A"
	AAAA  Kind = "AAAA"
	MX    Kind = "MX"
	NS    Kind = "NS"
	SOA   Kind = "SOA"
	SPF   Kind = "SPF"
	TXT   Kind = "TXT"
	PTR   Kind = "PTR"
	SRV   Kind = "SRV"
	CAA   Kind = "CAA"
	CNAME Kind = "CNAME"
)

// Field is one serializable key/value pair of a record's type-specific
// payload. The output writers consume these in declaration order.
type Field struct {
	Key   string
	Value string
}

// Data is the type-specific payload of a record. It is a closed union:
// the only implementations live in this package, so a Record built
// through the constructors below can never carry a payload whose kind
// disagrees with the record's Kind.
type Data interface {
	Kind() Kind
	Fields() []Field
}

// Record is a single resolved DNS fact. Name never carries a trailing
// root-zone dot.
type Record struct {
	Kind Kind
	Name string
	Data Data
	TTL  *uint32
}

// TTL returns a pointer for use in the optional Record.TTL field.
func TTL(v uint32) *uint32 {
	return &v
}

// TrimDot strips the protocol-level trailing root-zone dot from a name.
func TrimDot(name string) string {
	return strings.TrimSuffix(name, ".")
}

type AData struct {
	Address net.IP
}

func (AData) Kind() Kind { return A }

func (d AData) Fields() []Field {
	return []Field{{"address", d.Address.String()}}
}

type AAAAData struct {
	Address net.IP
}

func (AAAAData) Kind() Kind { return AAAA }

func (d AAAAData) Fields() []Field {
	return []Field{{"address", d.Address.String()}}
}

type MXData struct {
	Preference uint16
	Exchange   string
}

func (MXData) Kind() Kind { return MX }

func (d MXData) Fields() []Field {
	return []Field{
		{"preference", strconv.FormatUint(uint64(d.Preference), 10)},
		{"exchange", d.Exchange},
	}
}

type NSData struct {
	Nameserver string
}

func (NSData) Kind() Kind { return NS }

func (d NSData) Fields() []Field {
	return []Field{{"nameserver", d.Nameserver}}
}

type SOAData struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (SOAData) Kind() Kind { return SOA }

func (d SOAData) Fields() []Field {
	return []Field{
		{"mname", d.MName},
		{"rname", d.RName},
		{"serial", strconv.FormatUint(uint64(d.Serial), 10)},
		{"refresh", strconv.FormatUint(uint64(d.Refresh), 10)},
		{"retry", strconv.FormatUint(uint64(d.Retry), 10)},
		{"expire", strconv.FormatUint(uint64(d.Expire), 10)},
		{"minimum", strconv.FormatUint(uint64(d.Minimum), 10)},
	}
}

type SPFData struct {
	Text string
}

func (SPFData) Kind() Kind { return SPF }

func (d SPFData) Fields() []Field {
	return []Field{{"data", d.Text}}
}

type TXTData struct {
	Text string
}

func (TXTData) Kind() Kind { return TXT }

func (d TXTData) Fields() []Field {
	return []Field{{"data", d.Text}}
}

type PTRData struct {
	Target string
}

func (PTRData) Kind() Kind { return PTR }

func (d PTRData) Fields() []Field {
	return []Field{{"target", d.Target}}
}

type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (SRVData) Kind() Kind { return SRV }

func (d SRVData) Fields() []Field {
	return []Field{
		{"priority", strconv.FormatUint(uint64(d.Priority), 10)},
		{"weight", strconv.FormatUint(uint64(d.Weight), 10)},
		{"port", strconv.FormatUint(uint64(d.Port), 10)},
		{"target", d.Target},
	}
}

type CAAData struct {
	Flags uint8
	Tag   string
	Value string
}

func (CAAData) Kind() Kind { return CAA }

func (d CAAData) Fields() []Field {
	return []Field{
		{"flags", strconv.FormatUint(uint64(d.Flags), 10)},
		{"tag", d.Tag},
		{"value", d.Value},
	}
}

type CNAMEData struct {
	Target string
}

func (CNAMEData) Kind() Kind { return CNAME }

func (d CNAMEData) Fields() []Field {
	return []Field{{"target", d.Target}}
}

// New builds a record from a payload, deriving Kind from the payload so
// the two can never disagree.
func New(name string, data Data) Record {
	return Record{
		Kind: data.Kind(),
		Name: TrimDot(name),
		Data: data,
	}
}

// WithTTL returns a copy of the record carrying the given TTL.
func (r Record) WithTTL(ttl uint32) Record {
	r.TTL = TTL(ttl)
	return r
}

func NewA(name string, address net.IP) Record {
	return New(name, AData{Address: address})
}

func NewAAAA(name string, address net.IP) Record {
	return New(name, AAAAData{Address: address})
}

func NewMX(name string, preference uint16, exchange string) Record {
	return New(name, MXData{Preference: preference, Exchange: TrimDot(exchange)})
}

func NewNS(name, nameserver string) Record {
	return New(name, NSData{Nameserver: TrimDot(nameserver)})
}

func NewSOA(name, mname, rname string, serial, refresh, retry, expire, minimum uint32) Record {
	return New(name, SOAData{
		MName:   TrimDot(mname),
		RName:   TrimDot(rname),
		Serial:  serial,
		Refresh: refresh,
		Retry:   retry,
		Expire:  expire,
		Minimum: minimum,
	})
}

func NewSPF(name, text string) Record {
	return New(name, SPFData{Text: text})
}

func NewTXT(name, text string) Record {
	return New(name, TXTData{Text: text})
}

func NewPTR(name, target string) Record {
	return New(name, PTRData{Target: TrimDot(target)})
}

func NewSRV(name string, priority, weight, port uint16, target string) Record {
	return New(name, SRVData{
		Priority: priority,
		Weight:   weight,
		Port:     port,
		Target:   TrimDot(target),
	})
}

func NewCAA(name string, flags uint8, tag, value string) Record {
	return New(name, CAAData{Flags: flags, Tag: tag, Value: value})
}

func NewCNAME(name, target string) Record {
	return New(name, CNAMEData{Target: TrimDot(target)})
}

// FilterSPF derives SPF records from TXT records whose text starts with
// the SPF version marker. SPF has no dedicated query type anymore, so
// this is local filtering, not a lookup.
func FilterSPF(records []Record) []Record {
	var spf []Record
	for _, r := range records {
		txt, ok := r.Data.(TXTData)
		if !ok {
			continue
		}
		if strings.HasPrefix(txt.Text, "v=spf1") {
			spf = append(spf, NewSPF(r.Name, txt.Text))
		}
	}
	return spf
}
