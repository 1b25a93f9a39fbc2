package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dnsweep/dnsweep/record"
)

const xmlRoot = "dnsweep"

// WriteXML writes one element per record, named by the lowercase record
// kind, with the type-specific fields nested and an optional ttl.
func WriteXML(w io.Writer, records []record.Record) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing XML header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: xmlRoot}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("writing XML: %w", err)
	}

	for _, r := range records {
		if err := encodeRecord(enc, r); err != nil {
			return fmt.Errorf("writing XML: %w", err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("writing XML: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("writing XML: %w", err)
	}
	return nil
}

func encodeRecord(enc *xml.Encoder, r record.Record) error {
	start := xml.StartElement{Name: xml.Name{Local: strings.ToLower(string(r.Kind))}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if err := encodeText(enc, "name", r.Name); err != nil {
		return err
	}
	for _, f := range r.Data.Fields() {
		if err := encodeText(enc, f.Key, f.Value); err != nil {
			return err
		}
	}
	if r.TTL != nil {
		if err := encodeText(enc, "ttl", strconv.FormatUint(uint64(*r.TTL), 10)); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func encodeText(enc *xml.Encoder, name, value string) error {
	return enc.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: name}})
}

// XMLFileWriter persists the collection as an XML document.
type XMLFileWriter struct {
	Path string
}

func (w *XMLFileWriter) Write(records []record.Record) error {
	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("creating XML output: %w", err)
	}
	defer f.Close()
	return WriteXML(f, records)
}
