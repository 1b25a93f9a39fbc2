// Package output persists the deduplicated record collection. Three
// formats: pretty JSON, XML with one element per record, and SQLite
// rows with type-specific fields in a child table.
package output

import (
	"github.com/hashicorp/go-multierror"

	"github.com/dnsweep/dnsweep/record"
)

type Writer interface {
	Write(records []record.Record) error
}

// MultiWriter fans the collection out to several writers and reports
// every failure, not just the first.
type MultiWriter struct {
	writers []Writer
}

func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{
		writers: writers,
	}
}

func (w *MultiWriter) Write(records []record.Record) error {
	var result error

	for _, writer := range w.writers {
		if err := writer.Write(records); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result
}
