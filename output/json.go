package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dnsweep/dnsweep/record"
)

type jsonRecord struct {
	Type string            `json:"type"`
	Name string            `json:"name"`
	Data map[string]string `json:"data"`
	TTL  *uint32           `json:"ttl,omitempty"`
}

func toJSONRecords(records []record.Record) []jsonRecord {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		data := make(map[string]string)
		for _, f := range r.Data.Fields() {
			data[f.Key] = f.Value
		}
		out = append(out, jsonRecord{
			Type: string(r.Kind),
			Name: r.Name,
			Data: data,
			TTL:  r.TTL,
		})
	}
	return out
}

// WriteJSON pretty-prints the collection to a stream.
func WriteJSON(w io.Writer, records []record.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSONRecords(records)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// JSONFileWriter persists the collection as a pretty-printed JSON file.
type JSONFileWriter struct {
	Path string
}

func (w *JSONFileWriter) Write(records []record.Record) error {
	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("creating JSON output: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, records)
}
