package engine

import (
	"strings"

	"github.com/dnsweep/dnsweep/record"
)

// Dedupe keeps the first record seen for each lowercase-normalized
// name. This is a name-presence dedup, not full-record equality: a
// later record for an already-seen name is dropped even when its kind
// or data differ. Downstream consumers depend on that exact behavior,
// so keep it even though it discards A/CNAME pairs and round-robin
// address sets.
func Dedupe(records []record.Record) []record.Record {
	seen := make(map[string]struct{}, len(records))
	deduplicated := make([]record.Record, 0, len(records))

	for _, r := range records {
		key := strings.ToLower(r.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduplicated = append(deduplicated, r)
	}

	return deduplicated
}
