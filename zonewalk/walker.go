// Package zonewalk discovers a domain's authoritative nameservers and
// tries to pull the whole zone from each of them.
package zonewalk

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/dnsweep/dnsweep/progress"
	"github.com/dnsweep/dnsweep/record"
)

// NSResolver discovers the authoritative nameservers to walk.
type NSResolver interface {
	LookupNS(ctx context.Context, domain string) ([]record.Record, error)
}

type Walker struct {
	ns       NSResolver
	xfr      Transferrer
	reporter progress.Reporter
}

func New(ns NSResolver, xfr Transferrer, reporter progress.Reporter) *Walker {
	if reporter == nil {
		reporter = progress.Discard
	}
	return &Walker{
		ns:       ns,
		xfr:      xfr,
		reporter: reporter,
	}
}

// Walk resolves the domain's NS records and attempts a transfer against
// each server. The NS lookup is load-bearing: without it there is
// nothing to walk, so its failure is the technique's failure. Each
// transfer failure after that only costs its own nameserver. The
// returned set always includes the NS records themselves.
func (w *Walker) Walk(ctx context.Context, domain string) ([]record.Record, error) {
	nsRecords, err := w.ns.LookupNS(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("discovering nameservers for %s: %w", domain, err)
	}

	results := make([]record.Record, 0, len(nsRecords))
	results = append(results, nsRecords...)

	var transferErrs error
	for _, nsRec := range nsRecords {
		data, ok := nsRec.Data.(record.NSData)
		if !ok {
			continue
		}
		nameserver := data.Nameserver

		w.reporter.Update("attempting zone transfer from %s", nameserver)
		rrs, err := w.xfr.Transfer(ctx, domain, nameserver)
		if err != nil {
			w.reporter.Error("zone transfer failed for %s: %v", nameserver, err)
			transferErrs = multierror.Append(transferErrs, err)
			continue
		}

		records := Translate(rrs)
		w.reporter.Update("zone transfer from %s successful, found %d records", nameserver, len(records))
		results = append(results, records...)
	}

	if transferErrs != nil {
		// Diagnostics only; a refused transfer is the expected case.
		w.reporter.Update("some transfers were refused: %v", transferErrs)
	}

	return results, nil
}
