// Package netrange expands target address descriptors (CIDR blocks,
// start-end pairs, single addresses) into the individual addresses a
// reverse sweep visits.
package netrange

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
)

// Expand turns a range descriptor into individual addresses.
//
// IPv4 ranges expand fully by numeric increment. IPv6 ranges are not
// enumerable at any practical cardinality, so only the two boundary
// addresses are returned for them.
func Expand(s string) ([]net.IP, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, "/"):
		return expandCIDR(s)
	case strings.Contains(s, "-"):
		return expandPair(s)
	default:
		ip := net.ParseIP(s)
		if ip == nil {
			return nil, fmt.Errorf("invalid address: %q", s)
		}
		return []net.IP{ip}, nil
	}
}

func expandCIDR(s string) ([]net.IP, error) {
	_, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR block %q: %w", s, err)
	}

	if v4 := ipnet.IP.To4(); v4 != nil {
		ones, bits := ipnet.Mask.Size()
		start := binary.BigEndian.Uint32(v4)
		end := start | (1<<(uint(bits-ones)) - 1)
		return expandV4(start, end), nil
	}

	// IPv6: first and last address of the block only.
	first := make(net.IP, len(ipnet.IP))
	copy(first, ipnet.IP)
	last := make(net.IP, len(ipnet.IP))
	for i := range last {
		last[i] = ipnet.IP[i] | ^ipnet.Mask[i]
	}
	if first.Equal(last) {
		return []net.IP{first}, nil
	}
	return []net.IP{first, last}, nil
}

func expandPair(s string) ([]net.IP, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range: %q", s)
	}
	start := net.ParseIP(strings.TrimSpace(parts[0]))
	end := net.ParseIP(strings.TrimSpace(parts[1]))
	if start == nil || end == nil {
		return nil, fmt.Errorf("invalid range bounds: %q", s)
	}

	start4, end4 := start.To4(), end.To4()
	if (start4 == nil) != (end4 == nil) {
		return nil, fmt.Errorf("mixed address families in range: %q", s)
	}

	if start4 != nil {
		lo := binary.BigEndian.Uint32(start4)
		hi := binary.BigEndian.Uint32(end4)
		if lo > hi {
			return nil, fmt.Errorf("range start after end: %q", s)
		}
		return expandV4(lo, hi), nil
	}

	// IPv6 pair: boundary addresses only.
	if start.Equal(end) {
		return []net.IP{start}, nil
	}
	return []net.IP{start, end}, nil
}

func expandV4(start, end uint32) []net.IP {
	ips := make([]net.IP, 0, end-start+1)
	for cur := start; ; cur++ {
		ip := make(net.IP, net.IPv4len)
		binary.BigEndian.PutUint32(ip, cur)
		ips = append(ips, ip)
		if cur == end {
			break
		}
	}
	return ips
}

// Validate checks a range descriptor's syntax without expanding it, so
// input errors surface before any network activity even for blocks too
// large to hold in memory twice.
func Validate(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case strings.Contains(s, "/"):
		if _, _, err := net.ParseCIDR(s); err != nil {
			return fmt.Errorf("invalid CIDR block %q: %w", s, err)
		}
		return nil
	case strings.Contains(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		start := net.ParseIP(strings.TrimSpace(parts[0]))
		end := net.ParseIP(strings.TrimSpace(parts[1]))
		if start == nil || end == nil {
			return fmt.Errorf("invalid range bounds: %q", s)
		}
		start4, end4 := start.To4(), end.To4()
		if (start4 == nil) != (end4 == nil) {
			return fmt.Errorf("mixed address families in range: %q", s)
		}
		if start4 != nil && binary.BigEndian.Uint32(start4) > binary.BigEndian.Uint32(end4) {
			return fmt.Errorf("range start after end: %q", s)
		}
		return nil
	default:
		if net.ParseIP(s) == nil {
			return fmt.Errorf("invalid address: %q", s)
		}
		return nil
	}
}

// ReadRanges reads one range descriptor per line, skipping blanks and
// # comments. Descriptors are validated by Expand, not here.
func ReadRanges(r io.Reader) ([]string, error) {
	var ranges []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ranges = append(ranges, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ranges: %w", err)
	}
	return ranges, nil
}
