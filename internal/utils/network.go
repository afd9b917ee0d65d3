package utils

import "net/netip"

// IsValidIPv4 checks if a string is a bare dotted-quad IPv4 literal:
// four numeric octets in 0-255 and nothing else. IPv6 addresses,
// IPv4-in-IPv6 forms, hostnames and padded strings are all rejected.
func IsValidIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return addr.Is4()
}
