package entity

import "regexp"

// AddressLength is the length of a canonical 0x-prefixed EVM address.
const AddressLength = 42

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether s is a 0x-prefixed, 40 hex digit address.
// Checksum casing is not verified.
func IsValidAddress(s string) bool {
	return len(s) == AddressLength && addressPattern.MatchString(s)
}
