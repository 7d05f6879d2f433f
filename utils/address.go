// utils/address.go
package utils

import "strings"

// NormalizeAddress canonicalizes a wallet address for use as a storage
// and lookup key. Only case is folded — no checksum or format validation
// happens here; a malformed string simply becomes a key of its own.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// ShortAddress renders the usual 0x1234…abcd display form used in
// activity details. Strings too short to truncate are returned as-is.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
