package source

import "golang.org/x/text/unicode/norm"

// NormalizeName brings an identifier to NFC so that visually identical
// spellings bind to the same scope entry.
func NormalizeName(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}
