package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest keys the disk cache. It has the size of source.File.Hash.
type Digest [sha256.Size]byte

func Sum(data []byte) Digest { return sha256.Sum256(data) }

// Combine hashes content followed by parts, in the order given.
func Combine(content Digest, parts ...Digest) Digest {
	buf := make([]byte, 0, sha256.Size*(len(parts)+1))
	buf = append(buf, content[:]...)
	for _, p := range parts {
		buf = append(buf, p[:]...)
	}
	return sha256.Sum256(buf)
}

func (d Digest) IsZero() bool { return d == Digest{} }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }
