// Package digest computes content hashes of decoded images and their
// source bytes. Two decodes of the same bytes must produce the same digests.
package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"

	"github.com/zeebo/blake3"
)

// HashResult contains both SHA-256 and BLAKE3 hashes of one byte stream.
type HashResult struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// SHA256 computes the SHA-256 hash of data.
func SHA256(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// BLAKE3 computes the BLAKE3 hash of data.
func BLAKE3(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Sum computes both hashes of data.
func Sum(data []byte) *HashResult {
	return &HashResult{
		SHA256: SHA256(data),
		BLAKE3: BLAKE3(data),
	}
}

// Hasher is an io.Writer computing both hashes of everything written to it.
type Hasher struct {
	sha  hash.Hash
	b3   *blake3.Hasher
	size int64
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{sha: sha256.New(), b3: blake3.New()}
}

// Write implements io.Writer. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	h.sha.Write(p)
	h.b3.Write(p)
	h.size += int64(len(p))
	return len(p), nil
}

// Size returns the number of bytes written so far.
func (h *Hasher) Size() int64 {
	return h.size
}

// Result returns the hashes of the bytes written so far.
func (h *Hasher) Result() *HashResult {
	return &HashResult{
		SHA256: hex.EncodeToString(h.sha.Sum(nil)),
		BLAKE3: hex.EncodeToString(h.b3.Sum(nil)),
	}
}

// Pixels computes the BLAKE3 fingerprint of a packed pixel buffer, hashing
// each pixel as 4 little-endian bytes so the result does not depend on the
// host byte order.
func Pixels(pix []uint32) string {
	h := blake3.New()
	var word [4]byte
	for _, v := range pix {
		binary.LittleEndian.PutUint32(word[:], v)
		h.Write(word[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
