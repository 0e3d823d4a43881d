package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/canonical"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

const Size = sha256.Size

type Digest [Size]byte

// Sum hashes raw bytes.
func Sum(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Of canonically encodes a record and hashes the encoding.
func Of(record any) (Digest, error) {
	encoded, err := canonical.EncodeAny(record)
	if err != nil {
		return Digest{}, err
	}
	return Sum(encoded), nil
}

// OfValue hashes the canonical encoding of a Value.
func OfValue(value canonical.Value) (Digest, error) {
	encoded, err := canonical.Encode(value)
	if err != nil {
		return Digest{}, err
	}
	return Sum(encoded), nil
}

// Parse decodes a 64 character hex digest.
func Parse(value string) (Digest, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) != Size*2 {
		return Digest{}, fmt.Errorf("digest must be %d hex characters, got %d", Size*2, len(trimmed))
	}

	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return Digest{}, fmt.Errorf("digest must be valid hex: %w", err)
	}

	var result Digest
	copy(result[:], decoded)
	return result, nil
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

func (d Digest) Bytes() []byte {
	copied := make([]byte, Size)
	copy(copied, d[:])
	return copied
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}

// CID returns the CIDv1 (raw, sha2-256) addressing the bytes this digest was
// computed from.
func (d Digest) CID() (string, error) {
	encoded, err := multihash.Encode(d[:], multihash.SHA2_256)
	if err != nil {
		return "", fmt.Errorf("failed to encode multihash: %w", err)
	}
	return cid.NewCidV1(cid.Raw, multihash.Multihash(encoded)).String(), nil
}

// FromCID extracts the sha2-256 digest carried by a CID string.
func FromCID(value string) (Digest, error) {
	parsed, err := cid.Decode(strings.TrimSpace(value))
	if err != nil {
		return Digest{}, fmt.Errorf("invalid CID: %w", err)
	}

	decoded, err := multihash.Decode(parsed.Hash())
	if err != nil {
		return Digest{}, fmt.Errorf("invalid CID multihash: %w", err)
	}
	if decoded.Code != multihash.SHA2_256 || len(decoded.Digest) != Size {
		return Digest{}, fmt.Errorf("CID must carry a sha2-256 multihash")
	}

	var result Digest
	copy(result[:], decoded.Digest)
	return result, nil
}

// MarshalText encodes the digest as lowercase hex, so JSON carries a string.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
