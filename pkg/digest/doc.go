// Package digest is the content-addressing hash used for records, Merkle
// nodes and commitment payloads: unkeyed SHA-256 over canonical bytes.
//
// Digests render as lowercase hex on the wire. Digest.CID exposes the same
// hash as a CIDv1 (raw codec, sha2-256 multihash) so a canonical snapshot
// stored on IPFS can be located from its anchored hash.
package digest
