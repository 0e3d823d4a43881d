// Package canonical turns structured records into a unique byte sequence.
//
// Records are modelled as a tagged Value (null, bool, number, string,
// sequence, mapping). Encoding produces compact JSON with mapping keys sorted
// by code point, ASCII-only string escapes and a single textual form for every
// number, so structurally equal records always encode to identical bytes no
// matter how they were built. The output is byte-compatible with
// json.dumps(value, sort_keys=True, separators=(",", ":")).
//
// # Encoding a snapshot
//
//	encoded, err := canonical.EncodeAny(map[string]any{"nodes": 427000, "edges": 7240000})
//	// encoded == []byte(`{"edges":7240000,"nodes":427000}`)
//
// Values with no canonical representation (NaN, infinities, cycles, invalid
// UTF-8, channels, functions) are rejected with an *EncodingError.
package canonical
