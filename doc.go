// Sentinel anchors fingerprints of graph data on public ledgers so that a
// published snapshot can later be shown to be unchanged.
//
// A snapshot or record set is encoded canonically, hashed with SHA-256 and,
// for record sets, folded into a Merkle root. The hash travels in a small
// JSON commitment that is written as a memo on a self-payment on the XRP
// Ledger, or as a topic message on the Hedera Consensus Service.
//
// # Packages
//
//   - pkg/canonical: deterministic JSON encoding of structured values
//   - pkg/digest: SHA-256 digests and their CID form
//   - pkg/merkle: duplicate-last Merkle roots and inclusion proofs
//   - pkg/commitment: the anchored payload, its validation and parsing
//   - pkg/anchor: dry-run or live submission with classified failures
//   - pkg/xrpl, pkg/hcsledger: ledger transports
//   - pkg/verify: explorer links and anchor read-back
//
// # Installation
//
//	go install github.com/Sentinel-Intelligence/sentinel-public/cmd/sentinel-anchor@latest
package sentinel
