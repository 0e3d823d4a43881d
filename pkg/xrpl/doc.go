// Package xrpl anchors commitment payloads on the XRP Ledger.
//
// It contains the minimum of the XRPL toolchain needed for that job: a
// JSON-RPC client for rippled (account_info, fee, submit, tx, ledger), family
// seed decoding with secp256k1 and ed25519 key derivation, classic address
// encoding, and a binary codec for a Payment carrying one Memo.
//
// Transport implements ledger.Transport. Each call autofills the sequence,
// fee and LastLedgerSequence, signs locally, submits once and polls until the
// transaction is validated, expires or the wait budget runs out.
//
// # Failure classification
//
//   - HTTP errors and unusable rippled responses are TransportUnavailable.
//   - tem, tef and tec engine results, unfunded or unknown accounts, a
//     validated result other than tesSUCCESS, and expiry past
//     LastLedgerSequence are SubmissionRejected.
//   - Running out of wait budget is Timeout; the transaction may still be
//     validated later.
package xrpl
