// Package commitment builds the ledger-ready payload that carries a digest
// or Merkle root together with an event label, a UTC timestamp and a format
// version tag.
//
// The payload serializes with the same canonical encoding used for records,
// so the exact memo bytes written to a ledger can be re-hashed by anyone
// holding them. Time is read through an injected Clock.
package commitment
