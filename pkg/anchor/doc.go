// Package anchor hands commitment payloads to a ledger.
//
// A Submitter runs in one of two modes per call. Without credentials it
// performs a dry run: the payload is serialized exactly as it would be
// written to the ledger and returned for inspection, and the transport is
// never touched. With credentials it performs exactly one self-payment
// through the configured ledger.Transport and returns the confirmation id,
// or a *ledger.Error describing why the anchor was not confirmed.
//
// Pipeline chains hashing, commitment building and submission for the
// common snapshot and record-set flows.
package anchor
