package anchor

import (
	"context"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/merkle"
)

// Pipeline runs hash, build and submit in one call.
type Pipeline struct {
	Submitter *Submitter
	Clock     commitment.Clock
	// Workers bounds parallel leaf hashing; zero uses GOMAXPROCS.
	Workers int
}

// Result carries the hash even when building or submitting failed, so the
// caller can report it and anchor later without recomputing.
type Result struct {
	Hash    digest.Digest
	Payload commitment.Payload
	Receipt Receipt
}

// SnapshotDigest hashes one snapshot value.
func (p Pipeline) SnapshotDigest(data any) (digest.Digest, error) {
	return digest.Of(data)
}

// RecordsRoot hashes each record and folds the leaves into a Merkle root.
func (p Pipeline) RecordsRoot(ctx context.Context, records []any) (digest.Digest, error) {
	return merkle.RootFromRecords(ctx, records, p.Workers)
}

// Anchor hashes data as one snapshot and anchors the digest.
func (p Pipeline) Anchor(
	ctx context.Context,
	data any,
	event string,
	credentials *ledger.Credentials,
) (Result, error) {
	hash, err := p.SnapshotDigest(data)
	if err != nil {
		return Result{}, err
	}
	return p.AnchorDigest(ctx, hash, event, credentials)
}

// AnchorRecords anchors the Merkle root of records.
func (p Pipeline) AnchorRecords(
	ctx context.Context,
	records []any,
	event string,
	credentials *ledger.Credentials,
) (Result, error) {
	root, err := p.RecordsRoot(ctx, records)
	if err != nil {
		return Result{}, err
	}
	return p.AnchorDigest(ctx, root, event, credentials)
}

// AnchorDigest builds a payload for an already computed hash and submits it.
func (p Pipeline) AnchorDigest(
	ctx context.Context,
	hash digest.Digest,
	event string,
	credentials *ledger.Credentials,
) (Result, error) {
	result := Result{Hash: hash}

	clock := p.Clock
	if clock == nil {
		clock = commitment.SystemClock{}
	}
	payload, err := commitment.Build(hash, event, clock)
	if err != nil {
		return result, err
	}
	result.Payload = payload

	submitter := p.Submitter
	if submitter == nil {
		submitter = NewSubmitter(Config{})
	}
	receipt, err := submitter.Submit(ctx, payload, credentials)
	if err != nil {
		return result, err
	}
	result.Receipt = receipt
	return result, nil
}
