package merkle

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
	"golang.org/x/sync/errgroup"
)

// LeafDigests encodes and hashes records concurrently. The result keeps the
// input order; the first failing record cancels the remaining work.
func LeafDigests(ctx context.Context, records []any, workers int) ([]digest.Digest, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	leaves := make([]digest.Digest, len(records))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for index := range records {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			leaf, err := digest.Of(records[index])
			if err != nil {
				return fmt.Errorf("record %d: %w", index, err)
			}
			leaves[index] = leaf
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return leaves, nil
}

// RootFromRecords hashes every record and folds the leaves into a root.
func RootFromRecords(ctx context.Context, records []any, workers int) (digest.Digest, error) {
	leaves, err := LeafDigests(ctx, records, workers)
	if err != nil {
		return digest.Digest{}, err
	}
	return Root(leaves), nil
}
