package anchor

import (
	"context"
	"fmt"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const DefaultBatchConcurrency = 4

type BatchOptions struct {
	Concurrency int
	// Limiter paces submissions when set.
	Limiter *rate.Limiter
}

// BatchResult is the outcome of one payload in a batch.
type BatchResult struct {
	Index   int
	Payload commitment.Payload
	Receipt Receipt
	Err     error
}

// SubmitBatch submits independent payloads concurrently. A failure never
// affects the other submissions and nothing is retried.
func (s *Submitter) SubmitBatch(
	ctx context.Context,
	payloads []commitment.Payload,
	credentials *ledger.Credentials,
	options BatchOptions,
) []BatchResult {
	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(payloads))
	var group errgroup.Group
	group.SetLimit(concurrency)

	for index, payload := range payloads {
		group.Go(func() error {
			result := BatchResult{Index: index, Payload: payload}
			if options.Limiter != nil {
				if err := options.Limiter.Wait(ctx); err != nil {
					result.Err = fmt.Errorf("%w: %w", ErrNotSubmitted, err)
					results[index] = result
					return nil
				}
			}
			result.Receipt, result.Err = s.Submit(ctx, payload, credentials)
			results[index] = result
			return nil
		})
	}
	_ = group.Wait()

	return results
}
