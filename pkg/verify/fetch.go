package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
)

// MemoSource reads the memo an anchor transaction carried.
type MemoSource interface {
	AnchorMemo(ctx context.Context, id string) (memoType string, memoData []byte, err error)
}

// MismatchError reports an anchored payload that does not commit to the
// expected hash.
type MismatchError struct {
	Expected string
	Anchored string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("anchored hash %s does not match expected %s", e.Anchored, e.Expected)
}

// Fetch reads an anchor back from its ledger and parses the commitment it
// carries. The memo must be tagged with commitment.MemoType.
func Fetch(ctx context.Context, source MemoSource, id string) (commitment.Payload, error) {
	if source == nil {
		return commitment.Payload{}, fmt.Errorf("memo source is required")
	}
	memoType, memoData, err := source.AnchorMemo(ctx, id)
	if err != nil {
		return commitment.Payload{}, fmt.Errorf("failed to read anchor %s: %w", id, err)
	}
	if memoType != commitment.MemoType {
		return commitment.Payload{}, fmt.Errorf("anchor %s has memo type %q, want %q", id, memoType, commitment.MemoType)
	}
	return commitment.Parse(memoData)
}

// Check fetches an anchor and confirms it commits to expectedHash. Hex case
// and surrounding space in expectedHash are ignored.
func Check(ctx context.Context, source MemoSource, id string, expectedHash string) (commitment.Payload, error) {
	payload, err := Fetch(ctx, source, id)
	if err != nil {
		return commitment.Payload{}, err
	}
	expectedHash = strings.ToLower(strings.TrimSpace(expectedHash))
	if payload.Hash != expectedHash {
		return payload, &MismatchError{Expected: expectedHash, Anchored: payload.Hash}
	}
	return payload, nil
}
