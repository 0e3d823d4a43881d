package hcsledger

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/mirror"
)

// Reader reads anchored memos back through the mirror node.
type Reader struct {
	mirrorClient *mirror.Client
}

func NewReader(mirrorClient *mirror.Client) (*Reader, error) {
	if mirrorClient == nil {
		return nil, fmt.Errorf("mirror client is required")
	}
	return &Reader{mirrorClient: mirrorClient}, nil
}

// AnchorMemo returns the memo type and memo data of an anchor transaction.
func (r *Reader) AnchorMemo(ctx context.Context, transactionID string) (string, []byte, error) {
	transaction, err := r.mirrorClient.GetTransaction(ctx, transactionID)
	if err != nil {
		return "", nil, err
	}
	if transaction == nil {
		return "", nil, fmt.Errorf("transaction %s is not visible on the mirror node yet", transactionID)
	}
	if transaction.Result != "SUCCESS" {
		return "", nil, fmt.Errorf("transaction %s has result %s", transactionID, transaction.Result)
	}
	if transaction.EntityID == nil || strings.TrimSpace(*transaction.EntityID) == "" {
		return "", nil, fmt.Errorf("transaction %s did not target a topic", transactionID)
	}

	memoType, err := base64.StdEncoding.DecodeString(transaction.MemoBase64)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode transaction memo: %w", err)
	}

	message, err := r.mirrorClient.GetTopicMessageAt(ctx, *transaction.EntityID, transaction.ConsensusTimestamp)
	if err != nil {
		return "", nil, err
	}
	data, err := mirror.DecodeMessageData(message)
	if err != nil {
		return "", nil, err
	}
	return string(memoType), data, nil
}
