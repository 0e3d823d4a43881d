package hcsledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/mirror"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"go.uber.org/zap"
)

const (
	LedgerName = shared.LedgerHedera

	DefaultReceiptTimeout = 2 * time.Minute
	// MaxMessageBytes is the single-chunk limit of a topic message.
	MaxMessageBytes = 1024
)

type Config struct {
	Network string
	TopicID string
	// KeyType is an optional hint ("ed25519" or "ecdsa") for keys whose
	// encoding does not say which curve they use.
	KeyType        string
	MirrorBaseURL  string
	MirrorAPIKey   string
	ReceiptTimeout time.Duration
	Logger         *zap.Logger
}

type submission struct {
	Operator hedera.AccountID
	Key      hedera.PrivateKey
	Topic    hedera.TopicID
	Message  []byte
	Memo     string
}

type submissionResult struct {
	TransactionID  string
	SequenceNumber uint64
}

type submitFunc func(network string, request submission) (submissionResult, error)

// Transport submits anchor memos as topic messages.
type Transport struct {
	network        string
	topicID        hedera.TopicID
	keyType        string
	mirrorClient   *mirror.Client
	receiptTimeout time.Duration
	logger         *zap.Logger
	submit         submitFunc
}

// NewTransport creates a new Transport.
func NewTransport(config Config) (*Transport, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(config.TopicID) == "" {
		return nil, fmt.Errorf("anchor topic ID is required")
	}
	topicID, err := hedera.TopicIDFromString(strings.TrimSpace(config.TopicID))
	if err != nil {
		return nil, fmt.Errorf("invalid anchor topic ID %q: %w", config.TopicID, err)
	}

	keyType := strings.ToLower(strings.TrimSpace(config.KeyType))
	switch keyType {
	case "", "ed25519", "ecdsa":
	default:
		return nil, fmt.Errorf("unsupported key type %q", config.KeyType)
	}

	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: network,
		BaseURL: config.MirrorBaseURL,
		APIKey:  config.MirrorAPIKey,
	})
	if err != nil {
		return nil, err
	}

	transport := &Transport{
		network:        network,
		topicID:        topicID,
		keyType:        keyType,
		mirrorClient:   mirrorClient,
		receiptTimeout: config.ReceiptTimeout,
		logger:         config.Logger,
		submit:         executeSubmission,
	}
	if transport.receiptTimeout <= 0 {
		transport.receiptTimeout = DefaultReceiptTimeout
	}
	if transport.logger == nil {
		transport.logger = zap.NewNop()
	}
	return transport, nil
}

// MirrorClient returns the configured mirror node client.
func (t *Transport) MirrorClient() *mirror.Client {
	return t.mirrorClient
}

// SubmitSelfPayment publishes payment.MemoData to the anchor topic and waits
// for its receipt. The amount has no Hedera counterpart and is ignored.
func (t *Transport) SubmitSelfPayment(
	ctx context.Context,
	payment ledger.SelfPayment,
	credentials ledger.Credentials,
) (ledger.Confirmation, error) {
	if len(payment.MemoData) == 0 {
		return ledger.Confirmation{}, ledger.Rejected("build", nil, "memo data is empty")
	}
	if len(payment.MemoData) > MaxMessageBytes {
		return ledger.Confirmation{}, ledger.Rejected("build", nil, "memo data is %d bytes, limit is %d", len(payment.MemoData), MaxMessageBytes)
	}

	operatorID, err := hedera.AccountIDFromString(strings.TrimSpace(credentials.Account))
	if err != nil {
		return ledger.Confirmation{}, ledger.Rejected("operator", err, "invalid operator account ID")
	}
	operatorKey, err := t.resolvePrivateKey(ctx, operatorID.String(), credentials.Secret)
	if err != nil {
		return ledger.Confirmation{}, ledger.Rejected("operator", err, "")
	}

	waitCtx, cancel := context.WithTimeout(ctx, t.receiptTimeout)
	defer cancel()

	request := submission{
		Operator: operatorID,
		Key:      operatorKey,
		Topic:    t.topicID,
		Message:  append([]byte(nil), payment.MemoData...),
		Memo:     payment.MemoType,
	}

	type outcome struct {
		result submissionResult
		err    error
	}
	done := make(chan outcome, 1)
	started := time.Now()
	go func() {
		result, err := t.submit(t.network, request)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-waitCtx.Done():
		t.logger.Warn("stopped waiting for hedera receipt",
			zap.String("topic_id", t.topicID.String()),
			zap.Duration("waited", time.Since(started)),
		)
		return ledger.Confirmation{}, ledger.TimedOut("receipt", waitCtx.Err(), "no receipt within %s", t.receiptTimeout)
	case finished := <-done:
		if finished.err != nil {
			return ledger.Confirmation{}, classifyHederaError("submit", finished.err)
		}
		t.logger.Info("hedera anchor accepted",
			zap.String("transaction_id", finished.result.TransactionID),
			zap.Uint64("sequence_number", finished.result.SequenceNumber),
		)
		return ledger.Confirmation{
			ID:          finished.result.TransactionID,
			Ledger:      LedgerName,
			LedgerIndex: finished.result.SequenceNumber,
		}, nil
	}
}

func (t *Transport) resolvePrivateKey(ctx context.Context, accountID string, raw string) (hedera.PrivateKey, error) {
	trimmedKey := strings.TrimSpace(raw)
	if trimmedKey == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	keyType := t.keyType
	if keyType == "" && !hasDERPrefix(trimmedKey) {
		account, err := t.mirrorClient.GetAccount(ctx, accountID)
		if err != nil {
			t.logger.Debug("mirror key type lookup failed", zap.String("account_id", accountID), zap.Error(err))
		} else {
			keyType = strings.ToLower(account.KeyType())
		}
	}

	switch {
	case strings.Contains(keyType, "ecdsa"):
		key, err := hedera.PrivateKeyFromStringECDSA(trimmedKey)
		if err != nil {
			return hedera.PrivateKey{}, fmt.Errorf("failed to parse private key as ECDSA for account %s: %w", accountID, err)
		}
		return key, nil
	case strings.Contains(keyType, "ed25519"):
		key, err := hedera.PrivateKeyFromStringEd25519(trimmedKey)
		if err != nil {
			return hedera.PrivateKey{}, fmt.Errorf("failed to parse private key as ED25519 for account %s: %w", accountID, err)
		}
		return key, nil
	}
	return shared.ParsePrivateKey(trimmedKey)
}

// hasDERPrefix reports whether a hex key carries its own algorithm.
func hasDERPrefix(key string) bool {
	lower := strings.ToLower(strings.TrimPrefix(key, "0x"))
	return strings.HasPrefix(lower, "302e") || strings.HasPrefix(lower, "3030") || strings.HasPrefix(lower, "3077")
}

func classifyHederaError(op string, err error) *ledger.Error {
	var precheck hedera.ErrHederaPreCheckStatus
	if errors.As(err, &precheck) {
		switch precheck.Status {
		case hedera.StatusBusy, hedera.StatusPlatformNotActive, hedera.StatusPlatformTransactionNotCreated:
			return ledger.Unavailable(op, err, "precheck status %s", precheck.Status.String())
		}
		return ledger.Rejected(op, err, "precheck status %s", precheck.Status.String())
	}

	var receipt hedera.ErrHederaReceiptStatus
	if errors.As(err, &receipt) {
		return ledger.Rejected(op, err, "receipt status %s", receipt.Status.String())
	}

	var pending *receiptPendingError
	if errors.As(err, &pending) {
		return ledger.TimedOut(op, err, "transaction %s was sent but its receipt is unknown", pending.TransactionID)
	}
	return ledger.Classify(op, err)
}

// receiptPendingError marks a receipt lookup that failed after the
// transaction was accepted by a node.
type receiptPendingError struct {
	TransactionID string
	Err           error
}

func (e *receiptPendingError) Error() string {
	return fmt.Sprintf("failed to get anchor receipt for %s: %v", e.TransactionID, e.Err)
}

func (e *receiptPendingError) Unwrap() error {
	return e.Err
}

func executeSubmission(network string, request submission) (submissionResult, error) {
	client, err := shared.NewHederaClient(network)
	if err != nil {
		return submissionResult{}, err
	}
	defer client.Close()
	client.SetOperator(request.Operator, request.Key)

	response, err := hedera.NewTopicMessageSubmitTransaction().
		SetTopicID(request.Topic).
		SetMessage(request.Message).
		SetTransactionMemo(request.Memo).
		Execute(client)
	if err != nil {
		return submissionResult{}, fmt.Errorf("failed to submit anchor message: %w", err)
	}

	receipt, err := response.GetReceipt(client)
	if err != nil {
		var status hedera.ErrHederaReceiptStatus
		if errors.As(err, &status) {
			return submissionResult{}, fmt.Errorf("failed to get anchor receipt: %w", err)
		}
		return submissionResult{}, &receiptPendingError{TransactionID: response.TransactionID.String(), Err: err}
	}

	return submissionResult{
		TransactionID:  response.TransactionID.String(),
		SequenceNumber: receipt.TopicSequenceNumber,
	}, nil
}
