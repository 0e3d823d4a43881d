package xrpl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"go.uber.org/zap"
)

const (
	LedgerName = "xrpl"

	DefaultLedgerOffset uint32 = 20
	DefaultWaitTimeout         = 60 * time.Second
	DefaultPollInterval        = time.Second
	DefaultMaxFeeDrops  uint64 = 2_000_000

	rippleEpochOffset int64 = 946684800
)

type TransportConfig struct {
	Client *Client
	// LedgerOffset is added to the current ledger index to form
	// LastLedgerSequence.
	LedgerOffset uint32
	WaitTimeout  time.Duration
	PollInterval time.Duration
	MaxFeeDrops  uint64
	Logger       *zap.Logger
}

// Transport submits self payments through rippled.
type Transport struct {
	client       *Client
	ledgerOffset uint32
	waitTimeout  time.Duration
	pollInterval time.Duration
	maxFeeDrops  uint64
	logger       *zap.Logger
}

// NewTransport creates a new Transport.
func NewTransport(config TransportConfig) (*Transport, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("rippled client is required")
	}

	transport := &Transport{
		client:       config.Client,
		ledgerOffset: config.LedgerOffset,
		waitTimeout:  config.WaitTimeout,
		pollInterval: config.PollInterval,
		maxFeeDrops:  config.MaxFeeDrops,
		logger:       config.Logger,
	}
	if transport.ledgerOffset == 0 {
		transport.ledgerOffset = DefaultLedgerOffset
	}
	if transport.waitTimeout <= 0 {
		transport.waitTimeout = DefaultWaitTimeout
	}
	if transport.pollInterval <= 0 {
		transport.pollInterval = DefaultPollInterval
	}
	if transport.maxFeeDrops == 0 {
		transport.maxFeeDrops = DefaultMaxFeeDrops
	}
	if transport.logger == nil {
		transport.logger = zap.NewNop()
	}
	return transport, nil
}

// SubmitSelfPayment signs a payment from the credential account to itself,
// submits it once and waits for validation.
func (t *Transport) SubmitSelfPayment(
	ctx context.Context,
	payment ledger.SelfPayment,
	credentials ledger.Credentials,
) (ledger.Confirmation, error) {
	wallet, err := WalletFromSeed(credentials.Secret)
	if err != nil {
		return ledger.Confirmation{}, ledger.Rejected("wallet", err, "")
	}
	account := wallet.Address()
	if expected := strings.TrimSpace(credentials.Account); expected != "" && expected != account {
		return ledger.Confirmation{}, ledger.Rejected("wallet", nil, "seed derives %s, not %s", account, expected)
	}

	amount, err := parseDrops(payment.Amount)
	if err != nil {
		return ledger.Confirmation{}, ledger.Rejected("build", err, "")
	}

	accountInfo, err := t.client.AccountInfo(ctx, account)
	if err != nil {
		return ledger.Confirmation{}, classifyRPC(ctx, "account_info", err)
	}
	fee, err := t.client.Fee(ctx)
	if err != nil {
		return ledger.Confirmation{}, classifyRPC(ctx, "fee", err)
	}
	feeDrops, err := t.selectFee(fee.Drops)
	if err != nil {
		return ledger.Confirmation{}, ledger.Unavailable("fee", err, "")
	}

	currentIndex := accountInfo.LedgerCurrentIndex
	if fee.LedgerCurrentIndex > currentIndex {
		currentIndex = fee.LedgerCurrentIndex
	}
	unsigned := Payment{
		Account:            wallet.AccountID(),
		Destination:        wallet.AccountID(),
		AmountDrops:        amount,
		FeeDrops:           feeDrops,
		Sequence:           accountInfo.AccountData.Sequence,
		LastLedgerSequence: currentIndex + t.ledgerOffset,
		Memos: []Memo{{
			MemoType: []byte(payment.MemoType),
			MemoData: payment.MemoData,
		}},
	}
	blob, hash, err := SignPayment(wallet, unsigned)
	if err != nil {
		return ledger.Confirmation{}, ledger.Rejected("sign", err, "")
	}

	logger := t.logger.With(
		zap.String("account", account),
		zap.String("tx_hash", hash),
		zap.Uint32("sequence", unsigned.Sequence),
		zap.Uint32("last_ledger_sequence", unsigned.LastLedgerSequence),
	)

	submitted, err := t.client.Submit(ctx, blob)
	var responseErr *ResponseError
	switch {
	case errors.As(err, &responseErr):
		return ledger.Confirmation{}, classifyRPC(ctx, "submit", err)
	case err != nil:
		// The blob may have reached rippled before the response was lost,
		// so the outcome is only known once the hash validates or expires.
		logger.Warn("submit response lost, waiting for validation", zap.Error(err))
	default:
		logger.Debug("payment submitted", zap.String("engine_result", submitted.EngineResult))
		if err := classifyEngineResult(submitted); err != nil {
			return ledger.Confirmation{}, err
		}
	}

	return t.waitForValidation(ctx, hash, unsigned.LastLedgerSequence, err, logger)
}

func (t *Transport) waitForValidation(
	ctx context.Context,
	hash string,
	lastLedgerSequence uint32,
	submitErr error,
	logger *zap.Logger,
) (ledger.Confirmation, error) {
	waitCtx, cancel := context.WithTimeout(ctx, t.waitTimeout)
	defer cancel()

	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	lastErr := submitErr
	for {
		result, err := t.client.Tx(waitCtx, hash)
		switch {
		case err == nil && result.Validated:
			outcome := result.TransactionResult()
			if outcome != "tesSUCCESS" {
				return ledger.Confirmation{}, ledger.Rejected("tx", nil, "transaction %s validated with %s", hash, outcome)
			}
			logger.Debug("payment validated", zap.Uint32("ledger_index", result.LedgerIndex))
			return confirmationFor(hash, result), nil
		case err != nil && !isResponseCode(err, ErrorTransactionNotFound):
			lastErr = err
		}

		validated, err := t.client.ValidatedLedgerIndex(waitCtx)
		if err == nil && validated > lastLedgerSequence {
			return ledger.Confirmation{}, ledger.Rejected(
				"tx", lastErr,
				"transaction %s expired: validated ledger %d passed LastLedgerSequence %d",
				hash, validated, lastLedgerSequence,
			)
		}
		if err != nil {
			lastErr = err
		}

		select {
		case <-waitCtx.Done():
			cause := waitCtx.Err()
			if lastErr != nil {
				cause = errors.Join(cause, lastErr)
			}
			return ledger.Confirmation{}, ledger.TimedOut("tx", cause, "transaction %s not validated", hash)
		case <-ticker.C:
		}
	}
}

func (t *Transport) selectFee(drops FeeDrops) (uint64, error) {
	base, err := parseDrops(drops.BaseFee)
	if err != nil {
		return 0, fmt.Errorf("invalid base fee: %w", err)
	}
	fee := base
	if open, err := parseDrops(drops.OpenLedgerFee); err == nil && open > fee {
		fee = open
	}
	if minimum, err := parseDrops(drops.MinimumFee); err == nil && minimum > fee {
		fee = minimum
	}
	if fee > t.maxFeeDrops {
		return 0, fmt.Errorf("required fee %d exceeds maximum fee %d", fee, t.maxFeeDrops)
	}
	return fee, nil
}

func confirmationFor(hash string, result TxResult) ledger.Confirmation {
	confirmation := ledger.Confirmation{
		ID:          hash,
		Ledger:      LedgerName,
		LedgerIndex: uint64(result.LedgerIndex),
	}
	if result.Date > 0 {
		confirmation.ValidatedAt = time.Unix(result.Date+rippleEpochOffset, 0).UTC()
	}
	return confirmation
}

func classifyEngineResult(result SubmitResult) error {
	engineResult := result.EngineResult
	switch {
	case engineResult == "tesSUCCESS", strings.HasPrefix(engineResult, "ter"):
		return nil
	case strings.HasPrefix(engineResult, "tem"),
		strings.HasPrefix(engineResult, "tef"),
		strings.HasPrefix(engineResult, "tec"):
		return ledger.Rejected("submit", nil, "engine result %s: %s", engineResult, result.EngineResultMessage)
	case strings.HasPrefix(engineResult, "tel"):
		return ledger.Unavailable("submit", nil, "engine result %s: %s", engineResult, result.EngineResultMessage)
	default:
		return ledger.Unavailable("submit", nil, "unexpected engine result %q", engineResult)
	}
}

func classifyRPC(ctx context.Context, op string, err error) *ledger.Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ledger.TimedOut(op, errors.Join(ctxErr, err), "")
	}

	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		switch responseErr.Code {
		case ErrorAccountNotFound, ErrorAccountMalformed, ErrorInvalidTransaction:
			return ledger.Rejected(op, err, "")
		}
	}
	return ledger.Unavailable(op, err, "")
}

func isResponseCode(err error, code string) bool {
	var responseErr *ResponseError
	return errors.As(err, &responseErr) && responseErr.Code == code
}

func parseDrops(value string) (uint64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("drops amount is required")
	}
	drops, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("drops amount %q must be a non-negative integer", value)
	}
	if drops > MaxDrops {
		return 0, fmt.Errorf("drops amount %q exceeds the XRP supply", value)
	}
	return drops, nil
}
