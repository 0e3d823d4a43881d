package anchor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"go.uber.org/zap"
)

type Submitter struct {
	transport ledger.Transport
	amount    string
	memoType  string
	logger    *zap.Logger
	recorder  Recorder
}

// NewSubmitter creates a new Submitter.
func NewSubmitter(config Config) *Submitter {
	amount := strings.TrimSpace(config.Amount)
	if amount == "" {
		amount = ledger.DefaultAmountDrops
	}
	memoType := strings.TrimSpace(config.MemoType)
	if memoType == "" {
		memoType = commitment.MemoType
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Submitter{
		transport: config.Transport,
		amount:    amount,
		memoType:  memoType,
		logger:    logger,
		recorder:  config.Recorder,
	}
}

// Submit anchors payload. Missing credentials or an empty secret select a
// dry run.
func (s *Submitter) Submit(
	ctx context.Context,
	payload commitment.Payload,
	credentials *ledger.Credentials,
) (Receipt, error) {
	started := time.Now()

	if err := commitment.ValidatePayload(payload); err != nil {
		s.observe(modeFor(credentials), OutcomeInvalid, started)
		return Receipt{}, fmt.Errorf("invalid commitment payload: %w", err)
	}
	memoData, err := payload.Bytes()
	if err != nil {
		s.observe(modeFor(credentials), OutcomeInvalid, started)
		return Receipt{}, err
	}

	if !credentials.HasSecret() {
		return s.dryRun(payload, memoData, started)
	}
	if s.transport == nil {
		s.observe(ModeLive, OutcomeInvalid, started)
		return Receipt{}, ErrNoTransport
	}

	readOnly := *credentials
	payment := ledger.SelfPayment{
		Amount:   s.amount,
		MemoType: s.memoType,
		MemoData: memoData,
	}
	logger := s.logger.With(
		zap.String("account", readOnly.Account),
		zap.String("event", payload.Event),
		zap.String("hash", payload.Hash),
	)
	logger.Debug("submitting anchor")

	confirmation, err := s.transport.SubmitSelfPayment(ctx, payment, readOnly)
	if err != nil {
		classified := ledger.Classify("submit", err)
		s.observe(ModeLive, outcomeFor(classified.Kind), started)
		logger.Warn("anchor submission failed",
			zap.String("kind", string(classified.Kind)),
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
		)
		return Receipt{}, classified
	}
	if strings.TrimSpace(confirmation.ID) == "" {
		classified := ledger.Rejected("submit", nil, "ledger returned an empty confirmation id")
		s.observe(ModeLive, outcomeFor(classified.Kind), started)
		return Receipt{}, classified
	}

	s.observe(ModeLive, OutcomeConfirmed, started)
	logger.Info("anchor confirmed",
		zap.String("confirmation_id", confirmation.ID),
		zap.Duration("duration", time.Since(started)),
	)
	return Receipt{
		Mode:           ModeLive,
		ConfirmationID: confirmation.ID,
		Confirmation:   confirmation,
	}, nil
}

func (s *Submitter) dryRun(payload commitment.Payload, memoData []byte, started time.Time) (Receipt, error) {
	payloadDigest, err := payload.Digest()
	if err != nil {
		s.observe(ModeDryRun, OutcomeInvalid, started)
		return Receipt{}, err
	}

	s.observe(ModeDryRun, OutcomeDryRun, started)
	s.logger.Info("dry run, anchor not submitted",
		zap.String("event", payload.Event),
		zap.String("hash", payload.Hash),
	)
	return Receipt{
		Mode: ModeDryRun,
		DryRun: &DryRunResult{
			Payload:       payload,
			MemoType:      s.memoType,
			MemoData:      memoData,
			Hash:          payload.Hash,
			PayloadDigest: payloadDigest,
		},
	}, nil
}

func (s *Submitter) observe(mode Mode, outcome string, started time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.ObserveSubmission(mode, outcome, time.Since(started))
}

func modeFor(credentials *ledger.Credentials) Mode {
	if credentials.HasSecret() {
		return ModeLive
	}
	return ModeDryRun
}

func outcomeFor(kind ledger.Kind) string {
	switch kind {
	case ledger.KindTransportUnavailable:
		return "transport_unavailable"
	case ledger.KindSubmissionRejected:
		return "submission_rejected"
	case ledger.KindTimeout:
		return "timeout"
	default:
		return string(kind)
	}
}
