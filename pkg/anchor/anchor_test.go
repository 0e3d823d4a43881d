package anchor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/commitment"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger/ledgertest"
	"golang.org/x/time/rate"
)

const snapshotDigest = "bdfa64e8fb6216de7f6881e90550c22f8b88479f47fa0ab4d716b63433b8b7af"

var testClock = commitment.FixedClock{Instant: time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)}

type recordedObservation struct {
	mode    Mode
	outcome string
}

type fakeRecorder struct {
	mu           sync.Mutex
	observations []recordedObservation
}

func (r *fakeRecorder) ObserveSubmission(mode Mode, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observations = append(r.observations, recordedObservation{mode: mode, outcome: outcome})
}

func snapshot() map[string]any {
	return map[string]any{"nodes": 427000, "edges": 7240000}
}

func buildPayload(t *testing.T, event string) commitment.Payload {
	t.Helper()
	hash, err := digest.Of(snapshot())
	if err != nil {
		t.Fatalf("digest.Of failed: %v", err)
	}
	payload, err := commitment.Build(hash, event, testClock)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return payload
}

func TestDryRunNeverCallsTransport(t *testing.T) {
	transport := ledgertest.New()
	recorder := &fakeRecorder{}
	submitter := NewSubmitter(Config{Transport: transport, Recorder: recorder})
	payload := buildPayload(t, "graph_snapshot")

	testCases := map[string]*ledger.Credentials{
		"nil credentials": nil,
		"empty secret":    {Account: "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"},
	}
	var receipts []Receipt
	for name, credentials := range testCases {
		t.Run(name, func(t *testing.T) {
			receipt, err := submitter.Submit(context.Background(), payload, credentials)
			if err != nil {
				t.Fatalf("Submit failed: %v", err)
			}
			if !receipt.IsDryRun() || receipt.DryRun == nil {
				t.Fatalf("expected dry run receipt, got %+v", receipt)
			}
			if receipt.DryRun.Hash != snapshotDigest {
				t.Fatalf("unexpected hash: %s", receipt.DryRun.Hash)
			}
			if receipt.DryRun.MemoType != commitment.MemoType {
				t.Fatalf("unexpected memo type: %s", receipt.DryRun.MemoType)
			}
			if receipt.ConfirmationID != "" {
				t.Fatalf("dry run must not carry a confirmation id")
			}
			receipts = append(receipts, receipt)
		})
	}

	if transport.CallCount() != 0 {
		t.Fatalf("expected zero transport calls, got %d", transport.CallCount())
	}
	if len(receipts) == 2 && string(receipts[0].DryRun.MemoData) != string(receipts[1].DryRun.MemoData) {
		t.Fatalf("expected repeated dry runs to be identical")
	}
	for _, observation := range recorder.observations {
		if observation.mode != ModeDryRun || observation.outcome != OutcomeDryRun {
			t.Fatalf("unexpected observation: %+v", observation)
		}
	}
}

func TestDryRunWithoutTransport(t *testing.T) {
	submitter := NewSubmitter(Config{})
	payload := buildPayload(t, "graph_snapshot")

	receipt, err := submitter.Submit(context.Background(), payload, nil)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	expectedMemo, err := payload.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(receipt.DryRun.MemoData) != string(expectedMemo) {
		t.Fatalf("unexpected memo data: %s", receipt.DryRun.MemoData)
	}
	payloadDigest, err := payload.Digest()
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if receipt.DryRun.PayloadDigest != payloadDigest {
		t.Fatalf("unexpected payload digest")
	}
}

func TestLiveSubmission(t *testing.T) {
	transport := ledgertest.New()
	recorder := &fakeRecorder{}
	submitter := NewSubmitter(Config{Transport: transport, Recorder: recorder})
	payload := buildPayload(t, "graph_snapshot")
	credentials := &ledger.Credentials{Account: "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", Secret: "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"}

	receipt, err := submitter.Submit(context.Background(), payload, credentials)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if receipt.Mode != ModeLive || receipt.DryRun != nil {
		t.Fatalf("expected live receipt, got %+v", receipt)
	}

	calls := transport.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one transport call, got %d", len(calls))
	}
	call := calls[0]
	if call.Payment.Amount != "10" {
		t.Fatalf("unexpected amount: %s", call.Payment.Amount)
	}
	if call.Payment.MemoType != "sentinel/proof" {
		t.Fatalf("unexpected memo type: %s", call.Payment.MemoType)
	}
	expectedMemo, _ := payload.Bytes()
	if string(call.Payment.MemoData) != string(expectedMemo) {
		t.Fatalf("unexpected memo data: %s", call.Payment.MemoData)
	}
	if call.Credentials != *credentials {
		t.Fatalf("credentials were not passed through")
	}
	if receipt.ConfirmationID != ledgertest.ConfirmationID(expectedMemo) {
		t.Fatalf("unexpected confirmation id: %s", receipt.ConfirmationID)
	}
	if len(recorder.observations) != 1 || recorder.observations[0].outcome != OutcomeConfirmed {
		t.Fatalf("unexpected observations: %+v", recorder.observations)
	}
}

func TestLiveSubmissionFailures(t *testing.T) {
	credentials := &ledger.Credentials{Account: "rAccount", Secret: "sSecret"}
	testCases := []struct {
		name      string
		transport *ledgertest.Transport
		kind      ledger.Kind
		outcome   string
	}{
		{
			name:      "untyped error",
			transport: &ledgertest.Transport{Err: errors.New("dial tcp: connection refused")},
			kind:      ledger.KindTransportUnavailable,
			outcome:   "transport_unavailable",
		},
		{
			name:      "rejected",
			transport: &ledgertest.Transport{Err: ledger.Rejected("submit", nil, "engine result %s", "tecUNFUNDED_PAYMENT")},
			kind:      ledger.KindSubmissionRejected,
			outcome:   "submission_rejected",
		},
		{
			name:      "deadline",
			transport: &ledgertest.Transport{Err: context.DeadlineExceeded},
			kind:      ledger.KindTimeout,
			outcome:   "timeout",
		},
		{
			name: "empty confirmation",
			transport: &ledgertest.Transport{Respond: func(context.Context, ledger.SelfPayment, ledger.Credentials) (ledger.Confirmation, error) {
				return ledger.Confirmation{}, nil
			}},
			kind:    ledger.KindSubmissionRejected,
			outcome: "submission_rejected",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			submitter := NewSubmitter(Config{Transport: testCase.transport, Recorder: recorder})
			_, err := submitter.Submit(context.Background(), buildPayload(t, "graph_snapshot"), credentials)

			var ledgerErr *ledger.Error
			if !errors.As(err, &ledgerErr) {
				t.Fatalf("expected *ledger.Error, got %T (%v)", err, err)
			}
			if ledgerErr.Kind != testCase.kind {
				t.Fatalf("expected %s, got %s", testCase.kind, ledgerErr.Kind)
			}
			if testCase.transport.CallCount() != 1 {
				t.Fatalf("expected exactly one call, got %d", testCase.transport.CallCount())
			}
			if len(recorder.observations) != 1 || recorder.observations[0].outcome != testCase.outcome {
				t.Fatalf("unexpected observations: %+v", recorder.observations)
			}
		})
	}
}

func TestLiveSubmissionWithoutTransport(t *testing.T) {
	submitter := NewSubmitter(Config{})
	_, err := submitter.Submit(context.Background(), buildPayload(t, "graph_snapshot"), &ledger.Credentials{Secret: "s"})
	if !errors.Is(err, ErrNoTransport) {
		t.Fatalf("expected ErrNoTransport, got %v", err)
	}
}

func TestSubmitRejectsInvalidPayload(t *testing.T) {
	transport := ledgertest.New()
	submitter := NewSubmitter(Config{Transport: transport})
	_, err := submitter.Submit(context.Background(), commitment.Payload{Hash: "nope"}, &ledger.Credentials{Secret: "s"})

	var validationErr *commitment.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if transport.CallCount() != 0 {
		t.Fatalf("transport must not be called for invalid payloads")
	}
}

func TestCustomAmountAndMemoType(t *testing.T) {
	transport := ledgertest.New()
	submitter := NewSubmitter(Config{Transport: transport, Amount: "25", MemoType: "custom/proof"})
	if _, err := submitter.Submit(context.Background(), buildPayload(t, "graph_snapshot"), &ledger.Credentials{Secret: "s"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	call := transport.Calls()[0]
	if call.Payment.Amount != "25" || call.Payment.MemoType != "custom/proof" {
		t.Fatalf("unexpected payment: %+v", call.Payment)
	}
}

func TestPipelineAnchorDryRun(t *testing.T) {
	transport := ledgertest.New()
	pipeline := Pipeline{Submitter: NewSubmitter(Config{Transport: transport}), Clock: testClock}

	result, err := pipeline.Anchor(context.Background(), snapshot(), "graph_snapshot", nil)
	if err != nil {
		t.Fatalf("Anchor failed: %v", err)
	}
	if result.Hash.Hex() != snapshotDigest {
		t.Fatalf("unexpected hash: %s", result.Hash)
	}
	if !result.Receipt.IsDryRun() || result.Receipt.DryRun.Hash != snapshotDigest {
		t.Fatalf("unexpected receipt: %+v", result.Receipt)
	}
	if result.Payload.Timestamp != "2026-01-02T03:04:05.000000Z" {
		t.Fatalf("unexpected timestamp: %s", result.Payload.Timestamp)
	}
	if transport.CallCount() != 0 {
		t.Fatalf("expected zero transport calls")
	}
}

func TestPipelineKeepsHashOnFailure(t *testing.T) {
	transport := &ledgertest.Transport{Err: ledger.TimedOut("tx", nil, "not validated")}
	pipeline := Pipeline{Submitter: NewSubmitter(Config{Transport: transport}), Clock: testClock}

	result, err := pipeline.Anchor(context.Background(), snapshot(), "graph_snapshot", &ledger.Credentials{Secret: "s"})
	if !errors.Is(err, ledger.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if result.Hash.Hex() != snapshotDigest {
		t.Fatalf("expected hash to survive failure, got %s", result.Hash)
	}
}

func TestPipelineAnchorRecords(t *testing.T) {
	records := make([]any, 0, 5)
	for index := 1; index <= 5; index++ {
		records = append(records, map[string]any{"id": index, "kind": "trade"})
	}
	transport := ledgertest.New()
	pipeline := Pipeline{Submitter: NewSubmitter(Config{Transport: transport}), Clock: testClock, Workers: 3}

	result, err := pipeline.AnchorRecords(context.Background(), records, "trades", &ledger.Credentials{Secret: "s"})
	if err != nil {
		t.Fatalf("AnchorRecords failed: %v", err)
	}
	if result.Hash.Hex() != "e9c46cb9cfd8294fadc8cf8634789413e5bf83c755a9a11e2660d8c29d309404" {
		t.Fatalf("unexpected root: %s", result.Hash)
	}
	if result.Receipt.Mode != ModeLive || result.Receipt.ConfirmationID == "" {
		t.Fatalf("unexpected receipt: %+v", result.Receipt)
	}
	if !strings.Contains(string(transport.Calls()[0].Payment.MemoData), result.Hash.Hex()) {
		t.Fatalf("memo does not carry the root")
	}
}

func TestPipelineRejectsUnencodableSnapshot(t *testing.T) {
	pipeline := Pipeline{Clock: testClock}
	if _, err := pipeline.Anchor(context.Background(), map[string]any{"bad": make(chan int)}, "graph_snapshot", nil); err == nil {
		t.Fatalf("expected encoding error")
	}
}

func TestSubmitBatchIsolatesFailures(t *testing.T) {
	failing := buildPayload(t, "failing")
	transport := &ledgertest.Transport{Respond: func(_ context.Context, payment ledger.SelfPayment, _ ledger.Credentials) (ledger.Confirmation, error) {
		if strings.Contains(string(payment.MemoData), `"event":"failing"`) {
			return ledger.Confirmation{}, ledger.Rejected("submit", nil, "tefPAST_SEQ")
		}
		return ledger.Confirmation{ID: ledgertest.ConfirmationID(payment.MemoData)}, nil
	}}
	submitter := NewSubmitter(Config{Transport: transport})

	payloads := []commitment.Payload{
		buildPayload(t, "first"),
		failing,
		buildPayload(t, "third"),
	}
	results := submitter.SubmitBatch(context.Background(), payloads, &ledger.Credentials{Secret: "s"}, BatchOptions{
		Concurrency: 2,
		Limiter:     rate.NewLimiter(rate.Inf, 1),
	})

	if len(results) != len(payloads) {
		t.Fatalf("expected %d results, got %d", len(payloads), len(results))
	}
	for index, result := range results {
		if result.Index != index || result.Payload != payloads[index] {
			t.Fatalf("result %d out of order", index)
		}
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("unexpected failures: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, ledger.ErrSubmissionRejected) {
		t.Fatalf("expected rejection, got %v", results[1].Err)
	}
	if transport.CallCount() != 3 {
		t.Fatalf("expected 3 calls without retries, got %d", transport.CallCount())
	}
}

func TestSubmitBatchCancelledLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	transport := ledgertest.New()
	submitter := NewSubmitter(Config{Transport: transport})

	results := submitter.SubmitBatch(ctx, []commitment.Payload{buildPayload(t, "graph_snapshot")}, &ledger.Credentials{Secret: "s"}, BatchOptions{
		Limiter: rate.NewLimiter(rate.Every(time.Hour), 1),
	})
	if !errors.Is(results[0].Err, ErrNotSubmitted) || !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("expected ErrNotSubmitted wrapping context.Canceled, got %v", results[0].Err)
	}
	if _, ok := ledger.KindOf(results[0].Err); ok {
		t.Fatalf("unsent payload must not carry a ledger failure kind: %v", results[0].Err)
	}
	if transport.CallCount() != 0 {
		t.Fatalf("expected no transport calls")
	}
}

func TestSubmitBatchLimiterDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	transport := ledgertest.New()
	submitter := NewSubmitter(Config{Transport: transport})

	payloads := []commitment.Payload{buildPayload(t, "first"), buildPayload(t, "second")}
	results := submitter.SubmitBatch(ctx, payloads, &ledger.Credentials{Secret: "s"}, BatchOptions{
		Concurrency: 1,
		Limiter:     rate.NewLimiter(rate.Every(time.Hour), 1),
	})
	if results[0].Err != nil {
		t.Fatalf("expected first payload to submit, got %v", results[0].Err)
	}
	if !errors.Is(results[1].Err, ErrNotSubmitted) {
		t.Fatalf("expected second payload to be reported as not submitted, got %v", results[1].Err)
	}
	if _, ok := ledger.KindOf(results[1].Err); ok {
		t.Fatalf("unsent payload must not carry a ledger failure kind: %v", results[1].Err)
	}
	if transport.CallCount() != 1 {
		t.Fatalf("expected one transport call, got %d", transport.CallCount())
	}
}
