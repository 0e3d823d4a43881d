package xrpl

import (
	"encoding/hex"
	"fmt"
	"strings"

	binarycodec "github.com/Peersyst/xrpl-go/binary-codec"
	xrplhash "github.com/Peersyst/xrpl-go/xrpl/hash"
	"github.com/Peersyst/xrpl-go/xrpl/transaction"
	"github.com/Peersyst/xrpl-go/xrpl/transaction/types"
)

// MaxDrops is the total XRP supply in drops.
const MaxDrops uint64 = 100_000_000_000_000_000

const signingPrefixHex = "53545800"

type Memo struct {
	MemoType []byte
	MemoData []byte
}

// Payment is an XRP payment with optional memos.
type Payment struct {
	Account            AccountID
	Destination        AccountID
	AmountDrops        uint64
	FeeDrops           uint64
	Sequence           uint32
	LastLedgerSequence uint32
	Memos              []Memo
}

// Flatten converts the payment into the field map the binary codec
// serializes.
func (p Payment) Flatten() (map[string]any, error) {
	if p.AmountDrops > MaxDrops {
		return nil, fmt.Errorf("amount %d exceeds maximum drops", p.AmountDrops)
	}
	if p.FeeDrops > MaxDrops {
		return nil, fmt.Errorf("fee %d exceeds maximum drops", p.FeeDrops)
	}
	if p.Sequence == 0 {
		return nil, fmt.Errorf("sequence is required")
	}

	payment := transaction.Payment{
		BaseTx: transaction.BaseTx{
			Account:            types.Address(p.Account.Address()),
			Fee:                types.XRPCurrencyAmount(p.FeeDrops),
			Sequence:           p.Sequence,
			LastLedgerSequence: p.LastLedgerSequence,
		},
		Amount:      types.XRPCurrencyAmount(p.AmountDrops),
		Destination: types.Address(p.Destination.Address()),
	}
	for _, memo := range p.Memos {
		payment.Memos = append(payment.Memos, types.MemoWrapper{Memo: types.Memo{
			MemoType: strings.ToUpper(hex.EncodeToString(memo.MemoType)),
			MemoData: strings.ToUpper(hex.EncodeToString(memo.MemoData)),
		}})
	}
	return payment.Flatten(), nil
}

// SigningBlob serializes the fields a signature covers, without the signing
// prefix, for a wallet's public key.
func SigningBlob(wallet *Wallet, payment Payment) ([]byte, error) {
	flattened, err := payment.Flatten()
	if err != nil {
		return nil, err
	}
	flattened["SigningPubKey"] = wallet.PublicKeyHex()

	encoded, err := binarycodec.EncodeForSigning(flattened)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment: %w", err)
	}
	return hex.DecodeString(strings.TrimPrefix(encoded, signingPrefixHex))
}

// SignPayment signs a payment and returns the signed blob with its
// transaction hash.
func SignPayment(wallet *Wallet, payment Payment) ([]byte, string, error) {
	flattened, err := payment.Flatten()
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode payment: %w", err)
	}

	blobHex, hash, err := wallet.sign(flattened)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign payment: %w", err)
	}
	blob, err := hex.DecodeString(blobHex)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode signed payment: %w", err)
	}
	return blob, hash, nil
}

// TransactionHash is the identifier rippled assigns to a signed blob.
func TransactionHash(signedBlob []byte) (string, error) {
	return xrplhash.SignTxBlob(strings.ToUpper(hex.EncodeToString(signedBlob)))
}
