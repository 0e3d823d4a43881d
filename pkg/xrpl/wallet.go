package xrpl

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"
	xrplcrypto "github.com/Peersyst/xrpl-go/pkg/crypto"
	xrplwallet "github.com/Peersyst/xrpl-go/xrpl/wallet"
)

type KeyType string

const (
	KeyTypeSecp256k1 KeyType = "secp256k1"
	KeyTypeEd25519   KeyType = "ed25519"
)

const accountIDSize = addresscodec.AccountAddressLength

var ed25519SeedPrefix = []byte{0x01, 0xE1, 0x4B}

var ErrInvalidSeed = errors.New("invalid XRPL family seed")

// AccountID is the 160-bit account identifier behind a classic address.
type AccountID [accountIDSize]byte

// Address returns the classic r-address.
func (a AccountID) Address() string {
	return encodeCheck(append([]byte{addresscodec.AccountAddressPrefix}, a[:]...))
}

func (a AccountID) String() string {
	return a.Address()
}

// DecodeAddress parses a classic r-address and checks its checksum.
func DecodeAddress(address string) (AccountID, error) {
	payload, err := decodeCheck(strings.TrimSpace(address))
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid XRPL address: %w", err)
	}
	if len(payload) != accountIDSize+1 || payload[0] != addresscodec.AccountAddressPrefix {
		return AccountID{}, fmt.Errorf("invalid XRPL address: unexpected payload")
	}

	var accountID AccountID
	copy(accountID[:], payload[1:])
	return accountID, nil
}

// Wallet holds the master key pair of a family seed.
type Wallet struct {
	keyType   KeyType
	accountID AccountID
	signer    xrplwallet.Wallet
}

// WalletFromSeed derives the master key pair of a family seed. Seeds that
// start with "sEd" use ed25519, others secp256k1.
func WalletFromSeed(seed string) (*Wallet, error) {
	trimmed := strings.TrimSpace(seed)
	payload, err := decodeCheck(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	var keyType KeyType
	switch {
	case len(payload) == len(ed25519SeedPrefix)+addresscodec.FamilySeedLength && bytes.HasPrefix(payload, ed25519SeedPrefix):
		keyType = KeyTypeEd25519
	case len(payload) == 1+addresscodec.FamilySeedLength && payload[0] == addresscodec.FamilySeedPrefix:
		keyType = KeyTypeSecp256k1
	default:
		return nil, fmt.Errorf("%w: unexpected version or length", ErrInvalidSeed)
	}

	signer, err := xrplwallet.FromSeed(trimmed, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	accountID, err := DecodeAddress(signer.ClassicAddress.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	return &Wallet{keyType: keyType, accountID: accountID, signer: signer}, nil
}

// EncodeSeed renders entropy as a family seed for keyType.
func EncodeSeed(entropy []byte, keyType KeyType) (string, error) {
	switch keyType {
	case KeyTypeEd25519:
		return addresscodec.EncodeSeed(entropy, xrplcrypto.ED25519())
	case KeyTypeSecp256k1, "":
		return addresscodec.EncodeSeed(entropy, xrplcrypto.SECP256K1())
	default:
		return "", fmt.Errorf("unsupported key type %q", keyType)
	}
}

func (w *Wallet) KeyType() KeyType {
	return w.keyType
}

// PublicKey returns the signing public key as carried in SigningPubKey.
func (w *Wallet) PublicKey() []byte {
	decoded, err := hex.DecodeString(w.signer.PublicKey)
	if err != nil {
		return nil
	}
	return decoded
}

// PublicKeyHex returns the upper-case hex public key.
func (w *Wallet) PublicKeyHex() string {
	return strings.ToUpper(w.signer.PublicKey)
}

func (w *Wallet) AccountID() AccountID {
	return w.accountID
}

func (w *Wallet) Address() string {
	return w.signer.ClassicAddress.String()
}

// sign fills SigningPubKey and TxnSignature on a flattened transaction and
// returns the signed blob with its hash, both upper-case hex.
func (w *Wallet) sign(transaction map[string]any) (string, string, error) {
	return w.signer.Sign(transaction)
}
