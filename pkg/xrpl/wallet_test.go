package xrpl

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

const (
	genesisSeed      = "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"
	genesisAddress   = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	genesisPublicKey = "0330E7FC9D56BB25D6893BA3F317AE5BCF33B3291BD63DB32654A313222F7FD020"
	genesisAccountID = "B5F762798A53D543A014CAF8B297CFF8F2F937E8"

	ed25519Seed      = "sEdSKaCy2JT7JaM7v95H9SxkhP9wS2r"
	ed25519Address   = "rLUEXYuLiQptky37CqLcm9USQpPiz5rkpD"
	ed25519PublicKey = "ED01FA53FA5A7E77798F882ECE20B1ABC00BB358A9E55A202D0D0676BD0CE37A63"
)

func TestWalletFromSeed(t *testing.T) {
	testCases := []struct {
		name      string
		seed      string
		keyType   KeyType
		address   string
		publicKey string
	}{
		{name: "secp256k1 genesis", seed: genesisSeed, keyType: KeyTypeSecp256k1, address: genesisAddress, publicKey: genesisPublicKey},
		{name: "ed25519", seed: ed25519Seed, keyType: KeyTypeEd25519, address: ed25519Address, publicKey: ed25519PublicKey},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			wallet, err := WalletFromSeed(testCase.seed)
			if err != nil {
				t.Fatalf("WalletFromSeed failed: %v", err)
			}
			if wallet.KeyType() != testCase.keyType {
				t.Fatalf("unexpected key type: %s", wallet.KeyType())
			}
			if wallet.Address() != testCase.address {
				t.Fatalf("unexpected address: %s", wallet.Address())
			}
			if wallet.PublicKeyHex() != testCase.publicKey {
				t.Fatalf("unexpected public key: %s", wallet.PublicKeyHex())
			}
		})
	}
}

func TestWalletAccountID(t *testing.T) {
	wallet, err := WalletFromSeed(genesisSeed)
	if err != nil {
		t.Fatalf("WalletFromSeed failed: %v", err)
	}
	accountID := wallet.AccountID()
	if strings.ToUpper(hex.EncodeToString(accountID[:])) != genesisAccountID {
		t.Fatalf("unexpected account id: %X", accountID[:])
	}

	decoded, err := DecodeAddress(genesisAddress)
	if err != nil {
		t.Fatalf("DecodeAddress failed: %v", err)
	}
	if decoded != accountID {
		t.Fatalf("decoded address does not match account id")
	}
}

func TestWalletFromSeedRejectsInvalidInput(t *testing.T) {
	testCases := []string{
		"",
		"snoPBrXtMeMyMHUVTgbuqAfg1SUTc",
		"s0000000000000000000000000000",
		"snoPBrXtMeMyMHUVTgbuqAfg1SUTé",
		genesisAddress,
	}
	for _, seed := range testCases {
		if _, err := WalletFromSeed(seed); !errors.Is(err, ErrInvalidSeed) {
			t.Fatalf("expected ErrInvalidSeed for %q, got %v", seed, err)
		}
	}
}

func TestEncodeSeed(t *testing.T) {
	entropy := make([]byte, 16)
	for index := range entropy {
		entropy[index] = byte(index + 1)
	}
	encoded, err := EncodeSeed(entropy, KeyTypeEd25519)
	if err != nil {
		t.Fatalf("EncodeSeed failed: %v", err)
	}
	if encoded != ed25519Seed {
		t.Fatalf("unexpected seed: %s", encoded)
	}

	if _, err := EncodeSeed(entropy[:4], KeyTypeSecp256k1); err == nil {
		t.Fatalf("expected short entropy to fail")
	}
}

func TestWalletPublicKeyIsCopied(t *testing.T) {
	wallet, err := WalletFromSeed(genesisSeed)
	if err != nil {
		t.Fatalf("WalletFromSeed failed: %v", err)
	}
	publicKey := wallet.PublicKey()
	publicKey[0] ^= 0xff
	if bytes.Equal(publicKey, wallet.PublicKey()) {
		t.Fatalf("expected PublicKey to return a copy")
	}
}

func TestDecodeAddressRejectsInvalid(t *testing.T) {
	for _, address := range []string{"", "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTi", "0xabc", genesisSeed} {
		if _, err := DecodeAddress(address); err == nil {
			t.Fatalf("expected error for %q", address)
		}
	}
}

func TestBase58RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{0x00},
		{0x00, 0x00, 0x01},
		{0xff, 0xee, 0xdd},
		[]byte("sentinel"),
	}
	for _, input := range inputs {
		decoded, err := base58Decode(base58Encode(input))
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if !bytes.Equal(decoded, input) {
			t.Fatalf("round trip mismatch: %x vs %x", decoded, input)
		}
	}
	if _, err := base58Decode("0OIl"); !errors.Is(err, ErrInvalidBase58Character) {
		t.Fatalf("expected invalid character error, got %v", err)
	}
}
