package xrpl

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

var rippleAlphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

var (
	ErrInvalidBase58Character = errors.New("invalid base58 character")
	ErrInvalidChecksum        = errors.New("invalid base58 checksum")
)

func base58Encode(input []byte) string {
	return base58.EncodeAlphabet(input, rippleAlphabet)
}

func base58Decode(input string) ([]byte, error) {
	decoded, err := base58.DecodeAlphabet(input, rippleAlphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase58Character, err)
	}
	return decoded, nil
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:4]
}

func encodeCheck(payload []byte) string {
	withChecksum := make([]byte, 0, len(payload)+4)
	withChecksum = append(withChecksum, payload...)
	withChecksum = append(withChecksum, checksum(payload)...)
	return base58Encode(withChecksum)
}

func decodeCheck(input string) ([]byte, error) {
	decoded, err := base58Decode(input)
	if err != nil {
		return nil, err
	}
	if len(decoded) < 5 {
		return nil, ErrInvalidChecksum
	}
	payload := decoded[:len(decoded)-4]
	if !bytes.Equal(checksum(payload), decoded[len(decoded)-4:]) {
		return nil, ErrInvalidChecksum
	}
	return payload, nil
}
