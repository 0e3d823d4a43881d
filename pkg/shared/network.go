package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
	NetworkDevnet  = "devnet"
)

const (
	LedgerXRPL   = "xrpl"
	LedgerHedera = "hedera"
)

// NormalizeLedger validates a ledger name. Empty selects the XRP Ledger.
func NormalizeLedger(ledger string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(ledger))
	switch normalized {
	case "":
		return LedgerXRPL, nil
	case LedgerXRPL, LedgerHedera:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported ledger %q", ledger)
	}
}

// NormalizeNetwork validates a Hedera network name. Empty selects testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// NormalizeLedgerNetwork validates a network for a ledger. The XRP Ledger
// defaults to mainnet and also has a devnet; Hedera follows NormalizeNetwork.
func NormalizeLedgerNetwork(ledger string, network string) (string, error) {
	normalizedLedger, err := NormalizeLedger(ledger)
	if err != nil {
		return "", err
	}
	if normalizedLedger == LedgerHedera {
		return NormalizeNetwork(network)
	}

	normalized := strings.ToLower(strings.TrimSpace(network))
	switch normalized {
	case "":
		return NetworkMainnet, nil
	case NetworkMainnet, NetworkTestnet, NetworkDevnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported %s network %q", normalizedLedger, network)
	}
}

// NewHederaClient creates a new HederaClient.
func NewHederaClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}

	if normalized == NetworkMainnet {
		return hedera.ClientForMainnet(), nil
	}

	return hedera.ClientForTestnet(), nil
}
