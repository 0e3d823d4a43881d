package verify

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	LedgerXRPL   = "xrpl"
	LedgerHedera = "hedera"
)

const DefaultXRPLExplorer = "https://livenet.xrpl.org/transactions/"

var (
	xrplTransactionPattern   = regexp.MustCompile(`^[0-9A-F]{64}$`)
	hederaTransactionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+@\d+\.\d+$`)
)

// Locator is a lookup reference for one anchored transaction.
type Locator struct {
	Ledger string
	ID     string
	URL    string
}

func (l Locator) String() string {
	return l.URL
}

// Explorer maps confirmation ids to explorer URLs for one ledger.
type Explorer struct {
	Ledger  string
	BaseURL string
}

var explorers = map[string]map[string]string{
	LedgerXRPL: {
		"mainnet": DefaultXRPLExplorer,
		"testnet": "https://testnet.xrpl.org/transactions/",
		"devnet":  "https://devnet.xrpl.org/transactions/",
	},
	LedgerHedera: {
		"mainnet": "https://hashscan.io/mainnet/transaction/",
		"testnet": "https://hashscan.io/testnet/transaction/",
	},
}

// DefaultExplorer is the XRP Ledger mainnet explorer.
func DefaultExplorer() Explorer {
	return Explorer{Ledger: LedgerXRPL, BaseURL: DefaultXRPLExplorer}
}

// ExplorerFor returns the public explorer for a ledger and network.
func ExplorerFor(ledgerKind string, network string) (Explorer, error) {
	normalizedLedger := strings.ToLower(strings.TrimSpace(ledgerKind))
	if normalizedLedger == "" {
		normalizedLedger = LedgerXRPL
	}
	networks, ok := explorers[normalizedLedger]
	if !ok {
		return Explorer{}, fmt.Errorf("unsupported ledger %q", ledgerKind)
	}

	normalizedNetwork := strings.ToLower(strings.TrimSpace(network))
	if normalizedNetwork == "" {
		normalizedNetwork = "mainnet"
	}
	baseURL, ok := networks[normalizedNetwork]
	if !ok {
		return Explorer{}, fmt.Errorf("unsupported %s network %q", normalizedLedger, network)
	}
	return Explorer{Ledger: normalizedLedger, BaseURL: baseURL}, nil
}

// WithBaseURL overrides the explorer URL prefix, for private or alternative
// explorers.
func (e Explorer) WithBaseURL(baseURL string) (Explorer, error) {
	trimmed := strings.TrimSpace(baseURL)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Explorer{}, fmt.Errorf("invalid explorer URL %q", baseURL)
	}
	if !strings.HasSuffix(trimmed, "/") {
		trimmed += "/"
	}
	e.BaseURL = trimmed
	return e, nil
}

// Locate validates id for the explorer's ledger and builds its reference.
func (e Explorer) Locate(id string) (Locator, error) {
	normalized, err := NormalizeID(e.Ledger, id)
	if err != nil {
		return Locator{}, err
	}
	return Locator{
		Ledger: e.Ledger,
		ID:     normalized,
		URL:    e.BaseURL + normalized,
	}, nil
}

// Locate builds a reference on the default XRP Ledger mainnet explorer.
func Locate(id string) (Locator, error) {
	return DefaultExplorer().Locate(id)
}

// NormalizeID checks the shape of a confirmation id. XRPL hashes are
// upper-cased.
func NormalizeID(ledgerKind string, id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", fmt.Errorf("confirmation id is required")
	}

	switch ledgerKind {
	case LedgerXRPL, "":
		upper := strings.ToUpper(trimmed)
		if !xrplTransactionPattern.MatchString(upper) {
			return "", fmt.Errorf("XRPL transaction hash must be 64 hex characters")
		}
		return upper, nil
	case LedgerHedera:
		if !hederaTransactionPattern.MatchString(trimmed) {
			return "", fmt.Errorf("Hedera transaction id must look like 0.0.1234@1700000000.123456789")
		}
		return trimmed, nil
	default:
		return "", fmt.Errorf("unsupported ledger %q", ledgerKind)
	}
}
