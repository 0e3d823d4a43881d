package shared

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/ledger"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// HederaOperator is a Hedera account allowed to pay for anchor messages.
type HederaOperator struct {
	AccountID  string
	PrivateKey string
	Network    string
}

// XRPLCredentials is an XRP Ledger family seed and, optionally, the address
// it is expected to derive.
type XRPLCredentials struct {
	Account string
	Seed    string
	Network string
}

var dotenvLoadOnce sync.Once

var (
	ErrMissingAccountID  = errors.New("HEDERA_ACCOUNT_ID is required")
	ErrMissingPrivateKey = errors.New("HEDERA_PRIVATE_KEY is required")
)

// HederaOperatorFromEnv reads operator credentials for network. An empty
// network falls back to HEDERA_NETWORK, then testnet.
func HederaOperatorFromEnv(network string) (HederaOperator, error) {
	loadDotEnvIfPresent()

	if strings.TrimSpace(network) == "" {
		network = firstNonEmptyEnv("HEDERA_NETWORK", "NETWORK")
	}
	normalizedNetwork, err := NormalizeNetwork(network)
	if err != nil {
		return HederaOperator{}, err
	}

	accountID := firstNonEmptyEnv("HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "OPERATOR_ID")
	privateKey := firstNonEmptyEnv("HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "OPERATOR_KEY")

	prefix := strings.ToUpper(normalizedNetwork) + "_"
	if scopedAccount := firstNonEmptyEnv(
		prefix+"HEDERA_ACCOUNT_ID",
		prefix+"HEDERA_OPERATOR_ID",
		prefix+"OPERATOR_ID",
	); scopedAccount != "" {
		accountID = scopedAccount
	}
	if scopedKey := firstNonEmptyEnv(
		prefix+"HEDERA_PRIVATE_KEY",
		prefix+"HEDERA_OPERATOR_KEY",
		prefix+"OPERATOR_KEY",
	); scopedKey != "" {
		privateKey = scopedKey
	}

	if privateKey == "" {
		return HederaOperator{}, ErrMissingPrivateKey
	}
	if accountID == "" {
		return HederaOperator{}, ErrMissingAccountID
	}

	return HederaOperator{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    normalizedNetwork,
	}, nil
}

// XRPLCredentialsFromEnv reads a family seed for network. A missing seed is
// not an error: the returned credentials simply have no Seed.
func XRPLCredentialsFromEnv(network string) (XRPLCredentials, error) {
	loadDotEnvIfPresent()

	if strings.TrimSpace(network) == "" {
		network = firstNonEmptyEnv("XRPL_NETWORK")
	}
	normalizedNetwork, err := NormalizeLedgerNetwork(LedgerXRPL, network)
	if err != nil {
		return XRPLCredentials{}, err
	}

	seed := firstNonEmptyEnv("XRPL_SEED", "SENTINEL_SEED", "XRPL_SECRET")
	account := firstNonEmptyEnv("XRPL_ACCOUNT", "SENTINEL_ACCOUNT")

	prefix := strings.ToUpper(normalizedNetwork) + "_"
	if scopedSeed := firstNonEmptyEnv(prefix+"XRPL_SEED", prefix+"XRPL_SECRET"); scopedSeed != "" {
		seed = scopedSeed
	}
	if scopedAccount := firstNonEmptyEnv(prefix + "XRPL_ACCOUNT"); scopedAccount != "" {
		account = scopedAccount
	}

	return XRPLCredentials{
		Account: account,
		Seed:    seed,
		Network: normalizedNetwork,
	}, nil
}

// CredentialsFromEnv returns submission credentials for ledgerName, or nil
// when the environment holds no secret for it.
func CredentialsFromEnv(ledgerName string, network string) (*ledger.Credentials, error) {
	normalizedLedger, err := NormalizeLedger(ledgerName)
	if err != nil {
		return nil, err
	}

	if normalizedLedger == LedgerHedera {
		operator, err := HederaOperatorFromEnv(network)
		if errors.Is(err, ErrMissingPrivateKey) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &ledger.Credentials{Account: operator.AccountID, Secret: operator.PrivateKey}, nil
	}

	credentials, err := XRPLCredentialsFromEnv(network)
	if err != nil {
		return nil, err
	}
	if credentials.Seed == "" {
		return nil, nil
	}
	return &ledger.Credentials{Account: credentials.Account, Secret: credentials.Seed}, nil
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)

		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		seenCandidates := make(map[string]struct{})
		for _, start := range startPaths {
			current := start
			for {
				candidate := filepath.Join(current, ".env")
				if _, exists := seenCandidates[candidate]; !exists {
					seenCandidates[candidate] = struct{}{}
					if _, statErr := os.Stat(candidate); statErr == nil {
						loadDotEnvFile(candidate)
						return
					}
				}

				parent := filepath.Dir(current)
				if parent == current {
					break
				}
				current = parent
			}
		}
	})
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}

		separator := strings.Index(line, "=")
		if separator <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:separator])
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		value := strings.TrimSpace(line[separator+1:])
		if len(value) >= 2 {
			first := value[0]
			last := value[len(value)-1]
			if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParsePrivateKey parses a Hedera private key, trying ED25519 first, then
// ECDSA, then the SDK's generic DER parser.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}
