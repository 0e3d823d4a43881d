// Package shared holds the ledger and network plumbing used by the anchor
// adapters and the CLI: ledger and network name normalization, Hedera client
// construction and private key parsing, and credential loading from the
// environment or a .env file.
//
// # Environment Variables
//
// XRP Ledger credentials are read from XRPL_SEED (or SENTINEL_SEED) and the
// optional XRPL_ACCOUNT, with MAINNET_, TESTNET_ and DEVNET_ scoped variants
// taking precedence for the selected network. Hedera operators are read from
// HEDERA_ACCOUNT_ID and HEDERA_PRIVATE_KEY plus their scoped variants.
// Variables already set in the process environment are never overridden by
// a .env file.
package shared
