// Package mirror is a small Hedera Mirror Node REST client. The Hedera
// adapter uses it to resolve an operator's key type and to read anchored
// topic messages back by transaction id.
package mirror
