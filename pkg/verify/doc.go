// Package verify turns a confirmation identifier into a reference a person
// or tool can follow to inspect the anchored transaction. It only checks the
// identifier's shape and never contacts a ledger.
package verify
