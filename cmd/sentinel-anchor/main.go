// Command sentinel-anchor fingerprints graph snapshots or record sets and
// anchors the fingerprint on a public ledger.
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	application := newApp(os.Stdin, os.Stdout, os.Stderr)
	os.Exit(application.execute(os.Args[1:]))
}
