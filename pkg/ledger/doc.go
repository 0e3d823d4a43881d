// Package ledger defines the narrow contract between the anchor submitter and
// a ledger client: submit a self-addressed payment carrying one memo and get
// back a confirmation identifier, or fail with a classified Error.
//
// Adapters for concrete ledgers live in their own packages (see pkg/xrpl and
// pkg/hcsledger) and map their native failures onto the three Kinds defined
// here.
package ledger
