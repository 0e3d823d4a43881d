// Package hcsledger anchors commitment memos on the Hedera Consensus Service.
//
// Hedera has no self-payment memo, so the memo bytes travel as a topic
// message on a configured anchor topic and the memo type becomes the
// transaction memo. The confirmation id is the SDK transaction id.
package hcsledger
