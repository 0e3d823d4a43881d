// Package merkle folds an ordered sequence of record digests into one root.
//
// Each level with an odd node count duplicates its last node, then adjacent
// nodes are paired left to right and hashed as SHA-256(left || right) until a
// single node remains. Leaves are never sorted: leaf order is part of what
// the root commits to.
//
// # Padding limitation
//
// Duplicate-last padding means [A, B, C] and [A, B, C, C] produce the same
// root, so a tree is not second-preimage resistant against duplicating its
// tail leaf. Callers that need to bind the leaf count must anchor it
// alongside the root.
//
// The empty sequence has the fixed root EmptyRoot(), the SHA-256 of the
// empty byte string.
package merkle
