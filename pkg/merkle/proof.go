package merkle

import (
	"fmt"

	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
)

type ProofStep struct {
	Sibling digest.Digest `json:"sibling"`
	// Left reports that the sibling sits to the left of the running hash.
	Left bool `json:"left"`
}

type Proof struct {
	LeafIndex int         `json:"leaf_index"`
	LeafCount int         `json:"leaf_count"`
	Steps     []ProofStep `json:"steps"`
}

// Prove builds an inclusion proof for the leaf at index. A node paired with
// its own padding duplicate gets itself as sibling.
func Prove(leaves []digest.Digest, index int) (Proof, error) {
	if len(leaves) == 0 {
		return Proof{}, fmt.Errorf("cannot prove inclusion in an empty tree")
	}
	if index < 0 || index >= len(leaves) {
		return Proof{}, fmt.Errorf("leaf index %d out of range [0, %d)", index, len(leaves))
	}

	proof := Proof{LeafIndex: index, LeafCount: len(leaves)}
	levels := Levels(leaves)
	position := index
	for _, level := range levels[:len(levels)-1] {
		var step ProofStep
		if position%2 == 1 {
			step = ProofStep{Sibling: level[position-1], Left: true}
		} else if position+1 < len(level) {
			step = ProofStep{Sibling: level[position+1]}
		} else {
			step = ProofStep{Sibling: level[position]}
		}
		proof.Steps = append(proof.Steps, step)
		position /= 2
	}

	return proof, nil
}

// VerifyProof recomputes the root from a leaf and its proof.
func VerifyProof(leaf digest.Digest, proof Proof, root digest.Digest) bool {
	if proof.LeafCount <= 0 || proof.LeafIndex < 0 || proof.LeafIndex >= proof.LeafCount {
		return false
	}
	if len(proof.Steps) != proofDepth(proof.LeafCount) {
		return false
	}

	current := leaf
	position := proof.LeafIndex
	for _, step := range proof.Steps {
		if step.Left != (position%2 == 1) {
			return false
		}
		if step.Left {
			current = HashNode(step.Sibling, current)
		} else {
			current = HashNode(current, step.Sibling)
		}
		position /= 2
	}
	return current == root
}

func proofDepth(leafCount int) int {
	depth := 0
	for width := leafCount; width > 1; width = (width + 1) / 2 {
		depth++
	}
	return depth
}
