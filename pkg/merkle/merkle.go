package merkle

import (
	"github.com/Sentinel-Intelligence/sentinel-public/pkg/digest"
)

// EmptyRoot is the root of an empty leaf sequence.
func EmptyRoot() digest.Digest {
	return digest.Sum([]byte{})
}

// HashNode computes a parent from its children in pairing order.
func HashNode(left, right digest.Digest) digest.Digest {
	payload := make([]byte, 0, 2*digest.Size)
	payload = append(payload, left[:]...)
	payload = append(payload, right[:]...)
	return digest.Sum(payload)
}

// Root folds leaves into a single digest. A single leaf is its own root.
func Root(leaves []digest.Digest) digest.Digest {
	if len(leaves) == 0 {
		return EmptyRoot()
	}

	level := make([]digest.Digest, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		level = nextLevel(level)
	}
	return level[0]
}

// Levels returns every level of the tree, leaves first and root last.
// Padding duplicates are not stored.
func Levels(leaves []digest.Digest) [][]digest.Digest {
	if len(leaves) == 0 {
		return [][]digest.Digest{{EmptyRoot()}}
	}

	level := make([]digest.Digest, len(leaves))
	copy(level, leaves)
	levels := [][]digest.Digest{level}
	for len(level) > 1 {
		level = nextLevel(level)
		levels = append(levels, level)
	}
	return levels
}

func nextLevel(level []digest.Digest) []digest.Digest {
	parents := make([]digest.Digest, 0, (len(level)+1)/2)
	for index := 0; index < len(level); index += 2 {
		left := level[index]
		right := left
		if index+1 < len(level) {
			right = level[index+1]
		}
		parents = append(parents, HashNode(left, right))
	}
	return parents
}
