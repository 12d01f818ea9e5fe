package lightgbm

import (
	"fmt"
	"math"
)

// Bits of a node's decision_type.
const (
	categoricalMask = 1
	defaultLeftMask = 2
)

// Missing value handling, stored in bits 2-3 of decision_type.
const (
	missingNone = 0
	missingZero = 1
	missingNaN  = 2
)

// zeroThreshold is the magnitude below which a value counts as zero.
const zeroThreshold = 1e-35

// tree is one regression tree in LightGBM's array layout. Internal
// nodes are indexed from 0; a negative child c refers to leaf ^c.
type tree struct {
	splitFeature  []int
	threshold     []float64
	decisionType  []uint8
	leftChild     []int
	rightChild    []int
	leafValue     []float64
	catBoundaries []int
	catThreshold  []uint32
}

func (t *tree) numLeaves() int {
	return len(t.leafValue)
}

// predict walks the tree for x and returns the leaf value.
func (t *tree) predict(x []float64) float64 {
	if t.numLeaves() == 1 {
		return t.leafValue[0]
	}
	node := 0
	for node >= 0 {
		node = t.next(node, x)
	}
	return t.leafValue[^node]
}

func (t *tree) next(node int, x []float64) int {
	fval := x[t.splitFeature[node]]
	dt := t.decisionType[node]
	if dt&categoricalMask != 0 {
		return t.categoricalDecision(node, fval)
	}
	return t.numericalDecision(node, fval, dt)
}

func (t *tree) numericalDecision(node int, fval float64, dt uint8) int {
	missing := (dt >> 2) & 3
	if math.IsNaN(fval) && missing != missingNaN {
		fval = 0
	}
	if (missing == missingZero && isZero(fval)) || (missing == missingNaN && math.IsNaN(fval)) {
		if dt&defaultLeftMask != 0 {
			return t.leftChild[node]
		}
		return t.rightChild[node]
	}
	if fval <= t.threshold[node] {
		return t.leftChild[node]
	}
	return t.rightChild[node]
}

// categoricalDecision sends a category left if it is in the node's
// bitset. NaN, negative categories (such as the unseen code) and
// categories beyond int32 go right.
func (t *tree) categoricalDecision(node int, fval float64) int {
	if math.IsNaN(fval) || fval < 0 || fval >= math.MaxInt32 {
		return t.rightChild[node]
	}
	cat := int(fval)
	idx := int(t.threshold[node])
	bits := t.catThreshold[t.catBoundaries[idx]:t.catBoundaries[idx+1]]
	if inBitset(bits, cat) {
		return t.leftChild[node]
	}
	return t.rightChild[node]
}

func isZero(v float64) bool {
	return v >= -zeroThreshold && v <= zeroThreshold
}

func inBitset(bits []uint32, pos int) bool {
	if pos < 0 {
		return false
	}
	word := pos / 32
	if word >= len(bits) {
		return false
	}
	return (bits[word]>>(uint(pos)%32))&1 == 1
}

// validate checks the arrays are consistent so predict cannot index out of range.
func (t *tree) validate(numFeatures int) error {
	leaves := t.numLeaves()
	if leaves == 0 {
		return fmt.Errorf("tree has no leaves")
	}
	internal := leaves - 1
	for name, n := range map[string]int{
		"split_feature": len(t.splitFeature),
		"threshold":     len(t.threshold),
		"decision_type": len(t.decisionType),
		"left_child":    len(t.leftChild),
		"right_child":   len(t.rightChild),
	} {
		if n != internal {
			return fmt.Errorf("%s has %d entries, want %d", name, n, internal)
		}
	}

	for node := 0; node < internal; node++ {
		if f := t.splitFeature[node]; f < 0 || f >= numFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", node, f, numFeatures)
		}
		for _, child := range []int{t.leftChild[node], t.rightChild[node]} {
			// Internal children always follow their parent, so walks terminate.
			if child >= internal || (child >= 0 && child <= node) || (child < 0 && ^child >= leaves) {
				return fmt.Errorf("node %d has child %d out of range", node, child)
			}
		}
		if t.decisionType[node]&categoricalMask != 0 {
			idx := int(t.threshold[node])
			if idx < 0 || idx+1 >= len(t.catBoundaries) {
				return fmt.Errorf("node %d refers to category set %d of %d", node, idx, len(t.catBoundaries)-1)
			}
			lo, hi := t.catBoundaries[idx], t.catBoundaries[idx+1]
			if lo < 0 || lo > hi || hi > len(t.catThreshold) {
				return fmt.Errorf("node %d has category bounds %d:%d", node, lo, hi)
			}
		}
	}
	return nil
}
