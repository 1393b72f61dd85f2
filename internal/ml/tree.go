// Package ml implements the trainable sub-models and the soft-voting
// ensemble that combines them. Everything here operates on the dense combined
// feature layout produced by the features package; class indexes follow the
// ensemble's sorted category list.
package ml

import (
	"math/rand"
	"sort"
)

// TreeNode is one node of a CART tree. Leaves carry a class distribution;
// internal nodes route on feature <= threshold.
type TreeNode struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t"`
	Left      *TreeNode `json:"l,omitempty"`
	Right     *TreeNode `json:"r,omitempty"`
	Probs     []float64 `json:"p,omitempty"`
}

// Tree is a single CART classification tree.
type Tree struct {
	Root    *TreeNode `json:"root"`
	Classes int       `json:"classes"`
}

type treeConfig struct {
	maxDepth    int
	minLeaf     int
	maxFeatures int // 0 means consider every feature
}

// growTree fits a CART tree with gini splits over the sample index set. The
// rng drives feature subsampling only; given the same seed the result is
// deterministic.
func growTree(X [][]float64, y []int, idx []int, classes int, cfg treeConfig, rng *rand.Rand) *Tree {
	return &Tree{
		Root:    growNode(X, y, idx, classes, cfg, rng, 0),
		Classes: classes,
	}
}

func growNode(X [][]float64, y []int, idx []int, classes int, cfg treeConfig, rng *rand.Rand, depth int) *TreeNode {
	counts := classCounts(y, idx, classes)
	if isPure(counts) || (cfg.maxDepth > 0 && depth >= cfg.maxDepth) || len(idx) < 2*cfg.minLeaf {
		return leaf(counts, len(idx))
	}

	feature, threshold, ok := bestSplit(X, y, idx, classes, cfg, rng)
	if !ok {
		return leaf(counts, len(idx))
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < cfg.minLeaf || len(right) < cfg.minLeaf {
		return leaf(counts, len(idx))
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growNode(X, y, left, classes, cfg, rng, depth+1),
		Right:     growNode(X, y, right, classes, cfg, rng, depth+1),
	}
}

// bestSplit sweeps sorted feature values accumulating class counts, so each
// candidate feature costs O(n log n) rather than O(n^2).
func bestSplit(X [][]float64, y []int, idx []int, classes int, cfg treeConfig, rng *rand.Rand) (int, float64, bool) {
	numFeatures := len(X[idx[0]])
	candidates := featureCandidates(numFeatures, cfg.maxFeatures, rng)

	type sample struct {
		value float64
		class int
	}

	bestGini := gini(classCounts(y, idx, classes), len(idx))
	bestFeature, bestThreshold := -1, 0.0
	found := false
	total := float64(len(idx))

	samples := make([]sample, len(idx))
	for _, f := range candidates {
		for i, s := range idx {
			samples[i] = sample{value: X[s][f], class: y[s]}
		}
		sort.Slice(samples, func(a, b int) bool { return samples[a].value < samples[b].value })
		if samples[0].value == samples[len(samples)-1].value {
			continue
		}

		leftCounts := make([]int, classes)
		rightCounts := classCounts(y, idx, classes)
		for i := 0; i < len(samples)-1; i++ {
			leftCounts[samples[i].class]++
			rightCounts[samples[i].class]--
			if samples[i].value == samples[i+1].value {
				continue
			}
			nLeft := float64(i + 1)
			nRight := total - nLeft
			weighted := (nLeft*gini(leftCounts, i+1) + nRight*gini(rightCounts, len(samples)-i-1)) / total
			if weighted < bestGini-1e-12 {
				bestGini = weighted
				bestFeature = f
				bestThreshold = (samples[i].value + samples[i+1].value) / 2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func featureCandidates(numFeatures, maxFeatures int, rng *rand.Rand) []int {
	if maxFeatures <= 0 || maxFeatures >= numFeatures {
		all := make([]int, numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(numFeatures)
	return perm[:maxFeatures]
}

func classCounts(y []int, idx []int, classes int) []int {
	counts := make([]int, classes)
	for _, i := range idx {
		counts[y[i]]++
	}
	return counts
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func leaf(counts []int, total int) *TreeNode {
	probs := make([]float64, len(counts))
	if total > 0 {
		for i, c := range counts {
			probs[i] = float64(c) / float64(total)
		}
	} else {
		for i := range probs {
			probs[i] = 1 / float64(len(probs))
		}
	}
	return &TreeNode{Probs: probs}
}

// PredictProba walks the tree and returns the leaf class distribution.
func (t *Tree) PredictProba(x []float64) []float64 {
	node := t.Root
	for node.Probs == nil {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Probs
}

// PredictClass returns the arg-max leaf class.
func (t *Tree) PredictClass(x []float64) int {
	return ArgMax(t.PredictProba(x))
}
