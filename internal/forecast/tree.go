package forecast

import (
	"math"
	"sort"
)

// minLeafRows is the smallest number of training rows a leaf may hold.
const minLeafRows = 5

// treeNode is one node of a regression tree. A leaf carries the mean
// target of its rows; an internal node routes on feature <= threshold.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// buildTree grows a variance-reduction regression tree over the given
// row indices down to the depth limit.
func buildTree(x [][]float64, target []float64, rows []int, depth int) *treeNode {
	if depth <= 0 || len(rows) < 2*minLeafRows {
		return leafNode(target, rows)
	}

	feature, threshold, ok := bestSplit(x, target, rows)
	if !ok {
		return leafNode(target, rows)
	}

	var left, right []int
	for _, r := range rows {
		if x[r][feature] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) < minLeafRows || len(right) < minLeafRows {
		return leafNode(target, rows)
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(x, target, left, depth-1),
		right:     buildTree(x, target, right, depth-1),
	}
}

// predict routes a feature vector to its leaf value.
func (n *treeNode) predict(vec []float64) float64 {
	for !n.leaf {
		if vec[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func leafNode(target []float64, rows []int) *treeNode {
	sum := 0.0
	for _, r := range rows {
		sum += target[r]
	}
	return &treeNode{leaf: true, value: sum / float64(len(rows))}
}

// bestSplit scans every feature for the split with the largest
// squared-error reduction, honoring the leaf-size minimum.
func bestSplit(x [][]float64, target []float64, rows []int) (int, float64, bool) {
	var totalSum, totalSq float64
	for _, r := range rows {
		totalSum += target[r]
		totalSq += target[r] * target[r]
	}
	n := float64(len(rows))
	baseSSE := totalSq - totalSum*totalSum/n

	bestFeature, bestThreshold := -1, 0.0
	bestSSE := baseSSE
	order := make([]int, len(rows))

	for f := range x[rows[0]] {
		copy(order, rows)
		sort.Slice(order, func(i, j int) bool {
			return x[order[i]][f] < x[order[j]][f]
		})

		var leftSum, leftSq float64
		for i := 0; i < len(order)-1; i++ {
			r := order[i]
			leftSum += target[r]
			leftSq += target[r] * target[r]

			if i+1 < minLeafRows || len(order)-i-1 < minLeafRows {
				continue
			}
			cur, next := x[r][f], x[order[i+1]][f]
			if cur == next {
				continue // cannot split between equal values
			}

			ln := float64(i + 1)
			rn := n - ln
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/ln) + (rightSq - rightSum*rightSum/rn)
			if sse < bestSSE-1e-12 {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 || math.IsNaN(bestThreshold) {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}
