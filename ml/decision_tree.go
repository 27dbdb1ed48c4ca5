package ml

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DecisionTree is a flattened binary tree. Node 0 is the root; children are
// referenced by index.
type DecisionTree struct {
	nodes   []TreeNode
	classes int
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`

	// Value holds the training sample count per class that reached the leaf.
	Value []float64 `json:"value,omitempty"`
}

type treeParams struct {
	Classes int        `json:"classes"`
	Nodes   []TreeNode `json:"nodes"`
}

func NewDecisionTree(nodes []TreeNode, classes int) (*DecisionTree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	if classes <= 0 {
		return nil, errors.New("class count must be positive")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if node.ClassLabel < 0 || node.ClassLabel >= classes {
				return nil, fmt.Errorf("node %d: class label %d out of range", i, node.ClassLabel)
			}
			if len(node.Value) != 0 && len(node.Value) != classes {
				return nil, fmt.Errorf("node %d: %d class counts for %d classes", i, len(node.Value), classes)
			}
			continue
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) || node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid children %d/%d", i, node.LeftChild, node.RightChild)
		}
	}
	return &DecisionTree{nodes: nodes, classes: classes}, nil
}

func (dt *DecisionTree) NumClasses() int {
	return dt.classes
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	probs, err := dt.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return ArgMax(probs), nil
}

func (dt *DecisionTree) PredictProba(features []float64) ([]float64, error) {
	leaf, err := dt.leaf(features)
	if err != nil {
		return nil, err
	}
	probs := make([]float64, dt.classes)
	if len(leaf.Value) == 0 {
		probs[leaf.ClassLabel] = 1
		return probs, nil
	}
	copy(probs, leaf.Value)
	if err := Normalize(probs); err != nil {
		return nil, err
	}
	return probs, nil
}

func (dt *DecisionTree) leaf(features []float64) (TreeNode, error) {
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func decodeDecisionTree(raw json.RawMessage) (Classifier, error) {
	var params treeParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return NewDecisionTree(params.Nodes, params.Classes)
}
