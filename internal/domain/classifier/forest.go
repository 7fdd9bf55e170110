package classifier

import (
	"fmt"
)

// leafChild marks a node without children.
const leafChild = -1

// Node is one split or leaf of a decision tree. Samples with
// x[Feature] <= Threshold go Left. Leaves carry per-class weights in Value.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

func (n Node) leaf() bool { return n.Left == leafChild && n.Right == leafChild }

// Tree is a flat decision tree; Nodes[0] is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is a random forest whose class probabilities are the mean of the
// normalised leaf distributions across trees.
type Forest struct {
	Name      string   `json:"name,omitempty"`
	NFeatures int      `json:"n_features"`
	Classes   []int    `json:"classes"`
	Features  []string `json:"feature_names,omitempty"`
	Trees     []Tree   `json:"trees"`
}

// Validate checks the forest is well formed. Children must come after
// their parent so traversal always terminates.
func (f *Forest) Validate() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("%w: n_features must be positive", ErrInvalidModel)
	}
	if len(f.Classes) == 0 {
		return fmt.Errorf("%w: no classes", ErrInvalidModel)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidModel)
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("%w: tree %d has no nodes", ErrInvalidModel, ti)
		}
		for ni, n := range t.Nodes {
			if n.leaf() {
				if len(n.Value) != len(f.Classes) {
					return fmt.Errorf("%w: tree %d leaf %d has %d values, want %d", ErrInvalidModel, ti, ni, len(n.Value), len(f.Classes))
				}
				var total float64
				for _, v := range n.Value {
					if v < 0 {
						return fmt.Errorf("%w: tree %d leaf %d has negative weight", ErrInvalidModel, ti, ni)
					}
					total += v
				}
				if total == 0 {
					return fmt.Errorf("%w: tree %d leaf %d has zero weight", ErrInvalidModel, ti, ni)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= f.NFeatures {
				return fmt.Errorf("%w: tree %d node %d uses feature %d", ErrInvalidModel, ti, ni, n.Feature)
			}
			for _, c := range []int{n.Left, n.Right} {
				if c <= ni || c >= len(t.Nodes) {
					return fmt.Errorf("%w: tree %d node %d has child %d", ErrInvalidModel, ti, ni, c)
				}
			}
		}
	}
	return nil
}

// PredictProbabilities returns the mean class distribution over all trees,
// ordered like Classes.
func (f *Forest) PredictProbabilities(x []float64) ([]float64, error) {
	if len(x) != f.NFeatures {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrInvalidInput, len(x), f.NFeatures)
	}
	probs := make([]float64, len(f.Classes))
	for _, t := range f.Trees {
		leaf := t.leafFor(x)
		var total float64
		for _, v := range leaf.Value {
			total += v
		}
		for i, v := range leaf.Value {
			probs[i] += v / total
		}
	}
	n := float64(len(f.Trees))
	for i := range probs {
		probs[i] /= n
	}
	return probs, nil
}

// PredictLabel returns the class code of the most probable class. Ties go
// to the lowest class index.
func (f *Forest) PredictLabel(x []float64) (int, error) {
	probs, err := f.PredictProbabilities(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return f.Classes[best], nil
}

func (t Tree) leafFor(x []float64) Node {
	n := t.Nodes[0]
	for !n.leaf() {
		if x[n.Feature] <= n.Threshold {
			n = t.Nodes[n.Left]
		} else {
			n = t.Nodes[n.Right]
		}
	}
	return n
}
