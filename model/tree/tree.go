/*
Package tree implements CART classification tree with Gini splits
and cost-complexity pruning
*/
package tree

import (
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"gonum.org/v1/gonum/mat"
	"reflect"
	"sort"
)

/*
DecisionTree is a hungry CART classifier. Zero fields take defaults
MaxDepth=30, MinSplit=20, MinBucket=MinSplit/3, Cp=0.01
*/
type DecisionTree struct {
	MaxDepth  int     // maximal depth of any node, the root has depth 0
	MinSplit  int     // minimal count of rows in node to try a split
	MinBucket int     // minimal count of rows in any leaf
	Cp        float64 // complexity parameter, splits must reduce risk by Cp * root risk
	Predicted string  // name of predicted value, Predicted by default
}

/*
Fields returns references to hyper-parameters by names
*/
func (dt *DecisionTree) Fields() map[string]reflect.Value {
	return map[string]reflect.Value{
		"maxdepth":  reflect.ValueOf(&dt.MaxDepth),
		"minsplit":  reflect.ValueOf(&dt.MinSplit),
		"minbucket": reflect.ValueOf(&dt.MinBucket),
		"cp":        reflect.ValueOf(&dt.Cp),
	}
}

func (dt DecisionTree) defaults() DecisionTree {
	dt.MaxDepth = fu.Fnzi(dt.MaxDepth, 30)
	dt.MinSplit = fu.Fnzi(dt.MinSplit, 20)
	dt.MinBucket = fu.Maxi(fu.Fnzi(dt.MinBucket, (dt.MinSplit+1)/3), 1)
	if dt.Cp == 0 {
		dt.Cp = 0.01
	} else if dt.Cp < 0 {
		dt.Cp = 0
	}
	return dt
}

type node struct {
	feature     int     // encoded feature index, -1 for leaves
	split       float64 // rows with value less than split go left
	left, right int
	n, pos      int
	depth       int
	gain        float64 // weighted Gini decrease of the split
}

func (n node) risk() int {
	return fu.Mini(n.pos, n.n-n.pos)
}

func (n node) prob() float64 {
	return float64(n.pos) / float64(n.n)
}

/*
Model is a fitted decision tree
*/
type Model struct {
	enc       *tables.Encoder
	names     []string
	nodes     []node
	predicted string
}

/*
Feed binds the tree to the dataset
*/
func (dt DecisionTree) Feed(ds model.Dataset) model.FatModel {
	return func(w model.Workout) (*model.Report, error) {
		return dt.defaults().fit(ds, w)
	}
}

type grower struct {
	DecisionTree
	x     *mat.Dense
	y     []int
	nodes []node
}

func (dt DecisionTree) fit(ds model.Dataset, w model.Workout) (*model.Report, error) {
	train := ds.Train()
	enc, err := tables.NewEncoder(train, ds.Features)
	if err != nil {
		return nil, err
	}
	x, err := enc.Matrix(train)
	if err != nil {
		return nil, err
	}
	y, err := tables.Labels(train, ds.Label)
	if err != nil {
		return nil, err
	}
	if len(y) == 0 {
		return nil, zorros.Errorf("can't grow tree on empty dataset")
	}
	g := &grower{DecisionTree: dt, x: x, y: y}
	rows := make([]int, len(y))
	for i := range rows {
		rows[i] = i
	}
	g.grow(rows, 0)
	g.prune(0, dt.Cp*float64(g.nodes[0].risk()))
	m := &Model{enc: enc, names: enc.Names(), nodes: g.nodes, predicted: dt.Predicted}
	var history []float64
	if w != nil {
		risk := 0
		for _, l := range m.leaves() {
			risk += m.nodes[l].risk()
		}
		w.Complete(float64(risk) / float64(len(y)))
		history = w.History()
	}
	return model.Complete(ds, m, history)
}

func gini(n, pos int) float64 {
	if n == 0 {
		return 0
	}
	return 2 * float64(pos) * float64(n-pos) / float64(n)
}

func (g *grower) grow(rows []int, depth int) int {
	nd := node{feature: -1, n: len(rows), depth: depth}
	for _, i := range rows {
		nd.pos += g.y[i]
	}
	k := len(g.nodes)
	g.nodes = append(g.nodes, nd)
	if nd.n < g.MinSplit || depth >= g.MaxDepth || nd.pos == 0 || nd.pos == nd.n {
		return k
	}
	feature, split, gain := g.best(rows, nd)
	if feature < 0 {
		return k
	}
	var left, right []int
	for _, i := range rows {
		if g.x.At(i, feature) < split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	l := g.grow(left, depth+1)
	r := g.grow(right, depth+1)
	g.nodes[k].feature, g.nodes[k].split, g.nodes[k].gain = feature, split, gain
	g.nodes[k].left, g.nodes[k].right = l, r
	return k
}

func (g *grower) best(rows []int, nd node) (feature int, split, gain float64) {
	feature = -1
	parent := gini(nd.n, nd.pos)
	_, p := g.x.Dims()
	sorted := append([]int{}, rows...)
	for j := 0; j < p; j++ {
		sort.SliceStable(sorted, func(a, b int) bool { return g.x.At(sorted[a], j) < g.x.At(sorted[b], j) })
		pos := 0
		for i := 0; i < len(sorted)-1; i++ {
			pos += g.y[sorted[i]]
			a, b := g.x.At(sorted[i], j), g.x.At(sorted[i+1], j)
			nl := i + 1
			if a == b || nl < g.MinBucket || nd.n-nl < g.MinBucket {
				continue
			}
			d := parent - gini(nl, pos) - gini(nd.n-nl, nd.pos-pos)
			if d > gain+1e-12 {
				feature, split, gain = j, (a+b)/2, d
			}
		}
	}
	return
}

// prune collapses splits not reducing risk by alpha per additional leaf,
// returns risk and count of leaves of the pruned subtree
func (g *grower) prune(k int, alpha float64) (int, int) {
	nd := g.nodes[k]
	if nd.feature < 0 {
		return nd.risk(), 1
	}
	lr, ll := g.prune(nd.left, alpha)
	rr, rl := g.prune(nd.right, alpha)
	risk, leaves := lr+rr, ll+rl
	if float64(nd.risk()-risk)/float64(leaves-1) < alpha {
		g.nodes[k].feature = -1
		return nd.risk(), 1
	}
	return risk, leaves
}

func (m *Model) leaves() []int {
	r := []int{}
	var walk func(int)
	walk = func(k int) {
		if m.nodes[k].feature < 0 {
			r = append(r, k)
			return
		}
		walk(m.nodes[k].left)
		walk(m.nodes[k].right)
	}
	walk(0)
	return r
}

func (m *Model) Features() []string {
	return m.enc.Features()
}

func (m *Model) Predicted() string {
	if m.predicted == "" {
		return "Predicted"
	}
	return m.predicted
}

func (m *Model) Threshold() float64 {
	return 0.5
}

/*
Predict returns positive class fraction of the leaf every row falls into
*/
func (m *Model) Predict(t *tables.Table) ([]float64, error) {
	x, err := m.enc.Matrix(t)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	r := make([]float64, n)
	for i := range r {
		k := 0
		for m.nodes[k].feature >= 0 {
			if x.At(i, m.nodes[k].feature) < m.nodes[k].split {
				k = m.nodes[k].left
			} else {
				k = m.nodes[k].right
			}
		}
		r[i] = m.nodes[k].prob()
	}
	return r, nil
}
