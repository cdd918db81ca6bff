package tree

import (
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/tables"
	"gotest.tools/assert"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func synthetic(t *testing.T, n int, noise float64, seed int64) model.Dataset {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	z := make([]float64, n)
	c := make([]string, n)
	y := make([]string, n)
	for i := range x {
		x[i] = rng.Float64()
		z[i] = rng.Float64()
		c[i] = []string{"u", "v"}[rng.Intn(2)]
		y[i] = "0"
		if x[i] > 0.6 {
			y[i] = "1"
		}
		if rng.Float64() < noise {
			y[i] = map[string]string{"0": "1", "1": "0"}[y[i]]
		}
	}
	cc, err := tables.Categories("c", c, "u", "v")
	assert.NilError(t, err)
	cy, err := tables.Categories("y", y, "0", "1")
	assert.NilError(t, err)
	q := tables.LuckyNew(tables.Floats("x", x), tables.Floats("z", z), cc, cy)
	return model.Dataset{Source: q, Label: "y", Features: []string{"x", "z", "c"}}
}

func Test_Threshold(t *testing.T) {
	ds := synthetic(t, 400, 0, 1)
	r := DecisionTree{}.Feed(ds).LuckyTrain(model.Training{})
	m := r.Model.(*Model)
	assert.Equal(t, m.Leaves(), 2)
	assert.Equal(t, m.Depth(), 1)
	assert.Assert(t, math.Abs(m.nodes[0].split-0.6) < 0.02)
	assert.Equal(t, r.Train.Accuracy(), 1.0)
	assert.Equal(t, r.Loss, 0.0)
	imp := m.Importance()
	assert.Equal(t, len(imp), 1)
	assert.Equal(t, imp[0].Name, "x")
	assert.Equal(t, imp[0].Value, 100.0)
	rules := m.Rules()
	assert.Equal(t, len(rules), 2)
	assert.Assert(t, strings.HasPrefix(rules[0], "x < "), rules[0])
	assert.Assert(t, strings.Contains(rules[0], "=> 0.000"), rules[0])
	assert.Assert(t, strings.Contains(rules[1], "=> 1.000"), rules[1])

	cc, _ := tables.Categories("c", []string{"v", "u"})
	q := tables.LuckyNew(tables.Floats("x", []float64{0.9, 0.1}), tables.Floats("z", []float64{0, 0}), cc)
	p, err := m.Predict(q)
	assert.NilError(t, err)
	assert.DeepEqual(t, p, []float64{1, 0})
}

func Test_Pruning(t *testing.T) {
	ds := synthetic(t, 400, 0.1, 2)
	pruned := DecisionTree{}.Feed(ds).LuckyTrain(model.Training{}).Model.(*Model)
	full := DecisionTree{Cp: -1, MinSplit: 2, MinBucket: 1}.Feed(ds).LuckyTrain(model.Training{}).Model.(*Model)
	stump := DecisionTree{Cp: 0.99}.Feed(ds).LuckyTrain(model.Training{}).Model.(*Model)
	assert.Assert(t, full.Leaves() > pruned.Leaves())
	assert.Assert(t, pruned.Leaves() >= 2)
	assert.Equal(t, stump.Leaves(), 1)
	assert.Assert(t, strings.HasPrefix(stump.Rules()[0], "(all) => "))
	assert.Equal(t, len(stump.Importance()), 0)
	assert.Equal(t, len(full.Rules()), full.Leaves())
}

func Test_Limits(t *testing.T) {
	ds := synthetic(t, 400, 0.2, 3)
	m := DecisionTree{MaxDepth: 1, Cp: -1}.Feed(ds).LuckyTrain(model.Training{}).Model.(*Model)
	assert.Assert(t, m.Depth() <= 1)
	b := DecisionTree{MinBucket: 50, Cp: -1}.Feed(ds).LuckyTrain(model.Training{}).Model.(*Model)
	for _, l := range b.leaves() {
		assert.Assert(t, b.nodes[l].n >= 50)
	}
}

func Test_Fields(t *testing.T) {
	dt := DecisionTree{}
	model.Params{"cp": 0.05, "maxdepth": 4.0}.Apply(dt.Fields())
	assert.Equal(t, dt.Cp, 0.05)
	assert.Equal(t, dt.MaxDepth, 4)
	d := DecisionTree{MinSplit: 30}.defaults()
	assert.Equal(t, d.MinBucket, 10)
	assert.Equal(t, d.MaxDepth, 30)
}

func Test_Holdout(t *testing.T) {
	ds := synthetic(t, 1000, 0.05, 4)
	mark := make([]float64, 1000)
	for i := 700; i < 1000; i++ {
		mark[i] = 1
	}
	q, err := ds.Source.With(tables.Floats("test", mark))
	assert.NilError(t, err)
	ds.Source, ds.Test = q, "test"
	r := DecisionTree{}.Feed(ds).LuckyTrain(model.Training{})
	assert.Equal(t, r.Test.Total(), 300)
	assert.Assert(t, r.Test.Recall() > 0.8)
}
