package explore

import (
	"go-ml.dev/pkg/bankloan/tables"
	"gotest.tools/assert"
	"math"
	"testing"
)

func table(t *testing.T) *tables.Table {
	y, err := tables.Categories("y", []string{"0", "0", "1", "0", "1"}, "0", "1")
	assert.NilError(t, err)
	q, err := tables.New(
		tables.Floats("a", []float64{1, 2, 3, 4, 5}),
		tables.Floats("b", []float64{2, 4, 6, 8, 10}),
		tables.Floats("c", []float64{5, 4, 3, 2, 1}),
		y)
	assert.NilError(t, err)
	return q
}

func Test_Describe(t *testing.T) {
	q := table(t)
	s := Summarize(q)
	assert.Equal(t, len(s), 4)
	a := s[0]
	assert.Equal(t, a.Min, 1.0)
	assert.Equal(t, a.Max, 5.0)
	assert.Equal(t, a.Median, 3.0)
	assert.Equal(t, a.Q1, 2.0)
	assert.Equal(t, a.Q3, 4.0)
	assert.Equal(t, a.Mean, 3.0)
	assert.Assert(t, math.Abs(a.Std-math.Sqrt(2.5)) < 1e-12)
	assert.Assert(t, math.Abs(a.Skewness) < 1e-12)
	assert.DeepEqual(t, s[3].Levels, []LevelCount{{"0", 3}, {"1", 2}})
}

func Test_Quantiles(t *testing.T) {
	x := make([]float64, 10)
	for i := range x {
		x[i] = float64(10 * (i + 1))
	}
	s := Describe(tables.Floats("x", x))
	assert.Equal(t, s.Median, 55.0)
	assert.Equal(t, s.Q1, 32.5)
	assert.Equal(t, s.Q3, 77.5)
	assert.Equal(t, Quantile(0, x), 10.0)
	assert.Equal(t, Quantile(1, x), 100.0)
	assert.Equal(t, Quantile(0.5, []float64{7}), 7.0)
	assert.Assert(t, math.IsNaN(Quantile(0.5, nil)))
}

func Test_Hist(t *testing.T) {
	c := tables.Floats("x", []float64{0, 1, 2, 3, 4, 10})
	h := Hist(c, 5)
	assert.Equal(t, len(h.Counts), 5)
	assert.Equal(t, len(h.Edges), 6)
	assert.Equal(t, h.Edges[5], 10.0)
	assert.DeepEqual(t, h.Counts, []float64{2, 2, 1, 0, 1})
	k := Hist(tables.Floats("k", []float64{7, 7}), 3)
	assert.DeepEqual(t, k.Counts, []float64{2})
}

func Test_Correlate(t *testing.T) {
	m, err := Correlate(table(t))
	assert.NilError(t, err)
	assert.DeepEqual(t, m.Names, []string{"a", "b", "c"})
	ab, ok := m.At("a", "b")
	assert.Assert(t, ok)
	assert.Assert(t, math.Abs(ab-1) < 1e-12)
	ac, _ := m.At("a", "c")
	assert.Assert(t, math.Abs(ac+1) < 1e-12)
	_, err = Correlate(table(t), "a", "y")
	assert.ErrorContains(t, err, "categorical")
}

func Test_Profile(t *testing.T) {
	p, err := Explore(table(t), "y", 4)
	assert.NilError(t, err)
	assert.Equal(t, p.Rows, 5)
	assert.Equal(t, len(p.Histograms), 3)
	assert.DeepEqual(t, p.Balance, []LevelCount{{"0", 3}, {"1", 2}})
	assert.Equal(t, p.ClassMeans[0].Name, "a")
	assert.Equal(t, p.ClassMeans[0].Means, [2]float64{7.0 / 3, 4})
	assert.DeepEqual(t, p.Skewed(1), []string{})
}
