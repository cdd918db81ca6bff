/*
Package explore computes exploratory statistics of a table
*/
package explore

import (
	"go-ml.dev/pkg/bankloan/tables"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"math"
	"sort"
)

/*
LevelCount is a count of rows having the level
*/
type LevelCount struct {
	Level string
	Count int
}

/*
Summary describes one column. Numeric statistics are filled for Float
columns and Levels for Category ones
*/
type Summary struct {
	Name     string
	Kind     tables.Kind
	N        int
	Min, Max float64
	Q1, Q3   float64
	Median   float64
	Mean     float64
	Std      float64
	Skewness float64
	Levels   []LevelCount
}

/*
Summarize describes every column of the table
*/
func Summarize(t *tables.Table) []Summary {
	r := make([]Summary, 0, t.Width())
	for _, c := range t.Columns() {
		r = append(r, Describe(c))
	}
	return r
}

/*
Describe computes summary of one column
*/
func Describe(c *tables.Column) Summary {
	s := Summary{Name: c.Name, Kind: c.Kind, N: c.Len()}
	if c.Kind == tables.Category {
		s.Levels = Levels(c)
		return s
	}
	if s.N == 0 {
		return s
	}
	x := c.Values()
	sort.Float64s(x)
	s.Min, s.Max = x[0], x[len(x)-1]
	s.Q1 = Quantile(0.25, x)
	s.Median = Quantile(0.5, x)
	s.Q3 = Quantile(0.75, x)
	s.Mean, s.Std = stat.MeanStdDev(x, nil)
	if s.N > 2 && s.Std > 0 {
		s.Skewness = stat.Skew(x, nil)
	}
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	return s
}

/*
Quantile of sorted values interpolated linearly between the closest ranks
at position (n-1)p, the default definition of R's quantile
*/
func Quantile(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

/*
Levels counts rows per level of categorical column
*/
func Levels(c *tables.Column) []LevelCount {
	r := make([]LevelCount, len(c.Levels))
	for i, l := range c.Levels {
		r[i].Level = l
	}
	for _, x := range c.Data {
		r[int(x)].Count++
	}
	return r
}

/*
Balance counts rows per class of the label column
*/
func Balance(t *tables.Table, label string) ([]LevelCount, error) {
	c, err := t.Col(label)
	if err != nil {
		return nil, err
	}
	if c.Kind == tables.Category {
		return Levels(c), nil
	}
	n := [2]int{}
	for i := range c.Data {
		n[c.Binary(i)]++
	}
	return []LevelCount{{"0", n[0]}, {"1", n[1]}}, nil
}

/*
Histogram is a count of values falling into equal-width bins
*/
type Histogram struct {
	Name   string
	Edges  []float64 // len(Counts)+1 bin edges
	Counts []float64
}

/*
Hist computes histogram of numeric column
*/
func Hist(c *tables.Column, bins int) Histogram {
	h := Histogram{Name: c.Name}
	if c.Len() == 0 || bins <= 0 {
		return h
	}
	x := c.Values()
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		h.Edges = []float64{lo, hi}
		h.Counts = []float64{float64(len(x))}
		return h
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// the last divider must be strictly greater than maximal value
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	h.Counts = stat.Histogram(nil, dividers, x, nil)
	dividers[bins] = hi
	h.Edges = dividers
	return h
}
