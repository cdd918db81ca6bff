package resample

import (
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"math"
	"math/rand"
	"sort"
)

/*
Smote generates synthetic minority rows interpolating between a minority row
and one of its K nearest minority neighbours. Over is the percent of synthetic
rows per minority row, Under is the percent of majority rows per synthetic row
kept in the result. Zero fields take defaults K=5, Over=200, Under=200
*/
type Smote struct {
	K     int
	Over  int
	Under int
}

func (Smote) Name() string { return "smote" }

func (s Smote) Resample(t *tables.Table, label string, rng *rand.Rand) (*tables.Table, error) {
	cls, err := classes(t, label)
	if err != nil {
		return nil, err
	}
	mi := cls[minority(cls)]
	ma := cls[1-minority(cls)]
	if len(mi) < 2 {
		return nil, zorros.Errorf("smote needs at least 2 minority rows, got %d", len(mi))
	}
	k := fu.Mini(fu.Fnzi(s.K, 5), len(mi)-1)
	over := fu.Fnzi(s.Over, 200)
	under := fu.Fnzi(s.Under, 200)

	cols := t.Columns()
	lab := -1
	scale := make([]float64, len(cols))
	for j, c := range cols {
		if c.Name == label {
			lab = j
			continue
		}
		if c.Kind == tables.Float {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, i := range mi {
				lo, hi = math.Min(lo, c.Data[i]), math.Max(hi, c.Data[i])
			}
			if hi > lo {
				scale[j] = 1 / (hi - lo)
			}
		}
	}

	bases := mi
	per := over / 100
	if over < 100 {
		n := len(mi) * over / 100
		bases = make([]int, n)
		for i, j := range rng.Perm(len(mi))[:n] {
			bases[i] = mi[j]
		}
		per = 1
	}

	distance := func(a, b int) float64 {
		d := 0.0
		for j, c := range cols {
			if j == lab {
				continue
			}
			if c.Kind == tables.Category {
				if c.Data[a] != c.Data[b] {
					d++
				}
			} else {
				q := (c.Data[a] - c.Data[b]) * scale[j]
				d += q * q
			}
		}
		return d
	}

	b := newBuilder(t)
	synthetic := 0
	cells := make([]float64, len(cols))
	for _, i := range bases {
		nn := neighbours(i, mi, k, distance)
		for r := 0; r < per; r++ {
			x := nn[rng.Intn(len(nn))]
			gap := rng.Float64()
			for j, c := range cols {
				switch {
				case j == lab || c.Kind == tables.Category:
					cells[j] = c.Data[i]
					if j != lab && rng.Intn(2) == 1 {
						cells[j] = c.Data[x]
					}
				default:
					cells[j] = c.Data[i] + gap*(c.Data[x]-c.Data[i])
				}
			}
			b.add(cells)
			synthetic++
		}
	}

	n := fu.Mini(synthetic*under/100, len(ma))
	sel := make([]int, n)
	for i, j := range rng.Perm(len(ma))[:n] {
		sel[i] = ma[j]
	}
	sort.Ints(sel)

	r := newBuilder(t)
	for _, i := range sel {
		r.copy(i)
	}
	for _, i := range mi {
		r.copy(i)
	}
	for j := range r.data {
		r.data[j] = append(r.data[j], b.data[j]...)
	}
	return r.table()
}

// neighbours returns k nearest rows to i among candidates excluding i itself
func neighbours(i int, candidates []int, k int, distance func(a, b int) float64) []int {
	type pair struct {
		row int
		d   float64
	}
	ps := make([]pair, 0, len(candidates)-1)
	for _, j := range candidates {
		if j != i {
			ps = append(ps, pair{j, distance(i, j)})
		}
	}
	sort.SliceStable(ps, func(a, b int) bool { return ps[a].d < ps[b].d })
	r := make([]int, k)
	for j := range r {
		r[j] = ps[j].row
	}
	return r
}
