package resample

import (
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/tables"
	"gonum.org/v1/gonum/stat"
	"math"
	"math/rand"
)

/*
Rose generates N rows by smoothed bootstrap: a class is drawn with probability P
for the minority one, then a row of the class is drawn and its numeric values are
perturbed by Gaussian kernel. Categorical values are copied. Zero fields take
defaults Shrink=1, P=0.5, N=count of table rows
*/
type Rose struct {
	Shrink float64
	P      float64
	N      int
}

func (Rose) Name() string { return "rose" }

func (s Rose) Resample(t *tables.Table, label string, rng *rand.Rand) (*tables.Table, error) {
	cls, err := classes(t, label)
	if err != nil {
		return nil, err
	}
	shrink := fu.Fnzd(s.Shrink, 1)
	p := fu.Fnzd(s.P, 0.5)
	n := fu.Fnzi(s.N, t.Len())
	mi := minority(cls)

	cols := t.Columns()
	numeric := []int{}
	for j, c := range cols {
		if c.Kind == tables.Float && c.Name != label {
			numeric = append(numeric, j)
		}
	}
	d := float64(len(numeric))

	// per class kernel width of every column
	width := [2][]float64{}
	for k, rows := range cls {
		width[k] = make([]float64, len(cols))
		h := shrink * math.Pow(4/((d+2)*float64(len(rows))), 1/(d+4))
		for _, j := range numeric {
			x := make([]float64, len(rows))
			for i, r := range rows {
				x[i] = cols[j].Data[r]
			}
			if len(x) > 1 {
				width[k][j] = h * stat.StdDev(x, nil)
			}
		}
	}

	b := newBuilder(t)
	cells := make([]float64, len(cols))
	for i := 0; i < n; i++ {
		k := 1 - mi
		if rng.Float64() < p {
			k = mi
		}
		row := cls[k][rng.Intn(len(cls[k]))]
		for j, c := range cols {
			cells[j] = c.Data[row]
		}
		for _, j := range numeric {
			cells[j] += width[k][j] * rng.NormFloat64()
		}
		b.add(cells)
	}
	return b.table()
}
