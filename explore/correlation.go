package explore

import (
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

/*
Matrix is a symmetric correlation matrix of named columns
*/
type Matrix struct {
	Names  []string
	Values [][]float64
}

/*
At returns correlation of two named columns
*/
func (m Matrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, n := range m.Names {
		if n == a {
			i = k
		}
		if n == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

/*
Correlate computes Pearson correlation of named numeric columns.
If names is empty, all numeric columns are used
*/
func Correlate(t *tables.Table, names ...string) (Matrix, error) {
	if len(names) == 0 {
		for _, c := range t.Columns() {
			if c.Kind == tables.Float {
				names = append(names, c.Name)
			}
		}
	}
	if len(names) < 2 || t.Len() < 2 {
		return Matrix{}, zorros.Errorf("correlation needs two numeric columns and two rows")
	}
	x := mat.NewDense(t.Len(), len(names), nil)
	for j, n := range names {
		c, err := t.Col(n)
		if err != nil {
			return Matrix{}, err
		}
		if c.Kind != tables.Float {
			return Matrix{}, zorros.Errorf("can't correlate categorical column `%v`", n)
		}
		x.SetCol(j, c.Data)
	}
	var s mat.SymDense
	stat.CorrelationMatrix(&s, x, nil)
	m := Matrix{Names: names, Values: make([][]float64, len(names))}
	for i := range names {
		m.Values[i] = make([]float64, len(names))
		for j := range names {
			m.Values[i][j] = s.At(i, j)
		}
	}
	return m, nil
}
