/*
Package resample implements class imbalance remedies producing
resampled copies of a training table
*/
package resample

import (
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"golang.org/x/xerrors"
	"math/rand"
	"sort"
	"strings"
)

// ErrOneClass is returned when the label column does not have both classes
var ErrOneClass = xerrors.New("label has only one class")

/*
Sampler produces a resampled copy of the table, the source table is never modified
*/
type Sampler interface {
	Name() string
	Resample(t *tables.Table, label string, rng *rand.Rand) (*tables.Table, error)
}

/*
Options configures samplers built by name
*/
type Options struct {
	Smote Smote
	Rose  Rose
}

// Names lists known samplers
var Names = []string{"original", "down", "up", "smote", "rose"}

/*
ByName returns the named sampler
*/
func ByName(name string, opts Options) (Sampler, error) {
	switch strings.ToLower(name) {
	case "original", "none":
		return Original{}, nil
	case "down":
		return Down{}, nil
	case "up":
		return Up{}, nil
	case "smote":
		return opts.Smote, nil
	case "rose":
		return opts.Rose, nil
	}
	return nil, zorros.Errorf("unknown resampling method `%v`, expected one of %v", name, strings.Join(Names, ", "))
}

// classes returns row indexes of negative and positive classes
func classes(t *tables.Table, label string) ([2][]int, error) {
	r := [2][]int{}
	y, err := tables.Labels(t, label)
	if err != nil {
		return r, err
	}
	for i, c := range y {
		r[c] = append(r[c], i)
	}
	if len(r[0]) == 0 || len(r[1]) == 0 {
		return r, xerrors.Errorf("%d negative and %d positive rows: %w", len(r[0]), len(r[1]), ErrOneClass)
	}
	return r, nil
}

func minority(cls [2][]int) int {
	if len(cls[1]) <= len(cls[0]) {
		return 1
	}
	return 0
}

/*
Original leaves the training table as is
*/
type Original struct{}

func (Original) Name() string { return "original" }

func (Original) Resample(t *tables.Table, label string, _ *rand.Rand) (*tables.Table, error) {
	if _, err := classes(t, label); err != nil {
		return nil, err
	}
	return t, nil
}

/*
Down samples every class without replacement to the size of the minority class
*/
type Down struct{}

func (Down) Name() string { return "down" }

func (Down) Resample(t *tables.Table, label string, rng *rand.Rand) (*tables.Table, error) {
	cls, err := classes(t, label)
	if err != nil {
		return nil, err
	}
	m := len(cls[minority(cls)])
	rows := make([]int, 0, 2*m)
	for _, c := range cls {
		sel := make([]int, m)
		for i, j := range rng.Perm(len(c))[:m] {
			sel[i] = c[j]
		}
		sort.Ints(sel)
		rows = append(rows, sel...)
	}
	return t.Subset(rows), nil
}

/*
Up keeps all rows and samples every class with replacement up to the size of the majority class
*/
type Up struct{}

func (Up) Name() string { return "up" }

func (Up) Resample(t *tables.Table, label string, rng *rand.Rand) (*tables.Table, error) {
	cls, err := classes(t, label)
	if err != nil {
		return nil, err
	}
	m := len(cls[1-minority(cls)])
	rows := make([]int, 0, 2*m)
	for _, c := range cls {
		rows = append(rows, c...)
		for i := len(c); i < m; i++ {
			rows = append(rows, c[rng.Intn(len(c))])
		}
	}
	return t.Subset(rows), nil
}

// builder collects original and synthetic rows of a table
type builder struct {
	cols []*tables.Column
	data [][]float64
}

func newBuilder(t *tables.Table) *builder {
	b := &builder{cols: t.Columns()}
	b.data = make([][]float64, len(b.cols))
	return b
}

func (b *builder) copy(row int) {
	for j, c := range b.cols {
		b.data[j] = append(b.data[j], c.Data[row])
	}
}

func (b *builder) add(cells []float64) {
	for j := range b.cols {
		b.data[j] = append(b.data[j], cells[j])
	}
}

func (b *builder) table() (*tables.Table, error) {
	cols := make([]*tables.Column, len(b.cols))
	for j, c := range b.cols {
		cols[j] = &tables.Column{Name: c.Name, Kind: c.Kind, Levels: c.Levels, Data: b.data[j]}
	}
	return tables.New(cols...)
}
