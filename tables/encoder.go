package tables

import (
	"gonum.org/v1/gonum/mat"
)

type encoded struct {
	name   string
	kind   Kind
	levels []string
}

/*
Encoder maps table features into a numeric design matrix. Categorical
features are expanded into 0/1 dummy columns for every level except
the first one
*/
type Encoder struct {
	features []encoded
	names    []string
}

/*
NewEncoder creates an encoder for named features of the table
*/
func NewEncoder(t *Table, features []string) (*Encoder, error) {
	e := &Encoder{}
	for _, f := range features {
		c, err := t.Col(f)
		if err != nil {
			return nil, err
		}
		e.features = append(e.features, encoded{c.Name, c.Kind, c.Levels})
		if c.Kind == Category {
			for _, l := range c.Levels[1:] {
				e.names = append(e.names, c.Name+l)
			}
		} else {
			e.names = append(e.names, c.Name)
		}
	}
	return e, nil
}

/*
Features returns names of the encoded features
*/
func (e *Encoder) Features() []string {
	r := make([]string, len(e.features))
	for i, f := range e.features {
		r[i] = f.name
	}
	return r
}

/*
Names returns names of the design matrix columns
*/
func (e *Encoder) Names() []string {
	return append([]string{}, e.names...)
}

/*
Matrix encodes the table into a design matrix
*/
func (e *Encoder) Matrix(t *Table) (*mat.Dense, error) {
	n := t.Len()
	if n == 0 || len(e.names) == 0 {
		return nil, errorf("can't encode %d rows of %d features", n, len(e.names))
	}
	m := mat.NewDense(n, len(e.names), nil)
	j := 0
	for _, f := range e.features {
		c, err := t.Col(f.name)
		if err != nil {
			return nil, err
		}
		if f.kind != c.Kind {
			return nil, errorf("feature `%v` was %v and now is %v", f.name, f.kind, c.Kind)
		}
		if f.kind == Float {
			for i := 0; i < n; i++ {
				m.Set(i, j, c.Data[i])
			}
			j++
			continue
		}
		remap := make([]int, len(c.Levels))
		for k, l := range c.Levels {
			remap[k] = indexOf(f.levels, l)
			if remap[k] < 0 {
				return nil, errorf("feature `%v` has unknown level `%v`", f.name, l)
			}
		}
		for i := 0; i < n; i++ {
			if k := remap[int(c.Data[i])]; k > 0 {
				m.Set(i, j+k-1, 1)
			}
		}
		j += len(f.levels) - 1
	}
	return m, nil
}

/*
Labels returns the binary label vector of the table
*/
func Labels(t *Table, label string) ([]int, error) {
	c, err := t.Col(label)
	if err != nil {
		return nil, err
	}
	r := make([]int, t.Len())
	for i := range r {
		r[i] = c.Binary(i)
	}
	return r, nil
}
