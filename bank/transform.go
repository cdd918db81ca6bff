package bank

import (
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"math"
)

/*
TransformOptions specifies skewed columns to log-transform and
low-relevance columns to drop
*/
type TransformOptions struct {
	Log  []string
	Drop []string
}

func DefaultTransformOptions() TransformOptions {
	return TransformOptions{
		Log:  []string{Income, CCAvg, Mortgage},
		Drop: []string{ZipCode, Experience},
	}
}

/*
Transform replaces skewed columns by log(1+x) and drops low-relevance columns
*/
func Transform(t *tables.Table, opts TransformOptions) (*tables.Table, error) {
	if err := t.Has(opts.Drop...); err != nil {
		return nil, zorros.Wrapf(err, "can't drop column: %v", err.Error())
	}
	for _, n := range opts.Log {
		c, err := t.Col(n)
		if err != nil {
			return nil, err
		}
		if c.Kind != tables.Float {
			return nil, zorros.Errorf("can't log-transform categorical column `%v`", n)
		}
		data := make([]float64, c.Len())
		for i, x := range c.Data {
			if x <= -1 {
				return nil, zorros.Errorf("can't log-transform `%v`: value %v in row %d", n, x, i+1)
			}
			data[i] = math.Log1p(x)
		}
		if t, err = t.With(tables.Floats(n, data)); err != nil {
			return nil, err
		}
	}
	return t.Except(opts.Drop...), nil
}
