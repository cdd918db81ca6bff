package bank

import (
	"fmt"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zlog"
	"go-ml.dev/pkg/zorros/zorros"
	"strconv"
)

/*
CleanOptions specifies the cleaning edits
*/
type CleanOptions struct {
	Drop       []string            // identifier columns to drop
	ZipFixes   map[float64]float64 // malformed zip code -> correct zip code
	Indicators []string            // binary columns recoded to categories
}

/*
DefaultCleanOptions drops the id, fixes the four digit zip code 9307
and recodes all binary indicators
*/
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		Drop:       []string{ID},
		ZipFixes:   map[float64]float64{9307: 93007},
		Indicators: Indicators,
	}
}

/*
CleanReport counts what cleaning has changed or noticed
*/
type CleanReport struct {
	Dropped            []string
	ZipFixed           int
	ZipInvalid         int // zip codes still not having five digits
	Indicators         []string
	NegativeExperience int // records with negative experience, kept as is
}

/*
Clean applies the documented edits and returns the new table
*/
func Clean(t *tables.Table, opts CleanOptions) (*tables.Table, CleanReport, error) {
	r := CleanReport{}
	if err := t.Has(opts.Drop...); err != nil {
		return nil, r, zorros.Wrapf(err, "can't drop column: %v", err.Error())
	}
	t = t.Except(opts.Drop...)
	r.Dropped = append(r.Dropped, opts.Drop...)

	if c, ok := t.Lookup(ZipCode); ok {
		data := c.Values()
		for i, z := range data {
			if x, ok := opts.ZipFixes[z]; ok {
				data[i] = x
				r.ZipFixed++
			}
			if data[i] < 10000 || data[i] > 99999 {
				r.ZipInvalid++
			}
		}
		var err error
		if t, err = t.With(tables.Floats(ZipCode, data)); err != nil {
			return nil, r, err
		}
		if r.ZipInvalid > 0 {
			zlog.Warning(fmt.Sprintf("%d zip codes do not have five digits", r.ZipInvalid))
		}
	}

	if c, ok := t.Lookup(Experience); ok {
		for _, x := range c.Data {
			if x < 0 {
				r.NegativeExperience++
			}
		}
	}

	for _, n := range opts.Indicators {
		c, err := t.Col(n)
		if err != nil {
			return nil, r, err
		}
		if c.Kind == tables.Category {
			r.Indicators = append(r.Indicators, n)
			continue
		}
		values := make([]string, c.Len())
		for i, x := range c.Data {
			if x != 0 && x != 1 {
				return nil, r, zorros.Errorf("indicator `%v` has value %v in row %d", n, x, i+1)
			}
			values[i] = strconv.Itoa(int(x))
		}
		cat, err := tables.Categories(n, values, "0", "1")
		if err != nil {
			return nil, r, err
		}
		if t, err = t.With(cat); err != nil {
			return nil, r, err
		}
		r.Indicators = append(r.Indicators, n)
	}
	return t, r, nil
}
