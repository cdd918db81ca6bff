package model

import (
	"go-ml.dev/pkg/bankloan/tables"
)

/*
Dataset is an abstraction of some source of a data to feed hungry models
*/
type Dataset struct {
	Source   *tables.Table // training and holdout rows
	Label    string        // name of binary field containing label to train
	Test     string        // name of 0/1 field to select holdout rows, all rows are for training if empty
	Features []string      // names of features to train model or predict
}

func (ds Dataset) subset(test bool) *tables.Table {
	t := ds.Source
	if c, ok := t.Lookup(ds.Test); ok && ds.Test != "" {
		return t.Filter(func(i int) bool { return (c.Data[i] != 0) == test }).Except(ds.Test)
	}
	if test {
		return t.Subset([]int{})
	}
	return t
}

/*
Train returns training rows without the test field
*/
func (ds Dataset) Train() *tables.Table {
	return ds.subset(false)
}

/*
Holdout returns test rows without the test field
*/
func (ds Dataset) Holdout() *tables.Table {
	return ds.subset(true)
}

/*
Replace returns dataset with the new training rows and the same holdout rows
*/
func (ds Dataset) Replace(train *tables.Table) (Dataset, error) {
	h := ds.Holdout()
	if ds.Test == "" {
		return Dataset{Source: train, Label: ds.Label, Features: ds.Features}, nil
	}
	zeros := make([]float64, train.Len())
	ones := make([]float64, h.Len())
	for i := range ones {
		ones[i] = 1
	}
	a, err := train.With(tables.Floats(ds.Test, zeros))
	if err != nil {
		return ds, err
	}
	b, err := h.With(tables.Floats(ds.Test, ones))
	if err != nil {
		return ds, err
	}
	if b, err = b.Only(a.Names()...); err != nil {
		return ds, err
	}
	s, err := a.Concat(b)
	if err != nil {
		return ds, err
	}
	return Dataset{Source: s, Label: ds.Label, Test: ds.Test, Features: ds.Features}, nil
}
