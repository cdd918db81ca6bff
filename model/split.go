package model

import (
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"math"
	"math/rand"
)

func classes(t *tables.Table, label string) ([2][]int, error) {
	r := [2][]int{}
	y, err := tables.Labels(t, label)
	if err != nil {
		return r, err
	}
	for i, c := range y {
		r[c] = append(r[c], i)
	}
	return r, nil
}

/*
StratifiedSplit adds 0/1 test field to the table. Every class is shuffled
and round(n*trainFrac) rows of the class go into training subset,
the rest are marked as test rows
*/
func StratifiedSplit(t *tables.Table, label, test string, trainFrac float64, seed int64) (*tables.Table, error) {
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, zorros.Errorf("training fraction must be in (0,1), got %v", trainFrac)
	}
	cls, err := classes(t, label)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	mark := make([]float64, t.Len())
	for _, rows := range cls {
		rows = append([]int{}, rows...)
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		n := int(math.Round(float64(len(rows)) * trainFrac))
		for _, i := range rows[n:] {
			mark[i] = 1
		}
	}
	return t.With(tables.Floats(test, mark))
}

/*
StratifiedFolds assigns every row to one of k folds keeping class proportions
*/
func StratifiedFolds(t *tables.Table, label string, k int, seed int64) ([]int, error) {
	if k < 2 {
		return nil, zorros.Errorf("need at least 2 folds, got %d", k)
	}
	cls, err := classes(t, label)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	folds := make([]int, t.Len())
	offset := 0
	for _, rows := range cls {
		rows = append([]int{}, rows...)
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		for j, i := range rows {
			folds[i] = (j + offset) % k
		}
		offset += len(rows)
	}
	return folds, nil
}
