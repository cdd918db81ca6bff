package model

import (
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"sort"
)

/*
Confusion is the binary confusion matrix, the positive class is 1
*/
type Confusion struct {
	TP, FP, TN, FN int
}

/*
NewConfusion cross-tabulates actual and predicted classes
*/
func NewConfusion(actual, predicted []int) Confusion {
	c := Confusion{}
	for i, a := range actual {
		switch {
		case a == 1 && predicted[i] == 1:
			c.TP++
		case a == 1:
			c.FN++
		case predicted[i] == 1:
			c.FP++
		default:
			c.TN++
		}
	}
	return c
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func (c Confusion) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

func (c Confusion) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.Total())
}

// Recall is the sensitivity, TP/(TP+FN)
func (c Confusion) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

func (c Confusion) Specificity() float64 {
	return ratio(c.TN, c.TN+c.FP)
}

// Precision is the positive predictive value
func (c Confusion) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// NPV is the negative predictive value
func (c Confusion) NPV() float64 {
	return ratio(c.TN, c.TN+c.FN)
}

func (c Confusion) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (c Confusion) BalancedAccuracy() float64 {
	return (c.Recall() + c.Specificity()) / 2
}

func (c Confusion) Prevalence() float64 {
	return ratio(c.TP+c.FN, c.Total())
}

/*
Kappa is Cohen's agreement of predicted and actual classes
*/
func (c Confusion) Kappa() float64 {
	n := float64(c.Total())
	if n == 0 {
		return 0
	}
	po := float64(c.TP+c.TN) / n
	pe := (float64(c.TP+c.FP)*float64(c.TP+c.FN) + float64(c.TN+c.FN)*float64(c.TN+c.FP)) / (n * n)
	if pe == 1 {
		return 0
	}
	return (po - pe) / (1 - pe)
}

/*
Metrics is a set of binary classification metrics
*/
type Metrics struct {
	Confusion
	AUC   float64
	Brier float64
}

/*
Score calculates a score of model metrics, greater is better
*/
type Score func(Metrics) float64

// RecallScore scores models by recall
func RecallScore(m Metrics) float64 { return m.Recall() }

/*
Evaluate predicts table rows and measures predictions against the label
*/
func Evaluate(pm PredictionModel, t *tables.Table, label string) (Metrics, error) {
	y, err := tables.Labels(t, label)
	if err != nil {
		return Metrics{}, err
	}
	if len(y) == 0 {
		return Metrics{}, zorros.Errorf("nothing to evaluate")
	}
	p, err := pm.Predict(t)
	if err != nil {
		return Metrics{}, err
	}
	c := make([]int, len(p))
	a := make([]float64, len(y))
	for i, x := range p {
		if x >= pm.Threshold() {
			c[i] = 1
		}
		a[i] = float64(y[i])
	}
	return Metrics{
		Confusion: NewConfusion(y, c),
		AUC:       AUC(y, p),
		Brier:     fu.Mse(p, a),
	}, nil
}

/*
AUC is the area under ROC curve computed as Mann-Whitney statistic with ties ranked by average
*/
func AUC(actual []int, prob []float64) float64 {
	n := len(prob)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return prob[idx[a]] < prob[idx[b]] })
	rank := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && prob[idx[j+1]] == prob[idx[i]] {
			j++
		}
		r := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			rank[idx[k]] = r
		}
		i = j + 1
	}
	var sum float64
	var pos, neg int
	for i, a := range actual {
		if a == 1 {
			sum += rank[i]
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0
	}
	return (sum - float64(pos)*float64(pos+1)/2) / (float64(pos) * float64(neg))
}
