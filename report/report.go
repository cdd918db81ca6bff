/*
Package report holds the results of the loan acceptance analysis
and renders them as markdown, terminal text and spreadsheet
*/
package report

import (
	"go-ml.dev/pkg/bankloan/bank"
	"go-ml.dev/pkg/bankloan/explore"
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/model/logit"
	"go-ml.dev/pkg/bankloan/model/tree"
	"time"
)

/*
Split describes training and test subsets
*/
type Split struct {
	Train, Test                 int
	TrainPositive, TestPositive int
}

/*
Variant describes one resampled training set
*/
type Variant struct {
	Name     string
	Rows     int
	Positive int
}

/*
Fit is a model fitted on one training variant and evaluated on the test subset
*/
type Fit struct {
	Variant      string
	Model        string
	Iterations   int
	Train, Test  model.Metrics
	Coefficients []logit.Coefficient // logistic regression only
	Importance   []tree.Importance   // decision tree only
	Rules        []string            // decision tree only
}

/*
Report is the complete analysis of one run
*/
type Report struct {
	RunID      string
	Created    time.Time
	Source     string
	Seed       int64
	Rows       int
	Columns    []string
	Cleaning   bank.CleanReport
	Profile    *explore.Profile
	Features   []string // features after transformation
	Split      Split
	Variants   []Variant
	Fits       []Fit
	Tuned      model.Params // tuned tree parameters, nil if tuning is disabled
	TunedScore float64
}

/*
Best returns the fit having the highest test recall, ties are broken by F1
*/
func (r *Report) Best() (Fit, bool) {
	if len(r.Fits) == 0 {
		return Fit{}, false
	}
	b := r.Fits[0]
	for _, f := range r.Fits[1:] {
		if f.Test.Recall() > b.Test.Recall() ||
			(f.Test.Recall() == b.Test.Recall() && f.Test.F1() > b.Test.F1()) {
			b = f
		}
	}
	return b, true
}
