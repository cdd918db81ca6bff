/*
Package hyperopt implements random search hyper-parameter optimization
for ML models scored by stratified k-fold cross validation
*/
package hyperopt

import (
	"context"
	"fmt"
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zlog"
	"go-ml.dev/pkg/zorros/zorros"
	"math"
	"math/rand"
	"sort"
)

const foldField = "__fold__"

/*
Range is a open float range specified by min and max values (min,max)
*/
type Range [2]float64

/*
LogRange is a open float logarithmic range specified by min and max values (min,max)
*/
type LogRange [2]float64

/*
IntRange is a close integer range specified by min and max values [min,max]
*/
type IntRange [2]int

/*
LogIntRange is a close logarithmic integer range specified by min and max values [min,max]
*/
type LogIntRange [2]int

/*
List is a list of possible parameter values
*/
type List []float64

/*
Value is a single value parameter
*/
type Value float64

// type limitation interface
type distribution interface {
	sample(*rand.Rand) float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

func (r LogRange) sample(rng *rand.Rand) float64 {
	lo, hi := math.Log(r[0]), math.Log(r[1])
	return math.Exp(lo + rng.Float64()*(hi-lo))
}

func (r IntRange) sample(rng *rand.Rand) float64 {
	return float64(r[0] + rng.Intn(r[1]-r[0]+1))
}

func (r LogIntRange) sample(rng *rand.Rand) float64 {
	lo, hi := math.Log(float64(r[0])), math.Log(float64(r[1])+1)
	return math.Min(math.Floor(math.Exp(lo+rng.Float64()*(hi-lo))), float64(r[1]))
}

func (l List) sample(rng *rand.Rand) float64 {
	return l[rng.Intn(len(l))]
}

func (v Value) sample(*rand.Rand) float64 {
	return float64(v)
}

/*
Variance is a space of hyper-parameters used in *Search functions
*/
type Variance map[string]distribution

/*
Report is a result of Hyper-parameters Optimization
*/
type Report struct {
	model.Params
	Score float64
}

/*
Space is a definition of hyper-parameters optimization space
*/
type Space struct {
	Source     *tables.Table // dataset source
	Features   []string      // dataset features
	Label      string        // dataset label
	Seed       int64         // random seed
	Kfold      int           // count of dataset folds
	Iterations int           // count of sampled parameter sets
	Score      model.Score   // function to calculate score of test metrics

	// training used to fit every model, default model.Training
	Training model.UnifiedTraining

	// the model generation function
	ModelFunc func(model.Params) model.HungryModel

	// hyper-parameters variance
	Variance Variance
}

func (ss Space) sample(rng *rand.Rand) model.Params {
	names := make([]string, 0, len(ss.Variance))
	for k := range ss.Variance {
		names = append(names, k)
	}
	sort.Strings(names)
	p := model.Params{}
	for _, k := range names {
		p[k] = ss.Variance[k].sample(rng)
	}
	return p
}

/*
Search samples parameters and returns the set having the best mean cross validation score
*/
func (ss Space) Search(ctx context.Context) (*Report, error) {
	if ss.ModelFunc == nil || ss.Source == nil {
		return nil, zorros.Errorf("hyper-parameters space requires model function and source")
	}
	k := fu.Fnzi(ss.Kfold, 5)
	folds, err := model.StratifiedFolds(ss.Source, ss.Label, k, ss.Seed)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(ss.Seed))
	n := fu.Maxi(fu.Fnzi(ss.Iterations, 10), 1)
	params := make([]model.Params, n)
	scores := make([]float64, n)
	for i := range params {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		params[i] = ss.sample(rng)
		if scores[i], err = ss.crossValidate(params[i], folds, k); err != nil {
			return nil, zorros.Wrapf(err, "failed to fit model with %v: %v", params[i], err.Error())
		}
		zlog.Info(fmt.Sprintf("hyperopt [%d] %v score: %.5f", i, params[i], scores[i]))
	}
	best := fu.Indmaxd(scores)
	return &Report{Params: params[best], Score: scores[best]}, nil
}

func (ss Space) crossValidate(p model.Params, folds []int, k int) (float64, error) {
	score := ss.Score
	if score == nil {
		score = model.RecallScore
	}
	var training model.UnifiedTraining = model.Training{}
	if ss.Training != nil {
		training = ss.Training
	}
	scores := make([]float64, k)
	for f := range scores {
		mark := make([]float64, len(folds))
		for i, x := range folds {
			if x == f {
				mark[i] = 1
			}
		}
		src, err := ss.Source.With(tables.Floats(foldField, mark))
		if err != nil {
			return 0, err
		}
		ds := model.Dataset{Source: src, Label: ss.Label, Test: foldField, Features: ss.Features}
		r, err := ss.ModelFunc(p).Feed(ds).Train(training)
		if err != nil {
			return 0, err
		}
		scores[f] = score(r.Test)
	}
	return fu.Mean(scores), nil
}
