package model

import (
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
	"reflect"
	"sort"
)

/*
HungryModel is an ML algorithm grows from a data to predict something
Needs to be fattened by Feed method to fit.
*/
type HungryModel interface {
	Feed(Dataset) FatModel
}

/*
Report is an ML training report
*/
type Report struct {
	Model       PredictionModel // fitted model
	Train, Test Metrics         // metrics on training and holdout rows
	Iterations  int             // count of done iterations
	Loss        float64         // the final loss
	History     []float64       // loss of every iteration
}

/*
Workout is a training iteration abstraction
*/
type Workout interface {
	Iteration() int
	// Complete registers loss of the iteration and returns true when training is done
	Complete(loss float64) bool
	Next() Workout
	Verbose(string)
	History() []float64
}

/*
UnifiedTraining is an interface allowing to write any logging/staging backend for ML training
*/
type UnifiedTraining interface {
	// Workout returns the first iteration workout
	Workout() Workout
}

/*
FatModel is fattened model (a training function of model instance bounded to a dataset)
*/
type FatModel func(workout Workout) (*Report, error)

/*
Train a fattened (Fat) model
*/
func (f FatModel) Train(training UnifiedTraining) (*Report, error) {
	w := training.Workout()
	if c, ok := w.(io.Closer); ok {
		defer c.Close()
	}
	return f(w)
}

/*
LuckyTrain trains fattened (Fat) model and trows any occurred errors as a panic
*/
func (f FatModel) LuckyTrain(training UnifiedTraining) *Report {
	m, err := f.Train(training)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return m
}

/*
PredictionModel is a predictor interface
*/
type PredictionModel interface {
	// Features model uses when maps features
	// the same as Features in the training dataset
	Features() []string
	// Name of the predicted value, by default it's 'Predicted'
	Predicted() string
	// Probability threshold separating positive predictions
	Threshold() float64
	// Predict returns probabilities of the positive class for every row
	Predict(*tables.Table) ([]float64, error)
}

/*
Classify predicts classes of table rows
*/
func Classify(pm PredictionModel, t *tables.Table) ([]int, error) {
	p, err := pm.Predict(t)
	if err != nil {
		return nil, err
	}
	r := make([]int, len(p))
	for i, x := range p {
		if x >= pm.Threshold() {
			r[i] = 1
		}
	}
	return r, nil
}

/*
Complete evaluates fitted model on the dataset and returns training report
*/
func Complete(ds Dataset, pm PredictionModel, history []float64) (*Report, error) {
	r := &Report{Model: pm, History: history, Iterations: len(history)}
	if len(history) > 0 {
		r.Loss = history[len(history)-1]
	}
	var err error
	if r.Train, err = Evaluate(pm, ds.Train(), ds.Label); err != nil {
		return nil, err
	}
	if h := ds.Holdout(); h.Len() > 0 {
		if r.Test, err = Evaluate(pm, h, ds.Label); err != nil {
			return nil, err
		}
	}
	return r, nil
}

/*
Params is a set of hyper-parameters used by hyper-parameter optimization to generate new model
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

/*
Apply sets model fields referenced by pointers
*/
func (p Params) Apply(m map[string]reflect.Value) {
	for k, v := range p {
		ref, ok := m[k]
		if !ok {
			panic(zorros.Panic(zorros.Errorf("model does not have field `%v`", k)))
		}
		ref.Elem().Set(fu.Convert(reflect.ValueOf(v), ref.Type().Elem()))
	}
}

/*
Names returns sorted names of parameters
*/
func (p Params) Names() []string {
	r := make([]string, 0, len(p))
	for k := range p {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
