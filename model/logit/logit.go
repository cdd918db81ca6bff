/*
Package logit implements binary logistic regression fitted by
iteratively reweighted least squares
*/
package logit

import (
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/tables"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

const Intercept = "(Intercept)"

// probabilities are clipped by eps when computing deviance
const eps = 1e-12

// Hessian condition number treated as singular
const maxCondition = 1e12

/*
LogisticRegression is a hungry binary classifier
*/
type LogisticRegression struct {
	Threshold float64 // probability threshold of positive class, 0.5 by default
	L2        float64 // ridge penalty, intercept is not penalized
	Predicted string  // name of predicted value, Predicted by default
}

/*
Coefficient is an estimated regression coefficient with its Wald test
*/
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	Z        float64
	P        float64
}

/*
Model is a fitted logistic regression
*/
type Model struct {
	enc       *tables.Encoder
	beta      []float64
	coef      []Coefficient
	threshold float64
	predicted string
}

/*
Feed binds the model to the dataset
*/
func (lr LogisticRegression) Feed(ds model.Dataset) model.FatModel {
	return func(w model.Workout) (*model.Report, error) {
		return lr.fit(ds, w)
	}
}

func (lr LogisticRegression) fit(ds model.Dataset, w model.Workout) (*model.Report, error) {
	train := ds.Train()
	enc, err := tables.NewEncoder(train, ds.Features)
	if err != nil {
		return nil, err
	}
	x, err := enc.Matrix(train)
	if err != nil {
		return nil, err
	}
	y, err := tables.Labels(train, ds.Label)
	if err != nil {
		return nil, err
	}
	x = withIntercept(x)
	_, p := x.Dims()
	beta := mat.NewVecDense(p, nil)
	for w != nil {
		h, g := lr.newton(x, y, beta)
		var delta mat.VecDense
		if err := solve(&delta, h, g); err != nil {
			return nil, xerrors.Errorf("logistic regression failed at iteration %d: %w", w.Iteration(), err)
		}
		beta.AddVec(beta, &delta)
		if w.Complete(lr.deviance(x, y, beta)) {
			break
		}
		w = w.Next()
	}
	h, _ := lr.newton(x, y, beta)
	var inv mat.Dense
	if err := singular(inv.Inverse(h)); err != nil {
		return nil, xerrors.Errorf("can't estimate standard errors: %w", err)
	}
	m := &Model{
		enc:       enc,
		beta:      mat.Col(nil, 0, beta),
		threshold: fu.Fnzd(lr.Threshold, 0.5),
		predicted: lr.Predicted,
	}
	names := append([]string{Intercept}, enc.Names()...)
	for j, n := range names {
		c := Coefficient{Name: n, Estimate: m.beta[j], StdErr: math.Sqrt(inv.At(j, j))}
		c.Z = c.Estimate / c.StdErr
		c.P = 2 * distuv.UnitNormal.CDF(-math.Abs(c.Z))
		m.coef = append(m.coef, c)
	}
	var history []float64
	if w != nil {
		history = w.History()
	}
	return model.Complete(ds, m, history)
}

func withIntercept(x *mat.Dense) *mat.Dense {
	n, p := x.Dims()
	r := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		r.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			r.Set(i, j+1, x.At(i, j))
		}
	}
	return r
}

func probabilities(x *mat.Dense, beta *mat.VecDense) []float64 {
	n, _ := x.Dims()
	var eta mat.VecDense
	eta.MulVec(x, beta)
	mu := make([]float64, n)
	for i := range mu {
		mu[i] = fu.Sigmoid(eta.AtVec(i))
	}
	return mu
}

// newton returns Hessian of negative penalized log-likelihood and its gradient
func (lr LogisticRegression) newton(x *mat.Dense, y []int, beta *mat.VecDense) (*mat.Dense, *mat.VecDense) {
	n, p := x.Dims()
	mu := probabilities(x, beta)
	xw := mat.NewDense(n, p, nil)
	r := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		wi := mu[i] * (1 - mu[i])
		for j := 0; j < p; j++ {
			xw.Set(i, j, x.At(i, j)*wi)
		}
		r.SetVec(i, float64(y[i])-mu[i])
	}
	h := mat.NewDense(p, p, nil)
	h.Mul(x.T(), xw)
	g := mat.NewVecDense(p, nil)
	g.MulVec(x.T(), r)
	for j := 1; j < p; j++ {
		h.Set(j, j, h.At(j, j)+lr.L2)
		g.SetVec(j, g.AtVec(j)-lr.L2*beta.AtVec(j))
	}
	return h, g
}

// deviance is -2*loglikelihood plus the ridge penalty
func (lr LogisticRegression) deviance(x *mat.Dense, y []int, beta *mat.VecDense) float64 {
	mu := probabilities(x, beta)
	d := 0.0
	for i, m := range mu {
		m = math.Min(math.Max(m, eps), 1-eps)
		if y[i] == 1 {
			d -= 2 * math.Log(m)
		} else {
			d -= 2 * math.Log(1-m)
		}
	}
	for j := 1; j < beta.Len(); j++ {
		d += lr.L2 * beta.AtVec(j) * beta.AtVec(j)
	}
	return d
}

// singular passes moderately ill-conditioned results and reports the rest as ErrSingular
func singular(err error) error {
	if err == nil {
		return nil
	}
	if c, ok := err.(mat.Condition); ok && float64(c) < maxCondition {
		return nil
	}
	return xerrors.Errorf("%v: %w", err.Error(), model.ErrSingular)
}

func solve(dst *mat.VecDense, h *mat.Dense, g *mat.VecDense) error {
	if err := singular(dst.SolveVec(h, g)); err != nil {
		return err
	}
	for i := 0; i < dst.Len(); i++ {
		if v := dst.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return model.ErrSingular
		}
	}
	return nil
}

func (m *Model) Features() []string {
	return m.enc.Features()
}

func (m *Model) Predicted() string {
	if m.predicted == "" {
		return "Predicted"
	}
	return m.predicted
}

func (m *Model) Threshold() float64 {
	return m.threshold
}

/*
Coefficients returns estimated coefficients, the intercept is the first one
*/
func (m *Model) Coefficients() []Coefficient {
	return append([]Coefficient{}, m.coef...)
}

/*
Predict returns probabilities of the positive class
*/
func (m *Model) Predict(t *tables.Table) ([]float64, error) {
	x, err := m.enc.Matrix(t)
	if err != nil {
		return nil, err
	}
	return probabilities(withIntercept(x), mat.NewVecDense(len(m.beta), m.beta)), nil
}
