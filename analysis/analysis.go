/*
Package analysis runs the loan acceptance study from raw customer file to report
*/
package analysis

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"go-ml.dev/pkg/bankloan/bank"
	"go-ml.dev/pkg/bankloan/config"
	"go-ml.dev/pkg/bankloan/explore"
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/model/hyperopt"
	"go-ml.dev/pkg/bankloan/model/logit"
	"go-ml.dev/pkg/bankloan/model/tree"
	"go-ml.dev/pkg/bankloan/report"
	"go-ml.dev/pkg/bankloan/resample"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/zorros/zlog"
	"golang.org/x/sync/errgroup"
	"math/rand"
	"runtime"
	"time"
)

// TestField marks holdout rows of the split dataset
const TestField = "__test__"

const (
	LogitModel = "logit"
	TreeModel  = "tree"
)

func prepare(ctx context.Context, cfg *config.Config) (*tables.Table, *report.Report, error) {
	zlog.Info(fmt.Sprintf("loading %v", cfg.Data.Path))
	t, err := bank.Load(tables.File(cfg.Data.Path))
	if err != nil {
		return nil, nil, err
	}
	r := &report.Report{
		RunID:   uuid.New().String(),
		Created: time.Now(),
		Source:  cfg.Data.Path,
		Seed:    cfg.Split.Seed,
		Rows:    t.Len(),
		Columns: t.Names(),
	}
	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}
	t, r.Cleaning, err = bank.Clean(t, cfg.CleanOptions())
	if err != nil {
		return nil, nil, err
	}
	if r.Cleaning.NegativeExperience > 0 {
		zlog.Warning(fmt.Sprintf("%d records have negative experience", r.Cleaning.NegativeExperience))
	}
	if r.Profile, err = explore.Explore(t, bank.Label, cfg.Data.Bins); err != nil {
		return nil, nil, err
	}
	return t, r, nil
}

/*
Explore loads, cleans and profiles the dataset without fitting models
*/
func Explore(ctx context.Context, cfg *config.Config) (*report.Report, error) {
	_, r, err := prepare(ctx, cfg)
	return r, err
}

/*
Run executes the whole study: profile, transform, split, resample every
configured way and fit logistic regression and decision tree on every
training variant, all evaluated on the same holdout rows
*/
func Run(ctx context.Context, cfg *config.Config) (*report.Report, error) {
	t, r, err := prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if t, err = bank.Transform(t, cfg.TransformOptions()); err != nil {
		return nil, err
	}
	r.Features = bank.Features(t)
	src, err := model.StratifiedSplit(t, bank.Label, TestField, cfg.Split.Train, cfg.Split.Seed)
	if err != nil {
		return nil, err
	}
	ds := model.Dataset{Source: src, Label: bank.Label, Test: TestField, Features: r.Features}
	if r.Split, err = split(ds); err != nil {
		return nil, err
	}
	zlog.Info(fmt.Sprintf("split %d training and %d test rows", r.Split.Train, r.Split.Test))

	dt := tree.DecisionTree{
		MaxDepth:  cfg.Tree.MaxDepth,
		MinSplit:  cfg.Tree.MinSplit,
		MinBucket: cfg.Tree.MinBucket,
		Cp:        cfg.Tree.Cp,
	}
	if cfg.Tune.Enabled {
		tuned, err := tune(ctx, cfg, ds, dt)
		if err != nil {
			return nil, err
		}
		tuned.Params.Apply(dt.Fields())
		r.Tuned, r.TunedScore = tuned.Params, tuned.Score
	}

	variants, err := resampled(ctx, cfg, ds, r)
	if err != nil {
		return nil, err
	}
	lr := logit.LogisticRegression{Threshold: cfg.Logit.Threshold, L2: cfg.Logit.L2}
	if r.Fits, err = fit(ctx, cfg, variants, r.Variants, lr, dt); err != nil {
		return nil, err
	}
	if b, ok := r.Best(); ok {
		zlog.Info(fmt.Sprintf("best recall %.3f by %v on %v", b.Test.Recall(), b.Model, b.Variant))
	}
	return r, nil
}

func count(t *tables.Table) (n, positive int, err error) {
	y, err := tables.Labels(t, bank.Label)
	if err != nil {
		return
	}
	for _, v := range y {
		positive += v
	}
	return len(y), positive, nil
}

func split(ds model.Dataset) (s report.Split, err error) {
	if s.Train, s.TrainPositive, err = count(ds.Train()); err != nil {
		return
	}
	s.Test, s.TestPositive, err = count(ds.Holdout())
	return
}

func tune(ctx context.Context, cfg *config.Config, ds model.Dataset, dt tree.DecisionTree) (*hyperopt.Report, error) {
	space := hyperopt.Space{
		Source:     ds.Train(),
		Features:   ds.Features,
		Label:      ds.Label,
		Seed:       cfg.Split.Seed,
		Kfold:      cfg.Tune.Kfold,
		Iterations: cfg.Tune.Iterations,
		Score:      model.RecallScore,
		ModelFunc: func(p model.Params) model.HungryModel {
			x := dt
			p.Apply(x.Fields())
			return x
		},
		Variance: hyperopt.Variance{
			"cp":       hyperopt.LogRange(cfg.Tune.Cp),
			"maxdepth": hyperopt.IntRange(cfg.Tune.MaxDepth),
		},
	}
	return space.Search(ctx)
}

func resampled(ctx context.Context, cfg *config.Config, ds model.Dataset, r *report.Report) ([]model.Dataset, error) {
	opts := resample.Options{
		Smote: resample.Smote{K: cfg.Resample.Smote.K, Over: cfg.Resample.Smote.Over, Under: cfg.Resample.Smote.Under},
		Rose:  resample.Rose{Shrink: cfg.Resample.Rose.Shrink, P: cfg.Resample.Rose.P},
	}
	train := ds.Train()
	variants := make([]model.Dataset, 0, len(cfg.Resample.Methods))
	for i, name := range cfg.Resample.Methods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := resample.ByName(name, opts)
		if err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(cfg.Split.Seed + int64(i) + 1))
		v, err := s.Resample(train, ds.Label, rng)
		if err != nil {
			return nil, err
		}
		x, err := ds.Replace(v)
		if err != nil {
			return nil, err
		}
		n, pos, err := count(v)
		if err != nil {
			return nil, err
		}
		zlog.Info(fmt.Sprintf("%v training set has %d rows, %d accepted", s.Name(), n, pos))
		r.Variants = append(r.Variants, report.Variant{Name: s.Name(), Rows: n, Positive: pos})
		variants = append(variants, x)
	}
	return variants, nil
}

func fit(ctx context.Context, cfg *config.Config, variants []model.Dataset, names []report.Variant, lr logit.LogisticRegression, dt tree.DecisionTree) ([]report.Fit, error) {
	type job struct {
		variant string
		model   string
		ds      model.Dataset
		hungry  model.HungryModel
		train   model.Training
	}
	jobs := []job{}
	for i, ds := range variants {
		v := names[i].Name
		jobs = append(jobs,
			job{v, LogitModel, ds, lr, training(cfg, v+"/"+LogitModel, cfg.Logit.Iterations, cfg.Logit.Tolerance)},
			job{v, TreeModel, ds, dt, model.Training{}})
	}
	fits := make([]report.Fit, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fu.Fnzi(cfg.Workers, runtime.NumCPU()))
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep, err := j.hungry.Feed(j.ds).Train(j.train)
			if err != nil {
				return err
			}
			fits[i] = describe(j.variant, j.model, rep)
			zlog.Info(fmt.Sprintf("%v/%v test recall %.3f", j.variant, j.model, rep.Test.Recall()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fits, nil
}

func training(cfg *config.Config, name string, iterations int, tolerance float64) model.Training {
	t := model.Training{Iterations: iterations, Tolerance: tolerance}
	if cfg.Verbose {
		t.Verbose = func(s string) { zlog.Info(name + " " + s) }
	}
	return t
}

func describe(variant, name string, rep *model.Report) report.Fit {
	f := report.Fit{
		Variant:    variant,
		Model:      name,
		Iterations: rep.Iterations,
		Train:      rep.Train,
		Test:       rep.Test,
	}
	switch m := rep.Model.(type) {
	case *logit.Model:
		f.Coefficients = m.Coefficients()
	case *tree.Model:
		f.Importance = m.Importance()
		f.Rules = m.Rules()
	}
	return f
}
