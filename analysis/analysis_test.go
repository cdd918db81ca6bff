package analysis

import (
	"context"
	"fmt"
	"go-ml.dev/pkg/bankloan/config"
	"go-ml.dev/pkg/bankloan/fu"
	"gotest.tools/assert"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = "ID,Age,Experience,Income,ZIP Code,Family,CCAvg,Education,Mortgage,Personal Loan,Securities Account,CD Account,Online,CreditCard"

func customers(t *testing.T, n int) string {
	rng := rand.New(rand.NewSource(7))
	b := strings.Builder{}
	b.WriteString(header + "\n")
	bit := func(p float64) int {
		if rng.Float64() < p {
			return 1
		}
		return 0
	}
	for i := 1; i <= n; i++ {
		age := 23 + rng.Intn(45)
		income := 8 + rng.Intn(200)
		zip := 90000 + rng.Intn(6000)
		if i == 3 {
			zip = 9307
		}
		mortgage := 0
		if rng.Float64() < 0.3 {
			mortgage = 75 + rng.Intn(400)
		}
		cd := bit(0.06)
		ccavg := float64(income) / 40 * (0.5 + rng.Float64())
		loan := bit(fu.Sigmoid(-9 + 0.06*float64(income) + 1.5*float64(cd)))
		fmt.Fprintf(&b, "%d,%d,%d,%d,%d,%d,%.1f,%d,%d,%d,%d,%d,%d,%d\n",
			i, age, age-25+rng.Intn(3)-1, income, zip, 1+rng.Intn(4), ccavg,
			1+rng.Intn(3), mortgage, loan, bit(0.1), cd, bit(0.6), bit(0.3))
	}
	path := filepath.Join(t.TempDir(), "customers.csv")
	assert.NilError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func configure(t *testing.T, path string, kv ...interface{}) *config.Config {
	v := config.New()
	v.Set("data.path", path)
	for i := 0; i < len(kv); i += 2 {
		v.Set(kv[i].(string), kv[i+1])
	}
	cfg, err := config.Load(v, "")
	assert.NilError(t, err)
	return cfg
}

func Test_Run(t *testing.T) {
	cfg := configure(t, customers(t, 600))
	r, err := Run(context.Background(), cfg)
	assert.NilError(t, err)

	assert.Equal(t, r.Rows, 600)
	assert.Equal(t, r.Cleaning.ZipFixed, 1)
	assert.Assert(t, r.Profile != nil)
	assert.Equal(t, r.Split.Train+r.Split.Test, 600)
	assert.Assert(t, r.Split.TrainPositive > 0 && r.Split.TestPositive > 0)
	for _, f := range r.Features {
		assert.Assert(t, f != "zip_code" && f != "experience" && f != "personal_loan", f)
	}

	assert.Equal(t, len(r.Variants), 5)
	byName := map[string][2]int{}
	for _, v := range r.Variants {
		byName[v.Name] = [2]int{v.Rows, v.Positive}
	}
	pos, neg := r.Split.TrainPositive, r.Split.Train-r.Split.TrainPositive
	assert.Equal(t, byName["original"], [2]int{r.Split.Train, pos})
	assert.Equal(t, byName["down"], [2]int{2 * pos, pos})
	assert.Equal(t, byName["up"], [2]int{2 * neg, neg})
	assert.Equal(t, byName["smote"][1], 3*pos)

	assert.Equal(t, len(r.Fits), 10)
	for i, f := range r.Fits {
		assert.Equal(t, f.Variant, r.Variants[i/2].Name)
		assert.Equal(t, f.Test.Total(), r.Split.Test)
		assert.Equal(t, f.Test.TP+f.Test.FN, r.Split.TestPositive)
		if i%2 == 0 {
			assert.Equal(t, f.Model, LogitModel)
			assert.Assert(t, len(f.Coefficients) > 0)
		} else {
			assert.Equal(t, f.Model, TreeModel)
			assert.Assert(t, len(f.Rules) > 0)
		}
	}
	assert.Assert(t, r.Fits[0].Test.AUC > 0.8, "AUC %v", r.Fits[0].Test.AUC)
	_, ok := r.Best()
	assert.Assert(t, ok)
}

func Test_Deterministic(t *testing.T) {
	path := customers(t, 400)
	cfg := configure(t, path, "resample.methods", []string{"down", "smote", "rose"}, "workers", 3)
	a, err := Run(context.Background(), cfg)
	assert.NilError(t, err)
	b, err := Run(context.Background(), cfg)
	assert.NilError(t, err)
	assert.Assert(t, a.RunID != b.RunID)
	assert.Equal(t, a.Split, b.Split)
	assert.DeepEqual(t, a.Variants, b.Variants)
	for i := range a.Fits {
		assert.Equal(t, a.Fits[i].Test.Confusion, b.Fits[i].Test.Confusion)
		assert.DeepEqual(t, a.Fits[i].Rules, b.Fits[i].Rules)
	}
}

func Test_Tune(t *testing.T) {
	cfg := configure(t, customers(t, 400),
		"resample.methods", []string{"original"},
		"tune.enabled", true, "tune.kfold", 3, "tune.iterations", 3)
	r, err := Run(context.Background(), cfg)
	assert.NilError(t, err)
	assert.Assert(t, r.Tuned != nil)
	cp := r.Tuned["cp"]
	assert.Assert(t, cp > 0.001 && cp < 0.1, "cp %v", cp)
	d := r.Tuned["maxdepth"]
	assert.Assert(t, d >= 2 && d <= 10, "maxdepth %v", d)
	assert.Equal(t, len(r.Fits), 2)
}

func Test_Explore(t *testing.T) {
	r, err := Explore(context.Background(), configure(t, customers(t, 100)))
	assert.NilError(t, err)
	assert.Assert(t, r.Profile != nil)
	assert.Equal(t, r.Profile.Rows, 100)
	assert.Equal(t, len(r.Fits), 0)
	assert.Assert(t, !strings.Contains(r.Markdown(), "## Results"))
}

func Test_Errors(t *testing.T) {
	_, err := Run(context.Background(), configure(t, filepath.Join(t.TempDir(), "absent.csv")))
	assert.Assert(t, err != nil)

	path := filepath.Join(t.TempDir(), "short.csv")
	assert.NilError(t, os.WriteFile(path, []byte("ID,Age\n1,30\n"), 0644))
	_, err = Run(context.Background(), configure(t, path))
	assert.ErrorContains(t, err, "schema")

	_, err = Run(context.Background(), configure(t, customers(t, 100), "resample.methods", []string{"magic"}))
	assert.ErrorContains(t, err, "unknown resampling method")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, configure(t, customers(t, 100)))
	assert.Equal(t, err, context.Canceled)
}
