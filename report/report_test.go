package report

import (
	"github.com/xuri/excelize/v2"
	"go-ml.dev/pkg/bankloan/bank"
	"go-ml.dev/pkg/bankloan/explore"
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/model/logit"
	"go-ml.dev/pkg/bankloan/model/tree"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/iokit"
	"gotest.tools/assert"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixture() *Report {
	return &Report{
		RunID:   "0f8fad5b-d9cb-469f-a165-70867728950e",
		Created: time.Date(2020, 4, 21, 10, 0, 0, 0, time.UTC),
		Source:  "bank.csv",
		Seed:    42,
		Rows:    10,
		Columns: []string{"income", "personal_loan"},
		Cleaning: bank.CleanReport{
			Dropped:    []string{"id"},
			ZipFixed:   1,
			Indicators: []string{"personal_loan"},
		},
		Profile: &explore.Profile{
			Rows: 10,
			Summaries: []explore.Summary{
				{Name: "income", Kind: tables.Float, N: 10, Min: 1, Max: 10, Median: 5.5, Mean: 5.5},
				{Name: "personal_loan", Kind: tables.Category, N: 10,
					Levels: []explore.LevelCount{{Level: "0", Count: 8}, {Level: "1", Count: 2}}},
			},
			Balance:    []explore.LevelCount{{Level: "0", Count: 8}, {Level: "1", Count: 2}},
			Histograms: []explore.Histogram{{Name: "income", Edges: []float64{1, 5.5, 10}, Counts: []float64{5, 5}}},
			Correlation: explore.Matrix{
				Names:  []string{"income", "cc_avg"},
				Values: [][]float64{{1, 0.6}, {0.6, 1}},
			},
			ClassMeans: []explore.ClassMean{{Name: "income", Means: [2]float64{4, 9.5}}},
		},
		Features: []string{"income"},
		Split:    Split{Train: 7, Test: 3, TrainPositive: 1, TestPositive: 1},
		Variants: []Variant{{"original", 7, 1}, {"up", 12, 6}},
		Fits: []Fit{
			{Variant: "original", Model: "logit",
				Test:         model.Metrics{Confusion: model.Confusion{TP: 0, FN: 1, TN: 2}},
				Coefficients: []logit.Coefficient{{Name: logit.Intercept, Estimate: -3}, {Name: "income", Estimate: 0.4}}},
			{Variant: "original", Model: "tree",
				Test:       model.Metrics{Confusion: model.Confusion{TP: 1, FP: 1, TN: 1}},
				Importance: []tree.Importance{{Name: "income", Value: 100}},
				Rules:      []string{"income >= 8 => 1.000 (n=2)"}},
			{Variant: "up", Model: "tree",
				Test: model.Metrics{Confusion: model.Confusion{TP: 1, TN: 2}}},
		},
		Tuned:      model.Params{"cp": 0.01, "maxdepth": 4},
		TunedScore: 0.5,
	}
}

func Test_Best(t *testing.T) {
	r := fixture()
	b, ok := r.Best()
	assert.Assert(t, ok)
	assert.Equal(t, b.Variant, "up")
	assert.Equal(t, b.Model, "tree")
	_, ok = (&Report{}).Best()
	assert.Assert(t, !ok)
}

func Test_Markdown(t *testing.T) {
	md := fixture().Markdown()
	for _, s := range []string{
		"## Dataset", "## Cleaning", "## Summary statistics", "## Class balance",
		"## Distributions", "## Correlation", "## Class means", "## Split",
		"## Resampled variants", "## Results", "## Logistic coefficients",
		"## Tree rules and importance", "## Best model", "## Tuned tree",
	} {
		assert.Assert(t, strings.Contains(md, s), "missing %q", s)
	}
	assert.Assert(t, strings.Contains(md, "| up | tree | 1.000 |"))
	assert.Assert(t, strings.Contains(md, "| NPV | F1 | accuracy | balanced |"))
	assert.Assert(t, strings.Contains(md, "| original | tree | 1.000 | 0.500 | 0.500 | 1.000 | 0.667 | 0.667 | 0.750 |"))
	assert.Assert(t, strings.Contains(md, "income >= 8 => 1.000 (n=2)"))
	assert.Assert(t, strings.Contains(md, "cp=0.01, maxdepth=4"))
	assert.Assert(t, strings.Contains(md, "**tree** on **up** variant"))
	assert.Assert(t, strings.Contains(md, "| train | 7 | 1 | 14.3% |"))
}

func Test_Histogram(t *testing.T) {
	s := histogram(explore.Histogram{Edges: []float64{0, 1, 2}, Counts: []float64{4, 2}})
	lines := strings.Split(strings.TrimSpace(s), "\n")
	assert.Equal(t, len(lines), 2)
	assert.Equal(t, strings.Count(lines[0], "#"), histogramWidth)
	assert.Equal(t, strings.Count(lines[1], "#"), histogramWidth/2)
}

func Test_WriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := fixture()
	assert.NilError(t, r.WriteMarkdown(iokit.File(path)))
	b, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(b), r.Markdown())
}

func Test_WriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	assert.NilError(t, fixture().WriteXLSX(iokit.File(path)))
	f, err := excelize.OpenFile(path)
	assert.NilError(t, err)
	defer f.Close()
	assert.DeepEqual(t, f.GetSheetList(), []string{SummarySheet, CorrelationSheet, ResultsSheet, CoefficientsSheet})

	rows, err := f.GetRows(ResultsSheet)
	assert.NilError(t, err)
	assert.Equal(t, len(rows), 4)
	assert.Equal(t, rows[3][0], "up")
	assert.Equal(t, rows[3][2], "1")
	assert.Equal(t, rows[0][5], "npv")
	assert.Equal(t, rows[0][8], "balanced_accuracy")
	assert.Equal(t, rows[2][5], "1")
	assert.Equal(t, rows[2][8], "0.75")

	rows, err = f.GetRows(CoefficientsSheet)
	assert.NilError(t, err)
	assert.Equal(t, len(rows), 3)
	assert.Equal(t, rows[2][1], "income")

	rows, err = f.GetRows(CorrelationSheet)
	assert.NilError(t, err)
	assert.Equal(t, rows[1][2], "0.6")
}

func Test_Render(t *testing.T) {
	s, err := fixture().Render(100)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(s, "Best model"))
}
