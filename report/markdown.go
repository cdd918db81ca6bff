package report

import (
	"fmt"
	"github.com/charmbracelet/glamour"
	"go-ml.dev/pkg/bankloan/explore"
	"go-ml.dev/pkg/bankloan/model"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zorros"
	"strings"
)

const (
	histogramWidth = 40
	skewThreshold  = 1
)

type section struct {
	*strings.Builder
}

func (s section) header(title string) {
	fmt.Fprintf(s, "\n## %s\n\n", title)
}

func (s section) row(cells ...interface{}) {
	s.WriteString("|")
	for _, c := range cells {
		fmt.Fprintf(s, " %v |", c)
	}
	s.WriteString("\n")
}

func (s section) table(head ...string) {
	x := make([]interface{}, len(head))
	d := make([]interface{}, len(head))
	for i, h := range head {
		x[i] = h
		d[i] = "---"
	}
	s.row(x...)
	s.row(d...)
}

func f3(x float64) string {
	return fmt.Sprintf("%.3f", x)
}

func percent(a, b int) string {
	if b == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(a)/float64(b))
}

/*
Markdown renders the report as a markdown document
*/
func (r *Report) Markdown() string {
	s := section{&strings.Builder{}}
	fmt.Fprintf(s, "# Personal loan acceptance\n\nRun `%s`, %s\n", r.RunID, r.Created.Format("2006-01-02 15:04:05"))

	s.header("Dataset")
	fmt.Fprintf(s, "Source `%s`: %d rows, %d columns.\n\n", r.Source, r.Rows, len(r.Columns))
	fmt.Fprintf(s, "Columns: %s.\n", strings.Join(r.Columns, ", "))

	s.header("Cleaning")
	c := r.Cleaning
	s.table("edit", "value")
	s.row("dropped columns", strings.Join(c.Dropped, ", "))
	s.row("fixed zip codes", c.ZipFixed)
	s.row("invalid zip codes", c.ZipInvalid)
	s.row("indicator columns", strings.Join(c.Indicators, ", "))
	s.row("negative experience", c.NegativeExperience)

	if p := r.Profile; p != nil {
		r.profile(s, p)
	}
	if len(r.Variants) == 0 && len(r.Fits) == 0 {
		return s.String()
	}

	s.header("Split")
	fmt.Fprintf(s, "Stratified split with seed %d, features: %s.\n\n", r.Seed, strings.Join(r.Features, ", "))
	s.table("subset", "rows", "accepted", "share")
	s.row("train", r.Split.Train, r.Split.TrainPositive, percent(r.Split.TrainPositive, r.Split.Train))
	s.row("test", r.Split.Test, r.Split.TestPositive, percent(r.Split.TestPositive, r.Split.Test))

	s.header("Resampled variants")
	s.table("variant", "rows", "accepted", "share")
	for _, v := range r.Variants {
		s.row(v.Name, v.Rows, v.Positive, percent(v.Positive, v.Rows))
	}

	if r.Tuned != nil {
		s.header("Tuned tree")
		fmt.Fprintf(s, "Cross validated recall %s with %s.\n", f3(r.TunedScore), params(r.Tuned))
	}

	s.header("Results")
	s.table("variant", "model", "recall", "specificity", "precision", "NPV", "F1", "accuracy", "balanced", "AUC", "kappa", "TP", "FN", "FP", "TN")
	for _, f := range r.Fits {
		m := f.Test
		s.row(f.Variant, f.Model, f3(m.Recall()), f3(m.Specificity()), f3(m.Precision()), f3(m.NPV()),
			f3(m.F1()), f3(m.Accuracy()), f3(m.BalancedAccuracy()), f3(m.AUC), f3(m.Kappa()), m.TP, m.FN, m.FP, m.TN)
	}

	s.header("Logistic coefficients")
	for _, f := range r.Fits {
		if len(f.Coefficients) == 0 {
			continue
		}
		fmt.Fprintf(s, "### %s\n\n", f.Variant)
		s.table("term", "estimate", "std. error", "z", "p")
		for _, k := range f.Coefficients {
			s.row(k.Name, fmt.Sprintf("%.4f", k.Estimate), fmt.Sprintf("%.4f", k.StdErr), fmt.Sprintf("%.2f", k.Z), fmt.Sprintf("%.4g", k.P))
		}
		s.WriteString("\n")
	}

	s.header("Tree rules and importance")
	for _, f := range r.Fits {
		if len(f.Rules) == 0 && len(f.Importance) == 0 {
			continue
		}
		fmt.Fprintf(s, "### %s\n\n", f.Variant)
		if len(f.Importance) > 0 {
			s.table("feature", "importance")
			for _, x := range f.Importance {
				s.row(x.Name, fmt.Sprintf("%.1f", x.Value))
			}
			s.WriteString("\n")
		}
		if len(f.Rules) > 0 {
			s.WriteString("```\n")
			for _, x := range f.Rules {
				s.WriteString(x + "\n")
			}
			s.WriteString("```\n\n")
		}
	}

	s.header("Best model")
	if b, ok := r.Best(); ok {
		fmt.Fprintf(s, "**%s** on **%s** variant: recall %s, F1 %s, accuracy %s.\n",
			b.Model, b.Variant, f3(b.Test.Recall()), f3(b.Test.F1()), f3(b.Test.Accuracy()))
	} else {
		s.WriteString("No model was fitted.\n")
	}
	return s.String()
}

func (r *Report) profile(s section, p *explore.Profile) {
	s.header("Summary statistics")
	s.table("column", "n", "min", "Q1", "median", "mean", "Q3", "max", "std", "skewness")
	for _, x := range p.Summaries {
		if x.Kind != tables.Float {
			continue
		}
		s.row(x.Name, x.N, f3(x.Min), f3(x.Q1), f3(x.Median), f3(x.Mean), f3(x.Q3), f3(x.Max), f3(x.Std), f3(x.Skewness))
	}
	if sk := p.Skewed(skewThreshold); len(sk) > 0 {
		fmt.Fprintf(s, "\nSkewed columns: %s.\n", strings.Join(sk, ", "))
	}
	for _, x := range p.Summaries {
		if x.Kind != tables.Category {
			continue
		}
		fmt.Fprintf(s, "\n`%s`:", x.Name)
		for _, l := range x.Levels {
			fmt.Fprintf(s, " %s=%d", l.Level, l.Count)
		}
		s.WriteString("\n")
	}

	s.header("Class balance")
	s.table("class", "rows", "share")
	for _, l := range p.Balance {
		s.row(l.Level, l.Count, percent(l.Count, p.Rows))
	}

	if len(p.Histograms) > 0 {
		s.header("Distributions")
		for _, h := range p.Histograms {
			fmt.Fprintf(s, "### %s\n\n```\n", h.Name)
			s.WriteString(histogram(h))
			s.WriteString("```\n\n")
		}
	}

	if len(p.Correlation.Names) > 0 {
		s.header("Correlation")
		head := append([]string{""}, p.Correlation.Names...)
		s.table(head...)
		for i, n := range p.Correlation.Names {
			x := []interface{}{n}
			for _, v := range p.Correlation.Values[i] {
				x = append(x, fmt.Sprintf("%.2f", v))
			}
			s.row(x...)
		}
	}

	s.header("Class means")
	s.table("column", "declined", "accepted")
	for _, m := range p.ClassMeans {
		s.row(m.Name, f3(m.Means[0]), f3(m.Means[1]))
	}
}

func histogram(h explore.Histogram) string {
	b := &strings.Builder{}
	top := 0.0
	for _, c := range h.Counts {
		if c > top {
			top = c
		}
	}
	for i, c := range h.Counts {
		n := 0
		if top > 0 {
			n = int(c / top * histogramWidth)
		}
		fmt.Fprintf(b, "%10.2f..%-10.2f %-*s %d\n", h.Edges[i], h.Edges[i+1], histogramWidth, strings.Repeat("#", n), int(c))
	}
	return b.String()
}

func params(p model.Params) string {
	x := []string{}
	for _, k := range p.Names() {
		x = append(x, fmt.Sprintf("%s=%.4g", k, p[k]))
	}
	return strings.Join(x, ", ")
}

/*
WriteMarkdown writes markdown rendition of the report to the output
*/
func (r *Report) WriteMarkdown(out iokit.Output) (err error) {
	wh, err := out.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if _, err = wh.Write([]byte(r.Markdown())); err != nil {
		return zorros.Trace(err)
	}
	return wh.Commit()
}

/*
Render formats the report for terminal with word wrapping at width
*/
func (r *Report) Render(width int) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width))
	if err != nil {
		return "", zorros.Wrapf(err, "failed to create renderer: %v", err.Error())
	}
	return tr.Render(r.Markdown())
}
