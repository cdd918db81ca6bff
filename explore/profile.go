package explore

import (
	"go-ml.dev/pkg/bankloan/tables"
	"math"
)

/*
ClassMean is the mean of a numeric column per label class
*/
type ClassMean struct {
	Name  string
	Means [2]float64 // negative, positive class
}

/*
ClassMeans computes means of numeric columns for every class of the binary label
*/
func ClassMeans(t *tables.Table, label string) ([]ClassMean, error) {
	y, err := tables.Labels(t, label)
	if err != nil {
		return nil, err
	}
	r := []ClassMean{}
	for _, c := range t.Columns() {
		if c.Kind != tables.Float || c.Name == label {
			continue
		}
		s, n := [2]float64{}, [2]int{}
		for i, x := range c.Data {
			s[y[i]] += x
			n[y[i]]++
		}
		m := ClassMean{Name: c.Name}
		for k := range s {
			if n[k] > 0 {
				m.Means[k] = s[k] / float64(n[k])
			}
		}
		r = append(r, m)
	}
	return r, nil
}

/*
Profile is the exploratory analysis of a dataset
*/
type Profile struct {
	Rows        int
	Summaries   []Summary
	Balance     []LevelCount
	Histograms  []Histogram
	Correlation Matrix
	ClassMeans  []ClassMean
}

/*
Explore profiles the table with binary label
*/
func Explore(t *tables.Table, label string, bins int) (*Profile, error) {
	p := &Profile{Rows: t.Len(), Summaries: Summarize(t)}
	var err error
	if p.Balance, err = Balance(t, label); err != nil {
		return nil, err
	}
	for _, c := range t.Columns() {
		if c.Kind == tables.Float {
			p.Histograms = append(p.Histograms, Hist(c, bins))
		}
	}
	if p.Correlation, err = Correlate(t); err != nil {
		return nil, err
	}
	if p.ClassMeans, err = ClassMeans(t, label); err != nil {
		return nil, err
	}
	return p, nil
}

/*
Skewed returns names of numeric columns with absolute skewness above threshold
*/
func (p *Profile) Skewed(threshold float64) []string {
	r := []string{}
	for _, s := range p.Summaries {
		if s.Kind == tables.Float && math.Abs(s.Skewness) > threshold {
			r = append(r, s.Name)
		}
	}
	return r
}
