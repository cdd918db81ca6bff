package report

import (
	"github.com/xuri/excelize/v2"
	"go-ml.dev/pkg/bankloan/tables"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zorros"
)

const (
	SummarySheet      = "Summary"
	CorrelationSheet  = "Correlation"
	ResultsSheet      = "Results"
	CoefficientsSheet = "Coefficients"
)

type sheet struct {
	f    *excelize.File
	name string
	row  int
}

func (s *sheet) append(cells ...interface{}) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	return s.f.SetSheetRow(s.name, cell, &cells)
}

/*
Workbook builds the spreadsheet rendition of the report
*/
func (r *Report) Workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, zorros.Trace(err)
	}
	for _, n := range []string{CorrelationSheet, ResultsSheet, CoefficientsSheet} {
		if _, err := f.NewSheet(n); err != nil {
			return nil, zorros.Trace(err)
		}
	}
	for _, w := range []func(*sheet) error{r.summarySheet, r.correlationSheet, r.resultsSheet, r.coefficientsSheet} {
		if err := w(&sheet{f: f}); err != nil {
			f.Close()
			return nil, zorros.Wrapf(err, "failed to fill workbook: %v", err.Error())
		}
	}
	return f, nil
}

func (r *Report) summarySheet(s *sheet) error {
	s.name = SummarySheet
	if err := s.append("column", "n", "min", "q1", "median", "mean", "q3", "max", "std", "skewness"); err != nil {
		return err
	}
	if r.Profile == nil {
		return nil
	}
	for _, x := range r.Profile.Summaries {
		if x.Kind != tables.Float {
			continue
		}
		if err := s.append(x.Name, x.N, x.Min, x.Q1, x.Median, x.Mean, x.Q3, x.Max, x.Std, x.Skewness); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) correlationSheet(s *sheet) error {
	s.name = CorrelationSheet
	if r.Profile == nil {
		return nil
	}
	m := r.Profile.Correlation
	head := []interface{}{""}
	for _, n := range m.Names {
		head = append(head, n)
	}
	if err := s.append(head...); err != nil {
		return err
	}
	for i, n := range m.Names {
		x := []interface{}{n}
		for _, v := range m.Values[i] {
			x = append(x, v)
		}
		if err := s.append(x...); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) resultsSheet(s *sheet) error {
	s.name = ResultsSheet
	if err := s.append("variant", "model", "recall", "specificity", "precision", "npv", "f1", "accuracy", "balanced_accuracy", "auc", "kappa", "brier", "tp", "fn", "fp", "tn"); err != nil {
		return err
	}
	for _, f := range r.Fits {
		m := f.Test
		if err := s.append(f.Variant, f.Model, m.Recall(), m.Specificity(), m.Precision(), m.NPV(), m.F1(),
			m.Accuracy(), m.BalancedAccuracy(), m.AUC, m.Kappa(), m.Brier, m.TP, m.FN, m.FP, m.TN); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) coefficientsSheet(s *sheet) error {
	s.name = CoefficientsSheet
	if err := s.append("variant", "term", "estimate", "stderr", "z", "p"); err != nil {
		return err
	}
	for _, f := range r.Fits {
		for _, k := range f.Coefficients {
			if err := s.append(f.Variant, k.Name, k.Estimate, k.StdErr, k.Z, k.P); err != nil {
				return err
			}
		}
	}
	return nil
}

/*
WriteXLSX writes spreadsheet rendition of the report to the output
*/
func (r *Report) WriteXLSX(out iokit.Output) error {
	f, err := r.Workbook()
	if err != nil {
		return err
	}
	defer f.Close()
	wh, err := out.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if err = f.Write(wh); err != nil {
		return zorros.Wrapf(err, "failed to write workbook: %v", err.Error())
	}
	return wh.Commit()
}
