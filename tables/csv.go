package tables

import (
	"encoding/csv"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
	"strconv"
	"strings"
)

/*
ReadCSV reads a table from a CSV source with the header row.
Column names are normalized, numeric columns become Float and
all others Category
*/
func ReadCSV(src Source) (*Table, error) {
	rd, err := src.Open()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rd.Close()
	return readCSV(rd)
}

/*
LuckyReadCSV reads a table and panics on error
*/
func LuckyReadCSV(src Source) *Table {
	t, err := ReadCSV(src)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return t
}

func readCSV(rd io.Reader) (*Table, error) {
	r := csv.NewReader(rd)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err == io.EOF {
		return nil, errorf("csv source is empty")
	}
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to read csv header: %v", err.Error())
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = NormalizeName(strings.TrimPrefix(h, "\ufeff"))
		if names[i] == "" {
			return nil, errorf("csv column %d has empty name", i+1)
		}
	}
	cells := make([][]string, len(header))
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to read csv row %d: %v", row, err.Error())
		}
		for i, v := range rec {
			cells[i] = append(cells[i], strings.TrimSpace(v))
		}
	}
	cols := make([]*Column, len(names))
	for i, n := range names {
		if cols[i], err = column(n, cells[i]); err != nil {
			return nil, err
		}
	}
	return New(cols...)
}

func column(name string, values []string) (*Column, error) {
	data := make([]float64, len(values))
	numeric := true
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			numeric = false
			break
		}
		data[i] = f
	}
	if numeric {
		return Floats(name, data), nil
	}
	return Categories(name, values)
}
