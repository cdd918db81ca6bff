package tables

import (
	"strconv"
	"strings"
)

/*
Kind is a column type
*/
type Kind int

const (
	Float    Kind = iota // numeric column
	Category             // categorical column, cells are indexes in Levels
)

func (k Kind) String() string {
	if k == Category {
		return "category"
	}
	return "float"
}

/*
Column is a named typed vector of values. Columns are never modified after
they are added into a table.
*/
type Column struct {
	Name   string
	Kind   Kind
	Levels []string
	Data   []float64
}

/*
Floats creates a new numeric column
*/
func Floats(name string, data []float64) *Column {
	return &Column{Name: name, Kind: Float, Data: data}
}

/*
Categories creates a new categorical column from string values,
levels are ordered by first appearance unless levels are specified
*/
func Categories(name string, values []string, levels ...string) (*Column, error) {
	index := map[string]int{}
	for i, l := range levels {
		index[l] = i
	}
	fixed := len(levels) > 0
	data := make([]float64, len(values))
	for i, v := range values {
		j, ok := index[v]
		if !ok {
			if fixed {
				return nil, errorf("column `%v` has unexpected level `%v`", name, v)
			}
			j = len(levels)
			index[v] = j
			levels = append(levels, v)
		}
		data[i] = float64(j)
	}
	return &Column{Name: name, Kind: Category, Levels: levels, Data: data}, nil
}

func (c *Column) Len() int {
	return len(c.Data)
}

func (c *Column) Float(i int) float64 {
	return c.Data[i]
}

/*
String returns cell value as a string, the level name for categories
*/
func (c *Column) String(i int) string {
	if c.Kind == Category {
		return c.Levels[int(c.Data[i])]
	}
	return strconv.FormatFloat(c.Data[i], 'g', -1, 64)
}

/*
Binary returns 1 for cells of the positive class and 0 otherwise.
Numeric cells are positive when non-zero, categorical ones when
the level is one of 1, true or yes
*/
func (c *Column) Binary(i int) int {
	if c.Kind == Category {
		switch strings.ToLower(c.Levels[int(c.Data[i])]) {
		case "1", "true", "yes":
			return 1
		}
		return 0
	}
	if c.Data[i] != 0 {
		return 1
	}
	return 0
}

/*
Values returns a copy of the column data
*/
func (c *Column) Values() []float64 {
	r := make([]float64, len(c.Data))
	copy(r, c.Data)
	return r
}

func (c *Column) subset(rows []int) *Column {
	data := make([]float64, len(rows))
	for i, j := range rows {
		data[i] = c.Data[j]
	}
	return &Column{Name: c.Name, Kind: c.Kind, Levels: c.Levels, Data: data}
}
