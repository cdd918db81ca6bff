package tables

import (
	"bytes"
	"github.com/ulikunitz/xz"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"io"
	"testing"
)

const sample = `ID,Age,ZIP Code,CCAvg,Personal Loan,Grade
1,25,91107,1.6,0,a
2,45,90089,1.5,1,b
3,39,94720,1.0,0,a
4,35,94112,2.7,1,c
`

func Test_NormalizeName(t *testing.T) {
	cases := map[string]string{
		"ID":                 "id",
		"ZIP Code":           "zip_code",
		"CCAvg":              "cc_avg",
		"CreditCard":         "credit_card",
		"Personal Loan":      "personal_loan",
		"CD Account":         "cd_account",
		"Securities Account": "securities_account",
		" Income ":           "income",
		"already_snake":      "already_snake",
	}
	for s, x := range cases {
		assert.Equal(t, NormalizeName(s), x, s)
	}
}

func Test_ReadCSV(t *testing.T) {
	q := LuckyReadCSV(StringSource(sample))
	assert.Equal(t, q.Len(), 4)
	assert.DeepEqual(t, q.Names(), []string{"id", "age", "zip_code", "cc_avg", "personal_loan", "grade"})
	c, err := q.Col("cc_avg")
	assert.NilError(t, err)
	assert.Equal(t, c.Kind, Float)
	assert.Equal(t, c.Float(3), 2.7)
	g, _ := q.Col("grade")
	assert.Equal(t, g.Kind, Category)
	assert.DeepEqual(t, g.Levels, []string{"a", "b", "c"})
	assert.Equal(t, g.String(3), "c")
}

func Test_ReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(StringSource(""))
	assert.ErrorContains(t, err, "empty")
	_, err = ReadCSV(StringSource("a,b\n1,2,3\n"))
	assert.Assert(t, err != nil)
	_, err = ReadCSV(StringSource("a,A\n1,2\n"))
	assert.ErrorContains(t, err, "duplicate")
}

func Test_Xz(t *testing.T) {
	bf := bytes.Buffer{}
	w, err := xz.NewWriter(&bf)
	assert.NilError(t, err)
	_, err = io.WriteString(w, sample)
	assert.NilError(t, err)
	assert.NilError(t, w.Close())
	q, err := ReadCSV(Xz(StringSource(bf.String())))
	assert.NilError(t, err)
	assert.Equal(t, q.Len(), 4)
}

func Test_SubsetExceptWith(t *testing.T) {
	q := LuckyReadCSV(StringSource(sample))
	s := q.Subset([]int{3, 1})
	c, _ := s.Col("id")
	assert.DeepEqual(t, c.Data, []float64{4, 2})
	e := q.Except("id", "grade")
	assert.Equal(t, e.Width(), 4)
	_, err := e.Col("id")
	assert.Assert(t, xerrors.Is(err, ErrNoColumn))
	w, err := q.With(Floats("id", []float64{9, 9, 9, 9}))
	assert.NilError(t, err)
	c, _ = w.Col("id")
	assert.Equal(t, c.Float(0), 9.0)
	c, _ = q.Col("id")
	assert.Equal(t, c.Float(0), 1.0)
	_, err = q.With(Floats("short", []float64{1}))
	assert.Assert(t, err != nil)
	f := q.Filter(func(i int) bool { return i%2 == 0 })
	assert.Equal(t, f.Len(), 2)
}

func Test_Concat(t *testing.T) {
	a, _ := New(Floats("x", []float64{1, 2}), mustCategories(t, "c", []string{"u", "v"}))
	b, _ := New(Floats("x", []float64{3}), mustCategories(t, "c", []string{"w"}))
	q, err := a.Concat(b)
	assert.NilError(t, err)
	assert.Equal(t, q.Len(), 3)
	c, _ := q.Col("c")
	assert.Equal(t, c.String(2), "w")
	assert.Equal(t, c.String(0), "u")
}

func Test_Encoder(t *testing.T) {
	q := LuckyReadCSV(StringSource(sample))
	e, err := NewEncoder(q, []string{"age", "grade"})
	assert.NilError(t, err)
	assert.DeepEqual(t, e.Names(), []string{"age", "gradeb", "gradec"})
	m, err := e.Matrix(q.Subset([]int{1, 3}))
	assert.NilError(t, err)
	assert.DeepEqual(t, m.RawRowView(0), []float64{45, 1, 0})
	assert.DeepEqual(t, m.RawRowView(1), []float64{35, 0, 1})

	other, _ := New(Floats("age", []float64{30}), mustCategories(t, "grade", []string{"z"}))
	_, err = e.Matrix(other)
	assert.ErrorContains(t, err, "unknown level")
}

func Test_Labels(t *testing.T) {
	q := LuckyReadCSV(StringSource(sample))
	y, err := Labels(q, "personal_loan")
	assert.NilError(t, err)
	assert.DeepEqual(t, y, []int{0, 1, 0, 1})
	c, _ := Categories("yes", []string{"no", "Yes"})
	assert.Equal(t, c.Binary(1), 1)
	assert.Equal(t, c.Binary(0), 0)
}

func mustCategories(t *testing.T, name string, v []string) *Column {
	c, err := Categories(name, v)
	assert.NilError(t, err)
	return c
}
