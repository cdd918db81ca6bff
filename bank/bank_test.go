package bank

import (
	"go-ml.dev/pkg/bankloan/tables"
	"gotest.tools/assert"
	"math"
	"testing"
)

const customers = `ID,Age,Experience,Income,ZIP Code,Family,CCAvg,Education,Mortgage,Personal Loan,Securities Account,CD Account,Online,CreditCard
1,25,1,49,91107,4,1.6,1,0,0,1,0,0,0
2,45,19,34,90089,3,1.5,1,0,0,1,0,0,0
3,39,15,11,9307,1,1.0,1,0,0,0,0,0,0
4,35,9,100,94112,1,2.7,2,0,0,0,0,0,0
5,35,-1,45,91330,4,1.0,2,0,0,0,0,0,1
6,37,13,29,92121,4,0.4,2,155,0,0,0,1,0
7,53,27,72,91711,2,1.5,2,0,1,0,0,1,0
`

func load(t *testing.T) *tables.Table {
	q, err := Load(tables.StringSource(customers))
	assert.NilError(t, err)
	return q
}

func Test_Load(t *testing.T) {
	q := load(t)
	assert.Equal(t, q.Len(), 7)
	assert.DeepEqual(t, q.Names(), Columns)
	_, err := Load(tables.StringSource("ID,Age\n1,2\n"))
	assert.ErrorContains(t, err, "schema")
}

func Test_Clean(t *testing.T) {
	q, r, err := Clean(load(t), DefaultCleanOptions())
	assert.NilError(t, err)
	_, ok := q.Lookup(ID)
	assert.Assert(t, !ok)
	assert.Equal(t, r.ZipFixed, 1)
	assert.Equal(t, r.ZipInvalid, 0)
	assert.Equal(t, r.NegativeExperience, 1)
	z, _ := q.Col(ZipCode)
	assert.Equal(t, z.Float(2), 93007.0)
	for _, n := range Indicators {
		c, err := q.Col(n)
		assert.NilError(t, err)
		assert.Equal(t, c.Kind, tables.Category, n)
		assert.DeepEqual(t, c.Levels, []string{"0", "1"})
	}
	l, _ := q.Col(Label)
	assert.Equal(t, l.Binary(6), 1)
	assert.Equal(t, l.Binary(0), 0)
}

func Test_CleanRejectsBadIndicator(t *testing.T) {
	q := load(t)
	bad, err := q.With(tables.Floats(Online, []float64{0, 1, 2, 0, 0, 0, 0}))
	assert.NilError(t, err)
	_, _, err = Clean(bad, DefaultCleanOptions())
	assert.ErrorContains(t, err, "online")
}

func Test_Transform(t *testing.T) {
	q, _, err := Clean(load(t), DefaultCleanOptions())
	assert.NilError(t, err)
	x, err := Transform(q, DefaultTransformOptions())
	assert.NilError(t, err)
	assert.Equal(t, x.Width(), q.Width()-2)
	inc, _ := x.Col(Income)
	assert.Equal(t, inc.Float(0), math.Log1p(49))
	m, _ := x.Col(Mortgage)
	assert.Equal(t, m.Float(0), 0.0)
	orig, _ := q.Col(Income)
	assert.Equal(t, orig.Float(0), 49.0)
	assert.Assert(t, len(Features(x)) == x.Width()-1)

	_, err = Transform(q, TransformOptions{Log: []string{Label}})
	assert.ErrorContains(t, err, "categorical")
	_, err = Transform(q, TransformOptions{Drop: []string{"nothing"}})
	assert.Assert(t, err != nil)
}
