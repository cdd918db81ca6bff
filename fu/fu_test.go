package fu

import (
	"gotest.tools/assert"
	"math"
	"reflect"
	"testing"
)

func Test_Fnz(t *testing.T) {
	assert.Equal(t, Fnzi(0, 0, 3, 4), 3)
	assert.Equal(t, Fnzi(0, 0), 0)
	assert.Equal(t, Fnzd(0, 0.5), 0.5)
}

func Test_MinMax(t *testing.T) {
	assert.Equal(t, Maxi(1, 5, 3), 5)
	assert.Equal(t, Mini(4, 5, 3), 3)
	assert.Equal(t, Indmaxd([]float64{1, 3, 3, 2}), 1)
}

func Test_Mse(t *testing.T) {
	assert.Equal(t, Mse([]float64{1, 0}, []float64{0, 0}), 0.5)
	assert.Equal(t, Mean([]float64{1, 2, 3}), 2.0)
}

func Test_Sigmoid(t *testing.T) {
	assert.Equal(t, Sigmoid(0), 0.5)
	assert.Assert(t, math.Abs(Sigmoid(-800)) < 1e-300)
	assert.Assert(t, Sigmoid(800) == 1)
}

func Test_Convert(t *testing.T) {
	v := Convert(reflect.ValueOf(4.6), reflect.TypeOf(int(0)))
	assert.Equal(t, v.Interface().(int), 5)
	v = Convert(reflect.ValueOf(3), reflect.TypeOf(float64(0)))
	assert.Equal(t, v.Interface().(float64), 3.0)
}
