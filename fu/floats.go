package fu

import "math"

func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Mse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

/*
Fnzd returns the first non-zero value or 0 if all are zeros
*/
func Fnzd(a ...float64) float64 {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

/*
Indmaxd returns index of the maximal value, the first one on ties
*/
func Indmaxd(a []float64) int {
	j := 0
	d := math.Inf(-1)
	for i, x := range a {
		if x > d {
			j, d = i, x
		}
	}
	return j
}

// Sigmoid is the logistic function
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}
