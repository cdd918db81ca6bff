package model

import (
	"fmt"
	"go-ml.dev/pkg/bankloan/fu"
	"go-ml.dev/pkg/zorros/zlog"
	"math"
	"reflect"
)

/*
Training is the default implementation of unified training interface
*/
type Training struct {
	Iterations int         // maximum iterations
	Tolerance  float64     // minimal relative loss change to continue
	Verbose    interface{} // print function func(string)
}

type training struct {
	Training
	done bool
}

type workout struct {
	iteration int
	training  *training
	losslog   []float64
}

const DefaultIterations = 25
const DefaultTolerance = 1e-8

func (t Training) Workout() Workout {
	x := &training{Training: t}
	return &workout{iteration: 0, training: x}
}

func (w *workout) Iteration() int {
	return w.iteration
}

func (w *workout) History() []float64 {
	return w.losslog
}

func (w *workout) Complete(loss float64) (done bool) {
	maxiter := fu.Maxi(fu.Fnzi(w.training.Iterations, DefaultIterations), 1)
	tol := fu.Fnzd(w.training.Tolerance, DefaultTolerance)
	w.losslog = append(w.losslog, loss)
	if w.iteration == maxiter-1 {
		done = true
	} else if n := len(w.losslog); n > 1 {
		prev := w.losslog[n-2]
		done = math.Abs(prev-loss)/(math.Abs(loss)+0.1) < tol
	}
	if w.training.Verbose != nil {
		w.Verbose(fmt.Sprintf("[%3d] loss: %.5f", w.Iteration(), loss))
	}
	w.training.done = done
	return
}

func (w *workout) Verbose(s string) {
	if w.training.Verbose != nil {
		vf := reflect.ValueOf(w.training.Verbose)
		vf.Call([]reflect.Value{reflect.ValueOf(s)})
	}
}

func (w *workout) Next() Workout {
	if w.training.done {
		zlog.Warning("training is already done")
		return nil
	}
	return &workout{
		iteration: w.iteration + 1,
		training:  w.training,
		losslog:   w.losslog,
	}
}
