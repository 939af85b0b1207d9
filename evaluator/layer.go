package evaluator

import (
	"math"

	"golang.org/x/exp/rand"
)

type activation interface {
	sigma(x float64) float64
	sigmaPrime(y float64) float64 // derivative expressed in terms of the output y
}

type tanh struct{}

func (tanh) sigma(x float64) float64 {
	return math.Tanh(x)
}

func (tanh) sigmaPrime(y float64) float64 {
	return 1 - y*y
}

// layer is a dense layer; weights are stored row-major, one row per output.
type layer struct {
	inputs  int
	outputs int
	weights []float64
	biases  []float64
	fn      activation

	// scratch space for the last forward pass, used by backward
	activations []float64
	errors      []float64
}

func newLayer(inputs, outputs int) *layer {
	return &layer{
		inputs:      inputs,
		outputs:     outputs,
		weights:     make([]float64, inputs*outputs),
		biases:      make([]float64, outputs),
		fn:          tanh{},
		activations: make([]float64, outputs),
		errors:      make([]float64, outputs),
	}
}

func (l *layer) initUniform(rnd *rand.Rand) {
	variance := 2.0 / float64(l.inputs+l.outputs)
	// A uniform distribution on [-0.5, 0.5) has variance 1/12
	scale := math.Sqrt(variance * 12)
	for i := range l.weights {
		l.weights[i] = (rnd.Float64() - 0.5) * scale
	}
}

// forward writes into dst, which must have l.outputs elements
func (l *layer) forward(input []float64, dst []float64) {
	for out := 0; out < l.outputs; out++ {
		x := l.biases[out]
		row := l.weights[out*l.inputs : (out+1)*l.inputs]
		for in, v := range input {
			x += row[in] * v
		}
		dst[out] = l.fn.sigma(x)
	}
}

// backward takes dCost/dActivation for each output (in l.errors), applies one
// gradient descent step and returns dCost/dInput for the previous layer.
func (l *layer) backward(input []float64, rate float64) []float64 {
	inputErrors := make([]float64, l.inputs)
	for out := 0; out < l.outputs; out++ {
		delta := l.errors[out] * l.fn.sigmaPrime(l.activations[out])
		if delta == 0 {
			continue
		}
		row := l.weights[out*l.inputs : (out+1)*l.inputs]
		for in, v := range input {
			inputErrors[in] += row[in] * delta
			row[in] -= rate * delta * v
		}
		l.biases[out] -= rate * delta
	}
	return inputErrors
}

func (l *layer) clone() *layer {
	c := newLayer(l.inputs, l.outputs)
	copy(c.weights, l.weights)
	copy(c.biases, l.biases)
	return c
}
