package evaluator

import (
	"chessrl/game"
	"errors"

	"golang.org/x/exp/rand"
)

const (
	HiddenNeurons       = 32
	DefaultLearningRate = 0.001
)

var ErrInvalidNetwork = errors.New("invalid network")

type Option func(n *Network)

func WithSeed(seed uint64) Option {
	return func(n *Network) {
		n.seed = seed
	}
}

func WithLearningRate(rate float64) Option {
	return func(n *Network) {
		if rate > 0 {
			n.learningRate = rate
		}
	}
}

// Network is a feed-forward regression model with one hidden layer that
// scores feature vectors. Its output lies in (-1, 1), matching the game
// outcomes used as training targets.
type Network struct {
	hidden       *layer
	output       *layer
	learningRate float64
	seed         uint64
}

func New(options ...Option) *Network {
	n := &Network{ // Default values
		hidden:       newLayer(game.NumFeatures, HiddenNeurons),
		output:       newLayer(HiddenNeurons, 1),
		learningRate: DefaultLearningRate,
		seed:         1,
	}
	for _, option := range options {
		option(n)
	}
	rnd := rand.New(rand.NewSource(n.seed))
	n.hidden.initUniform(rnd)
	n.output.initUniform(rnd)
	return n
}

// Evaluate returns the network's estimate for the features. It does not touch
// any state, so it is safe to call between training steps.
func (n *Network) Evaluate(f game.Features) float64 {
	var hidden [HiddenNeurons]float64
	var out [1]float64
	n.hidden.forward(f[:], hidden[:])
	n.output.forward(hidden[:], out[:])
	return out[0]
}

// TrainStep performs one online gradient descent step on the squared error
// between the network's output and target.
func (n *Network) TrainStep(f game.Features, target float64) {
	n.hidden.forward(f[:], n.hidden.activations)
	n.output.forward(n.hidden.activations, n.output.activations)

	predicted := n.output.activations[0]
	n.output.errors[0] = 2 * (predicted - target)
	hiddenErrors := n.output.backward(n.hidden.activations, n.learningRate)
	copy(n.hidden.errors, hiddenErrors)
	n.hidden.backward(f[:], n.learningRate)
}

func (n *Network) LearningRate() float64 {
	return n.learningRate
}

// Clone returns a deep copy that shares no parameters with n
func (n *Network) Clone() *Network {
	return &Network{
		hidden:       n.hidden.clone(),
		output:       n.output.clone(),
		learningRate: n.learningRate,
		seed:         n.seed,
	}
}
