package evaluator

import (
	"chessrl/game"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func probe() game.Features {
	return game.Extract(game.StartingPosition())
}

func TestNetworkEvaluate(t *testing.T) {
	t.Run("output is bounded", func(t *testing.T) {
		n := New()

		v := n.Evaluate(probe())

		require.Greater(t, v, -1.0)
		require.Less(t, v, 1.0)
	})

	t.Run("evaluate has no side effects", func(t *testing.T) {
		n := New()
		f := probe()

		first := n.Evaluate(f)
		second := n.Evaluate(f)

		require.Equal(t, first, second)
	})

	t.Run("same seed, same network", func(t *testing.T) {
		require.Equal(t, New(WithSeed(7)).Evaluate(probe()), New(WithSeed(7)).Evaluate(probe()))
		require.NotEqual(t, New(WithSeed(7)).Evaluate(probe()), New(WithSeed(8)).Evaluate(probe()))
	})
}

func TestNetworkTrainStep(t *testing.T) {
	t.Run("moves output toward target", func(t *testing.T) {
		for _, target := range []float64{-1, 0, 1} {
			n := New()
			f := probe()
			before := math.Abs(n.Evaluate(f) - target)

			for i := 0; i < 50; i++ {
				n.TrainStep(f, target)
			}

			after := math.Abs(n.Evaluate(f) - target)
			require.Less(t, after, before, "Error should shrink for target %v", target)
		}
	})

	t.Run("clone does not share parameters", func(t *testing.T) {
		n := New()
		c := n.Clone()
		f := probe()

		c.TrainStep(f, 1)

		require.NotEqual(t, n.Evaluate(f), c.Evaluate(f))
		require.Equal(t, New().Evaluate(f), n.Evaluate(f), "Original should be untouched")
	})
}

func TestNetworkJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		n := New(WithSeed(3), WithLearningRate(0.05))
		n.TrainStep(probe(), 1)

		data, err := json.Marshal(n)
		require.NoError(t, err)

		loaded := &Network{}
		require.NoError(t, json.Unmarshal(data, loaded))
		require.InDelta(t, n.Evaluate(probe()), loaded.Evaluate(probe()), 1e-12)
		require.Equal(t, 0.05, loaded.LearningRate())
	})

	t.Run("structurally invalid input", func(t *testing.T) {
		valid, err := json.Marshal(New())
		require.NoError(t, err)

		cases := map[string]func(r *networkRecord){
			"wrong topology": func(r *networkRecord) { r.Topology = []int{64, 32, 1} },
			"missing layer":  func(r *networkRecord) { r.Layers = r.Layers[:1] },
			"short row":      func(r *networkRecord) { r.Layers[0].Weights[3] = r.Layers[0].Weights[3][:10] },
			"missing biases": func(r *networkRecord) { r.Layers[1].Biases = nil },
			"zero rate":      func(r *networkRecord) { r.LearningRate = 0 },
		}
		for name, corrupt := range cases {
			t.Run(name, func(t *testing.T) {
				var r networkRecord
				require.NoError(t, json.Unmarshal(valid, &r))
				corrupt(&r)
				data, err := json.Marshal(r)
				require.NoError(t, err)

				err = json.Unmarshal(data, &Network{})

				require.ErrorIs(t, err, ErrInvalidNetwork)
			})
		}
	})

	t.Run("not json", func(t *testing.T) {
		err := (&Network{}).UnmarshalJSON([]byte("{nope"))

		require.ErrorIs(t, err, ErrInvalidNetwork)
	})
}
