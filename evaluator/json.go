package evaluator

import (
	"chessrl/game"
	"encoding/json"
	"fmt"
)

type layerRecord struct {
	Inputs  int         `json:"inputs"`
	Outputs int         `json:"outputs"`
	Weights [][]float64 `json:"weights"` // One row of input weights per output neuron
	Biases  []float64   `json:"biases"`
}

type networkRecord struct {
	Topology     []int         `json:"topology"`
	LearningRate float64       `json:"learning_rate"`
	Layers       []layerRecord `json:"layers"`
}

func (n *Network) MarshalJSON() ([]byte, error) {
	record := networkRecord{
		Topology:     []int{n.hidden.inputs, n.hidden.outputs, n.output.outputs},
		LearningRate: n.learningRate,
		Layers:       []layerRecord{toRecord(n.hidden), toRecord(n.output)},
	}
	return json.Marshal(record)
}

func (n *Network) UnmarshalJSON(data []byte) error {
	var record networkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNetwork, err)
	}

	want := []int{game.NumFeatures, HiddenNeurons, 1}
	if len(record.Topology) != len(want) {
		return fmt.Errorf("%w: topology %v, want %v", ErrInvalidNetwork, record.Topology, want)
	}
	for i := range want {
		if record.Topology[i] != want[i] {
			return fmt.Errorf("%w: topology %v, want %v", ErrInvalidNetwork, record.Topology, want)
		}
	}
	if len(record.Layers) != len(want)-1 {
		return fmt.Errorf("%w: %d layers, want %d", ErrInvalidNetwork, len(record.Layers), len(want)-1)
	}
	if record.LearningRate <= 0 {
		return fmt.Errorf("%w: learning rate %v must be positive", ErrInvalidNetwork, record.LearningRate)
	}

	hidden, err := fromRecord(record.Layers[0], want[0], want[1])
	if err != nil {
		return err
	}
	output, err := fromRecord(record.Layers[1], want[1], want[2])
	if err != nil {
		return err
	}

	n.hidden = hidden
	n.output = output
	n.learningRate = record.LearningRate
	return nil
}

func toRecord(l *layer) layerRecord {
	weights := make([][]float64, l.outputs)
	for out := range weights {
		row := make([]float64, l.inputs)
		copy(row, l.weights[out*l.inputs:(out+1)*l.inputs])
		weights[out] = row
	}
	biases := make([]float64, l.outputs)
	copy(biases, l.biases)
	return layerRecord{
		Inputs:  l.inputs,
		Outputs: l.outputs,
		Weights: weights,
		Biases:  biases,
	}
}

func fromRecord(r layerRecord, inputs, outputs int) (*layer, error) {
	if r.Inputs != inputs || r.Outputs != outputs {
		return nil, fmt.Errorf("%w: layer is %dx%d, want %dx%d", ErrInvalidNetwork, r.Inputs, r.Outputs, inputs, outputs)
	}
	if len(r.Weights) != outputs || len(r.Biases) != outputs {
		return nil, fmt.Errorf("%w: layer has %d weight rows and %d biases, want %d", ErrInvalidNetwork, len(r.Weights), len(r.Biases), outputs)
	}

	l := newLayer(inputs, outputs)
	for out, row := range r.Weights {
		if len(row) != inputs {
			return nil, fmt.Errorf("%w: weight row %d has %d inputs, want %d", ErrInvalidNetwork, out, len(row), inputs)
		}
		copy(l.weights[out*inputs:], row)
	}
	copy(l.biases, r.Biases)
	return l, nil
}
