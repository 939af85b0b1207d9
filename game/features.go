package game

const (
	NumSquares  = 64
	NumFeatures = NumSquares + 1
)

// Features encodes a position for the evaluator. Squares hold
// side*(kind+1), so 0 always means empty; the last element is the side to move.
type Features [NumFeatures]float64

// Extract returns the feature vector of a state
func Extract(s State) Features {
	var f Features
	for sq := 0; sq < NumSquares; sq++ {
		if piece, ok := s.Piece(sq); ok {
			f[sq] = float64(piece.Side) * float64(piece.Kind+1)
		}
	}
	f[NumFeatures-1] = float64(s.Turn())
	return f
}
