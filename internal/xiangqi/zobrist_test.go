package xiangqi

import "testing"

func TestHashInitializedFromStartAndDiagram(t *testing.T) {
	pos := NewStartPosition()
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash, pos.CalculateHash())
	}

	decoded, err := Decode(pos.Encode())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Hash != pos.Hash {
		t.Fatalf("decoded hash mismatch: got=%d want=%d", decoded.Hash, pos.Hash)
	}
}

func TestApplyHashIncrementalMatchesFullRecompute(t *testing.T) {
	pos := NewStartPosition()
	side := Red
	for ply := 0; ply < 40; ply++ {
		moves := pos.LegalMoves(side)
		if len(moves) == 0 {
			return
		}
		mv := moves[len(moves)/2]
		pos.Apply(mv)
		if got, want := pos.Hash, pos.CalculateHash(); got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%+v", ply, got, want, mv)
		}
		if _, ok := pos.General(side.Opponent()); !ok {
			return
		}
		side = side.Opponent()
	}
}
