package xiangqi

import "testing"

func mustDecode(t *testing.T, diagram string) *Position {
	t.Helper()
	pos, err := Decode(diagram)
	if err != nil {
		t.Fatalf("decode %q: %v", diagram, err)
	}
	return pos
}

func mustAt(t *testing.T, pos *Position, c Coord) Piece {
	t.Helper()
	pc, ok := pos.At(c)
	if !ok {
		t.Fatalf("no piece at %v", c)
	}
	return pc
}

func TestStartPositionCounts(t *testing.T) {
	pos := NewStartPosition()
	if err := pos.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[Kind]int{General: 1, Chariot: 2, Horse: 2, Cannon: 2, Advisor: 2, Elephant: 2, Soldier: 5}
	for _, side := range []Side{Red, Black} {
		got := map[Kind]int{}
		pieces := pos.Pieces(side)
		for _, pc := range pieces {
			got[pc.Kind]++
		}
		if len(pieces) != 16 {
			t.Fatalf("%v has %d pieces, want 16", side, len(pieces))
		}
		for k, n := range want {
			if got[k] != n {
				t.Fatalf("%v %v count = %d, want %d", side, k, got[k], n)
			}
		}
	}
	if g := mustAt(t, pos, C(4, 0)); g.Kind != General || g.Side != Black {
		t.Fatalf("black general not on e0: %+v", g)
	}
	if g := mustAt(t, pos, C(4, 9)); g.Kind != General || g.Side != Red {
		t.Fatalf("red general not on e9: %+v", g)
	}
}

func TestStartPositionMoveCount(t *testing.T) {
	pos := NewStartPosition()
	for _, side := range []Side{Red, Black} {
		if n := len(pos.LegalMoves(side)); n != 44 {
			t.Fatalf("%v opening moves = %d, want 44", side, n)
		}
	}
}

func TestSoldierCrossesRiverBeforeSideways(t *testing.T) {
	// 黑卒前进方向为 rank 增大
	pos := mustDecode(t, "3k5/9/9/p8/9/9/9/9/9/4K4")
	s := mustAt(t, pos, C(0, 3)).ID

	if r := pos.CheckMove(s, 1, 0); r != ReasonShapeInvalid {
		t.Fatalf("sideways before river: got %v", r)
	}
	if r := pos.CheckMove(s, 0, -1); r != ReasonShapeInvalid {
		t.Fatalf("backward: got %v", r)
	}
	pos.Apply(Move{Piece: s, DRank: 1})
	if r := pos.CheckMove(s, 1, 0); r != ReasonShapeInvalid {
		t.Fatalf("sideways at rank 4: got %v", r)
	}
	pos.Apply(Move{Piece: s, DRank: 1})
	if r := pos.CheckMove(s, 1, 0); r != ReasonNone {
		t.Fatalf("sideways at rank 5: got %v", r)
	}
	if r := pos.CheckMove(s, -1, 0); r != ReasonOutOfBounds {
		t.Fatalf("sideways off board: got %v", r)
	}
	if r := pos.CheckMove(s, 0, 2); r != ReasonShapeInvalid {
		t.Fatalf("two steps: got %v", r)
	}
}

func TestRedSoldierDirection(t *testing.T) {
	pos := mustDecode(t, "3k5/9/9/9/9/9/P8/9/9/4K4")
	s := mustAt(t, pos, C(0, 6)).ID
	if r := pos.CheckMove(s, 0, -1); r != ReasonNone {
		t.Fatalf("red forward: got %v", r)
	}
	if r := pos.CheckMove(s, 0, 1); r != ReasonShapeInvalid {
		t.Fatalf("red backward: got %v", r)
	}
	pos.Apply(Move{Piece: s, DRank: -1})
	pos.Apply(Move{Piece: s, DRank: -1})
	if r := pos.CheckMove(s, 1, 0); r != ReasonNone {
		t.Fatalf("red sideways at rank 4: got %v", r)
	}
}

func TestCannonNeedsScreenToCapture(t *testing.T) {
	pos := mustDecode(t, "3k5/9/1n7/9/9/9/9/1C7/9/4K4")
	cannon := mustAt(t, pos, C(1, 7)).ID
	horse := mustAt(t, pos, C(1, 2)).ID

	if r := pos.CheckMove(cannon, 0, -5); r != ReasonScreenViolation {
		t.Fatalf("capture without screen: got %v", r)
	}
	if r := pos.CheckMove(cannon, 0, -3); r != ReasonNone {
		t.Fatalf("quiet move along empty file: got %v", r)
	}

	// 炮架是谁的子都行
	for _, side := range []Side{Red, Black} {
		t.Run(side.String()+"Screen", func(t *testing.T) {
			p := pos.Clone()
			if _, err := p.Place(Soldier, side, C(1, 5)); err != nil {
				t.Fatalf("place screen: %v", err)
			}
			if r := p.CheckMove(cannon, 0, -4); r != ReasonObstructionViolation {
				t.Fatalf("quiet move past screen: got %v", r)
			}
			if r := p.CheckMove(cannon, 0, -5); r != ReasonNone {
				t.Fatalf("capture over one screen: got %v", r)
			}
			u := p.Apply(Move{Piece: cannon, DRank: -5})
			if u.CapturedKind() != Horse {
				t.Fatalf("captured kind = %v, want horse", u.CapturedKind())
			}
			if p.Alive(horse) {
				t.Fatalf("captured horse still alive")
			}
			if _, ok := p.CoordOf(horse); ok {
				t.Fatalf("captured horse still has a coordinate")
			}
			if err := p.Validate(); err != nil {
				t.Fatalf("validate after capture: %v", err)
			}
		})
	}

	two := pos.Clone()
	two.Place(Soldier, Red, C(1, 5))
	two.Place(Soldier, Black, C(1, 4))
	if r := two.CheckMove(cannon, 0, -5); r != ReasonScreenViolation {
		t.Fatalf("capture over two screens: got %v", r)
	}
}

func TestGeneralExposure(t *testing.T) {
	pos := mustDecode(t, "4k4/9/9/9/9/4R4/9/9/9/4K4")
	rook := mustAt(t, pos, C(4, 5)).ID

	if r := pos.CheckMove(rook, 1, 0); r != ReasonGeneralExposure {
		t.Fatalf("moving sole screen off file: got %v", r)
	}
	if r := pos.CheckMove(rook, 0, 1); r != ReasonNone {
		t.Fatalf("moving sole screen along file: got %v", r)
	}
	if r := pos.CheckMove(rook, 0, -5); r != ReasonNone {
		t.Fatalf("capturing the general along file: got %v", r)
	}

	if _, err := pos.Place(Horse, Black, C(4, 3)); err != nil {
		t.Fatalf("place second screen: %v", err)
	}
	if r := pos.CheckMove(rook, 1, 0); r != ReasonNone {
		t.Fatalf("moving one of two screens: got %v", r)
	}
}

func TestGeneralExposureBehindGeneral(t *testing.T) {
	// 黑士在黑将身后，同列；两将之间只有红车
	pos := mustDecode(t, "4a4/4k4/9/9/9/4R4/9/9/9/4K4")
	advisor := mustAt(t, pos, C(4, 0)).ID

	if r := pos.CheckMove(advisor, -1, 1); r != ReasonGeneralExposure {
		t.Fatalf("same-file piece behind the general: got %v, want %v", r, ReasonGeneralExposure)
	}
	for _, mv := range pos.LegalMoves(Black) {
		if mv.Piece == advisor {
			t.Fatalf("advisor should have no legal move, got %+v", mv)
		}
	}

	// 中间变成两个子后，限制解除
	if _, err := pos.Place(Soldier, Black, C(4, 3)); err != nil {
		t.Fatalf("place second screen: %v", err)
	}
	if r := pos.CheckMove(advisor, -1, 1); r != ReasonNone {
		t.Fatalf("two pieces between the generals: got %v", r)
	}
}

func TestGeneralRules(t *testing.T) {
	pos := mustDecode(t, "3k5/9/9/9/9/9/9/9/9/4K4")
	bk := mustAt(t, pos, C(3, 0)).ID
	rk := mustAt(t, pos, C(4, 9)).ID

	tests := []struct {
		name   string
		id     PieceID
		df, dr int
		want   Reason
	}{
		{"LeavePalace", bk, -1, 0, ReasonPalaceViolation},
		{"FaceOpposingGeneral", bk, 1, 0, ReasonGeneralExposure},
		{"StepDown", bk, 0, 1, ReasonNone},
		{"RedStepUp", rk, 0, -1, ReasonNone},
		{"RedFaceBlack", rk, -1, 0, ReasonGeneralExposure},
		{"RedDiagonal", rk, 1, -1, ReasonShapeInvalid},
		{"RedOffBoard", rk, 0, 1, ReasonOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pos.CheckMove(tt.id, tt.df, tt.dr); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlockingRules(t *testing.T) {
	pos := NewStartPosition()
	blackHorse := mustAt(t, pos, C(1, 0)).ID
	blackElephant := mustAt(t, pos, C(2, 0)).ID
	redChariot := mustAt(t, pos, C(0, 9)).ID
	redAdvisor := mustAt(t, pos, C(3, 9)).ID

	tests := []struct {
		name   string
		id     PieceID
		df, dr int
		want   Reason
	}{
		{"HorseOpen", blackHorse, 1, 2, ReasonNone},
		{"HorseLegBlocked", blackHorse, 2, 1, ReasonLegBlocked},
		{"ElephantOpen", blackElephant, 2, 2, ReasonNone},
		{"ChariotOwnPiece", redChariot, 0, -3, ReasonSameSideCapture},
		{"ChariotObstructed", redChariot, 0, -5, ReasonObstructionViolation},
		{"ChariotOpen", redChariot, 0, -2, ReasonNone},
		{"AdvisorIntoCenter", redAdvisor, 1, -1, ReasonNone},
		{"AdvisorOutOfPalace", redAdvisor, -1, -1, ReasonPalaceViolation},
		{"NoSuchPiece", PieceID(40), 0, 1, ReasonNoPiece},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pos.CheckMove(tt.id, tt.df, tt.dr); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElephantEyeAndRiver(t *testing.T) {
	pos := mustDecode(t, "4k4/9/9/9/2b6/9/9/9/9/3K5")
	e := mustAt(t, pos, C(2, 4)).ID
	if r := pos.CheckMove(e, 2, 2); r != ReasonRiverViolation {
		t.Fatalf("crossing river: got %v", r)
	}
	if r := pos.CheckMove(e, 2, -2); r != ReasonNone {
		t.Fatalf("retreat: got %v", r)
	}
	pos.Place(Soldier, Red, C(3, 3))
	if r := pos.CheckMove(e, 2, -2); r != ReasonLegBlocked {
		t.Fatalf("blocked eye: got %v", r)
	}
}

func TestCheckMoveDoesNotMutate(t *testing.T) {
	pos := NewStartPosition()
	before := pos.Clone()
	for _, pc := range pos.Pieces(NoSide) {
		for df := -9; df <= 9; df++ {
			for dr := -9; dr <= 9; dr++ {
				pos.CheckMove(pc.ID, df, dr)
			}
		}
	}
	if !pos.Equal(before) || pos.Hash != before.Hash {
		t.Fatalf("CheckMove mutated the position")
	}
}
