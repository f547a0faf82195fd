package xiangqi

// Offset 是相对位移 (横, 纵)
type Offset struct {
	DF, DR int8
}

var kindWeight = [numKinds]int{
	General:  5,
	Chariot:  4,
	Horse:    3,
	Cannon:   3,
	Soldier:  2,
	Advisor:  4,
	Elephant: 3,
}

func Weight(k Kind) int {
	if k <= KindNone || int(k) >= numKinds {
		return 0
	}
	return kindWeight[k]
}

var (
	orthoStep = []Offset{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}

	horseShapes = []Offset{
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
	}

	advisorShapes  = []Offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	elephantShapes = []Offset{{2, 2}, {2, -2}, {-2, 2}, {-2, -2}}

	// 车、炮：整条横线 + 整条竖线（不含原地）
	lineShapes = buildLineShapes()

	kindShapes = [numKinds][]Offset{
		General:  orthoStep,
		Chariot:  lineShapes,
		Horse:    horseShapes,
		Cannon:   lineShapes,
		Soldier:  orthoStep,
		Advisor:  advisorShapes,
		Elephant: elephantShapes,
	}

	// 形状过滤用的查表
	shapeSet [numKinds]map[Offset]bool
)

func init() {
	for k := range kindShapes {
		if kindShapes[k] == nil {
			continue
		}
		m := make(map[Offset]bool, len(kindShapes[k]))
		for _, o := range kindShapes[k] {
			m[o] = true
		}
		shapeSet[k] = m
	}
}

func buildLineShapes() []Offset {
	out := make([]Offset, 0, 2*(Files-1)+2*(Ranks-1))
	for x := -(Files - 1); x <= Files-1; x++ {
		if x != 0 {
			out = append(out, Offset{int8(x), 0})
		}
	}
	for y := -(Ranks - 1); y <= Ranks-1; y++ {
		if y != 0 {
			out = append(out, Offset{0, int8(y)})
		}
	}
	return out
}

// Offsets 返回某类棋子的位移模板（只读）
func Offsets(k Kind) []Offset {
	if k <= KindNone || int(k) >= numKinds {
		return nil
	}
	return kindShapes[k]
}

func shapeAllowed(k Kind, df, dr int) bool {
	if k <= KindNone || int(k) >= numKinds {
		return false
	}
	return shapeSet[k][Offset{int8(df), int8(dr)}]
}
