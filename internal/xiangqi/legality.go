package xiangqi

// Reason 是走法被拒的原因；ReasonNone 表示合法
type Reason int8

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonSameSideCapture
	ReasonGeneralExposure
	ReasonShapeInvalid
	ReasonPalaceViolation
	ReasonRiverViolation
	ReasonObstructionViolation
	ReasonScreenViolation
	ReasonLegBlocked
	ReasonNoPiece
)

var reasonNames = [...]string{
	ReasonNone:                 "ok",
	ReasonOutOfBounds:          "out_of_bounds",
	ReasonSameSideCapture:      "same_side_capture",
	ReasonGeneralExposure:      "general_exposure",
	ReasonShapeInvalid:         "shape_invalid",
	ReasonPalaceViolation:      "palace_violation",
	ReasonRiverViolation:       "river_violation",
	ReasonObstructionViolation: "obstruction_violation",
	ReasonScreenViolation:      "screen_violation",
	ReasonLegBlocked:           "leg_blocked",
	ReasonNoPiece:              "no_piece",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// CheckMove 判断棋子 id 走 (df, dr) 是否合法。
// 交互走子和搜索生成走法共用这一个判定，不修改局面。
// 注意：不检查走完后自己的将是否会被吃（送将由搜索下一层发现）。
func (p *Position) CheckMove(id PieceID, df, dr int) Reason {
	if !p.Alive(id) {
		return ReasonNoPiece
	}
	pc := p.pieces[id]
	from := p.coords[id]

	// 1. 盘内
	fr, ff := int(from.Rank)+dr, int(from.File)+df
	if ff < 0 || ff >= Files || fr < 0 || fr >= Ranks {
		return ReasonOutOfBounds
	}
	to := Coord{File: int8(ff), Rank: int8(fr)}

	// 2. 不能吃自己人
	target, occupied := p.At(to)
	if occupied && target.Side == pc.Side {
		return ReasonSameSideCapture
	}

	// 3. 两将同列且中间只隔一子时，该列上的非将帅子一律不许横移
	if pc.Kind != General && df != 0 && p.generalsScreenedOnce(from.File) {
		return ReasonGeneralExposure
	}

	// 4. 形状
	if !shapeAllowed(pc.Kind, df, dr) {
		return ReasonShapeInvalid
	}

	// 5. 分兵种细则
	switch pc.Kind {
	case General:
		if !inPalace(pc.Side, to) {
			return ReasonPalaceViolation
		}
		if p.generalWouldFace(pc, from, to) {
			return ReasonGeneralExposure
		}
	case Advisor:
		if !inPalace(pc.Side, to) {
			return ReasonPalaceViolation
		}
	case Elephant:
		// 塞象眼
		if p.occupied(from.Add(df/2, dr/2)) {
			return ReasonLegBlocked
		}
		if crossedRiver(pc.Side, fr) {
			return ReasonRiverViolation
		}
	case Chariot:
		if p.countBetween(from, to) != 0 {
			return ReasonObstructionViolation
		}
	case Cannon:
		n := p.countBetween(from, to)
		if occupied {
			if n != 1 {
				return ReasonScreenViolation
			}
		} else if n != 0 {
			return ReasonObstructionViolation
		}
	case Horse:
		// 蹩马腿
		var leg Coord
		if abs(df) == 1 {
			leg = from.Add(0, sign(dr))
		} else {
			leg = from.Add(sign(df), 0)
		}
		if p.occupied(leg) {
			return ReasonLegBlocked
		}
	case Soldier:
		if dr != 0 && sign(dr) != forward(pc.Side) {
			return ReasonShapeInvalid
		}
		if df != 0 && !crossedRiver(pc.Side, int(from.Rank)) {
			return ReasonShapeInvalid
		}
	}
	return ReasonNone
}

// Legal 是 CheckMove 的布尔版
func (p *Position) Legal(m Move) bool {
	return p.CheckMove(m.Piece, int(m.DFile), int(m.DRank)) == ReasonNone
}

// countBetween 统计同一直线上 from、to 之间（不含两端）的棋子数
func (p *Position) countBetween(from, to Coord) int {
	df := sign(int(to.File) - int(from.File))
	dr := sign(int(to.Rank) - int(from.Rank))
	n := 0
	for c := from.Add(df, dr); c != to; c = c.Add(df, dr) {
		if p.occupied(c) {
			n++
		}
	}
	return n
}

// generalsScreenedOnce：两将都在 file 列上，且之间恰好一个子
func (p *Position) generalsScreenedOnce(file int8) bool {
	rg, ok1 := p.General(Red)
	bg, ok2 := p.General(Black)
	if !ok1 || !ok2 {
		return false
	}
	rc, bc := p.coords[rg], p.coords[bg]
	if rc.File != file || bc.File != file {
		return false
	}
	return p.countBetween(bc, rc) == 1
}

// generalWouldFace：将帅走到 to 后是否与对方将帅同列且中间无子（不把自己原位置算作挡子）
func (p *Position) generalWouldFace(pc Piece, from, to Coord) bool {
	oid, ok := p.General(pc.Side.Opponent())
	if !ok {
		return false
	}
	oc := p.coords[oid]
	if oc.File != to.File {
		return false
	}
	dr := sign(int(oc.Rank) - int(to.Rank))
	if dr == 0 {
		return false
	}
	for c := to.Add(0, dr); c != oc; c = c.Add(0, dr) {
		if c != from && p.occupied(c) {
			return false
		}
	}
	return true
}
