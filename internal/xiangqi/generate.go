package xiangqi

// GenerateMoves 生成 side 的全部合法走法，追加到 dst[:0] 后返回。
// 顺序：按身份号遍历棋子，每个棋子按位移模板顺序；判定与交互走子共用 CheckMove。
func (p *Position) GenerateMoves(side Side, dst []Move) []Move {
	moves := dst[:0]
	for id := 0; id < p.n; id++ {
		if !p.alive[id] || p.pieces[id].Side != side {
			continue
		}
		pid := PieceID(id)
		for _, o := range kindShapes[p.pieces[id].Kind] {
			if p.CheckMove(pid, int(o.DF), int(o.DR)) == ReasonNone {
				moves = append(moves, Move{Piece: pid, DFile: o.DF, DRank: o.DR})
			}
		}
	}
	return moves
}

// LegalMoves 不复用缓冲区的版本，给上层用
func (p *Position) LegalMoves(side Side) []Move {
	return p.GenerateMoves(side, make([]Move, 0, 64))
}

// HasLegalMove 找到一步就返回
func (p *Position) HasLegalMove(side Side) bool {
	for id := 0; id < p.n; id++ {
		if !p.alive[id] || p.pieces[id].Side != side {
			continue
		}
		for _, o := range kindShapes[p.pieces[id].Kind] {
			if p.CheckMove(PieceID(id), int(o.DF), int(o.DR)) == ReasonNone {
				return true
			}
		}
	}
	return false
}

// Target 返回走法的落点
func (p *Position) Target(m Move) (Coord, bool) {
	from, ok := p.CoordOf(m.Piece)
	if !ok {
		return Coord{}, false
	}
	to := from.Add(int(m.DFile), int(m.DRank))
	return to, to.OnBoard()
}

// MoveBetween 把 (from, to) 坐标对翻译成走法，给界面层用
func (p *Position) MoveBetween(from, to Coord) (Move, bool) {
	pc, ok := p.At(from)
	if !ok || !to.OnBoard() {
		return Move{Piece: NoPiece}, false
	}
	return Move{
		Piece: pc.ID,
		DFile: to.File - from.File,
		DRank: to.Rank - from.Rank,
	}, true
}
