package xiangqi

// Apply 原地走子并返回撤销记录。调用方保证走法已通过 CheckMove（先验后走）。
// 被吃的子同时从坐标表和竞技场中抹掉；记录是值类型，不分配内存。
func (p *Position) Apply(m Move) Undo {
	id := m.Piece
	from := p.coords[id]
	to := from.Add(int(m.DFile), int(m.DRank))

	u := Undo{
		Move:     m,
		From:     from,
		Mover:    p.pieces[id],
		Captured: Piece{ID: NoPiece},
		prevHash: p.Hash,
	}

	// 增量 Zobrist：移除 from 的子、移除被吃子（若有）、加入 to 的子
	h := p.Hash ^ pieceHashKey(u.Mover, from)
	if cid := p.squares[to.index()]; cid != NoPiece {
		u.Captured = p.pieces[cid]
		u.CapturedAt = to
		p.alive[cid] = false
		h ^= pieceHashKey(u.Captured, to)
	}

	p.squares[to.index()] = id
	p.squares[from.index()] = NoPiece
	p.coords[id] = to
	p.Hash = h ^ pieceHashKey(u.Mover, to)
	return u
}

// Undo 精确还原 Apply 之前的局面
func (p *Position) Undo(u Undo) {
	id := u.Mover.ID
	to := p.coords[id]

	p.squares[to.index()] = NoPiece
	p.squares[u.From.index()] = id
	p.coords[id] = u.From

	if u.Captured.ID != NoPiece {
		cid := u.Captured.ID
		p.pieces[cid] = u.Captured
		p.coords[cid] = u.CapturedAt
		p.alive[cid] = true
		p.squares[u.CapturedAt.index()] = cid
	}
	p.Hash = u.prevHash
}

// CapturedKind 返回这一步吃掉的棋子类型，没吃子时为 KindNone
func (u Undo) CapturedKind() Kind {
	if u.Captured.ID == NoPiece {
		return KindNone
	}
	return u.Captured.Kind
}
