package xiangqi

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces [2][numKinds][NumSquares]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for k := 1; k < numKinds; k++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][k][sq] = next()
				}
			}
		}
	})
}

func pieceHashKey(pc Piece, c Coord) uint64 {
	initZobrist()
	if pc.Side != Red && pc.Side != Black {
		return 0
	}
	if pc.Kind <= KindNone || int(pc.Kind) >= numKinds || !c.OnBoard() {
		return 0
	}
	return zobristPieces[pc.Side][pc.Kind][c.index()]
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希（只含棋子占位，不含走子方）
func (p *Position) CalculateHash() uint64 {
	var h uint64
	for id := 0; id < p.n; id++ {
		if p.alive[id] {
			h ^= pieceHashKey(p.pieces[id], p.coords[id])
		}
	}
	return h
}
