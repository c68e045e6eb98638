package raichu

import "sync"

// Zobrist 键按 (行, 列) 取，而不是扁平下标：同一个扁平下标在不同 N 下是不同的格子。
// 再异或一个棋盘大小的键，保证不同 N 的局面哈希不会撞在一起。
type zobristKeys struct {
	pieces [2][len(pieceTypes) + 1][MaxSize][MaxSize]uint64
	size   [MaxSize + 1]uint64
	side   uint64 // 黑方走
}

var (
	zobristOnce sync.Once
	zobrist     zobristKeys
)

// splitmix64，固定种子，跨进程可复现
func splitmix(seed *uint64) uint64 {
	*seed += 0x9E3779B97F4A7C15
	z := *seed
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x5241494348550001)
		for si := range zobrist.pieces {
			for _, pt := range pieceTypes {
				for r := 0; r < MaxSize; r++ {
					for c := 0; c < MaxSize; c++ {
						zobrist.pieces[si][pt][r][c] = splitmix(&seed)
					}
				}
			}
		}
		for n := range zobrist.size {
			zobrist.size[n] = splitmix(&seed)
		}
		zobrist.side = splitmix(&seed)
	})
}

// pieceKey 格子 sq 上放 pc 对应的键；空格为 0
func (b *Board) pieceKey(pc Piece, sq int) uint64 {
	if pc == 0 {
		return 0
	}
	r, c := b.RowCol(sq)
	return zobrist.pieces[sideIndex(pc.Side())][pc.Type()][r][c]
}

// CalculateHash 全量计算：棋子 + 棋盘大小 + 走子方。
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	h := zobrist.size[p.Board.N]
	n := p.Board.NumSquares()
	for sq := 0; sq < n; sq++ {
		h ^= p.Board.pieceKey(p.Board.Squares[sq], sq)
	}
	if p.SideToMove == Black {
		h ^= zobrist.side
	}
	return h
}
