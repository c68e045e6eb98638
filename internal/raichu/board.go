package raichu

import (
	"fmt"
	"strings"
)

const (
	MaxSize    = 16
	MaxSquares = MaxSize * MaxSize
)

// Board 扁平定长数组，只使用前 N*N 个格子；复制一次就是一个独立局面。
type Board struct {
	N       int
	Squares [MaxSquares]Piece
}

func NewBoard(n int) (Board, error) {
	if n < 1 || n > MaxSize {
		return Board{}, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return Board{N: n}, nil
}

func (b *Board) Index(row, col int) int { return row*b.N + col }
func (b *Board) RowCol(sq int) (int, int) {
	return sq / b.N, sq % b.N
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.N && col >= 0 && col < b.N
}

// At 读取 (row, col)；调用方保证坐标在棋盘内。
func (b *Board) At(row, col int) Piece { return b.Squares[row*b.N+col] }

func (b *Board) Set(row, col int, pc Piece) { b.Squares[row*b.N+col] = pc }

func (b *Board) NumSquares() int { return b.N * b.N }

func opposite(side Side) Side {
	if side == White {
		return Black
	}
	if side == Black {
		return White
	}
	return NoSide
}

// Opposite 返回对手一方。
func Opposite(side Side) Side { return opposite(side) }

// 前进方向：白向下(+1)，黑向上(-1)
func forwardDir(side Side) int {
	if side == White {
		return +1
	}
	if side == Black {
		return -1
	}
	return 0
}

// promote 白方 Pichu/Pikachu 到最后一行、黑方到第 0 行即升变为 Raichu。
// 两条底线每次都全扫，只依赖最终的棋子分布；返回被改动的格子。
func (b *Board) promote() []int {
	var changed []int
	last := b.N - 1
	for c := 0; c < b.N; c++ {
		sq := b.Index(last, c)
		if pc := b.Squares[sq]; pc > 0 && pc.Type() != PieceRaichu {
			b.Squares[sq] = makePiece(White, PieceRaichu)
			changed = append(changed, sq)
		}
		sq = b.Index(0, c)
		if pc := b.Squares[sq]; pc < 0 && pc.Type() != PieceRaichu {
			b.Squares[sq] = makePiece(Black, PieceRaichu)
			changed = append(changed, sq)
		}
	}
	return changed
}

// NewPosition 规范化棋盘（升变）并计算哈希。
func NewPosition(b Board, side Side) *Position {
	b.promote()
	pos := &Position{
		Board:      b,
		SideToMove: side,
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

// NewInitialPosition 标准开局：白方 Pikachu 在第 1 行偶数列、Pichu 在第 2 行奇数列，黑方镜像。
func NewInitialPosition(n int) (*Position, error) {
	if n < 6 || n > MaxSize || n%2 != 0 {
		return nil, fmt.Errorf("%w: initial layout needs an even size in [6,%d], got %d", ErrInvalidSize, MaxSize, n)
	}
	b, _ := NewBoard(n)
	for c := 0; c < n; c++ {
		if c%2 == 0 {
			b.Set(1, c, makePiece(White, PiecePikachu))
			b.Set(n-3, c, makePiece(Black, PiecePichu))
		} else {
			b.Set(2, c, makePiece(White, PiecePichu))
			b.Set(n-2, c, makePiece(Black, PiecePikachu))
		}
	}
	return NewPosition(b, White), nil
}

// String 按行输出棋盘，每行 N 个字符
func (p *Position) String() string {
	enc := p.Encode()
	n := p.Board.N
	rows := make([]string, 0, n)
	for i := 0; i < len(enc); i += n {
		rows = append(rows, enc[i:i+n])
	}
	return strings.Join(rows, "\n")
}

// PieceAt 按格子下标读取
func (p *Position) PieceAt(sq int) Piece { return p.Board.Squares[sq] }
