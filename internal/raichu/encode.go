package raichu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidBoard = errors.New("invalid board string")
	ErrInvalidSide  = errors.New("invalid side")
	ErrInvalidSize  = errors.New("invalid board size")
)

// 棋盘字符串：N*N 个字符，行优先，不含分隔符
//
//	.  空
//	w  白 Pichu    W  白 Pikachu    @  白 Raichu
//	b  黑 Pichu    B  黑 Pikachu    $  黑 Raichu
const symbols = ".wWbB@$"

var charToPiece = map[rune]Piece{
	'.': 0,
	'w': makePiece(White, PiecePichu),
	'W': makePiece(White, PiecePikachu),
	'@': makePiece(White, PieceRaichu),
	'b': makePiece(Black, PiecePichu),
	'B': makePiece(Black, PiecePikachu),
	'$': makePiece(Black, PieceRaichu),
}

func pieceToChar(p Piece) byte {
	switch p {
	case makePiece(White, PiecePichu):
		return 'w'
	case makePiece(White, PiecePikachu):
		return 'W'
	case makePiece(White, PieceRaichu):
		return '@'
	case makePiece(Black, PiecePichu):
		return 'b'
	case makePiece(Black, PiecePikachu):
		return 'B'
	case makePiece(Black, PieceRaichu):
		return '$'
	default:
		return '.'
	}
}

// String 单个棋子的字符
func (p Piece) String() string { return string(pieceToChar(p)) }

// Encode 输出 N*N 字符的棋盘串（不含走子方）。
func (p *Position) Encode() string {
	n := p.Board.NumSquares()
	var sb strings.Builder
	sb.Grow(n)
	for sq := 0; sq < n; sq++ {
		sb.WriteByte(pieceToChar(p.Board.Squares[sq]))
	}
	return sb.String()
}

// ParseSide 解析 "w" / "b"。
func ParseSide(s string) (Side, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return NoSide, fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// DecodeBoard 解析棋盘串；长度或字符不对直接报错。
func DecodeBoard(s string, n int) (Board, error) {
	b, err := NewBoard(n)
	if err != nil {
		return Board{}, err
	}
	if len(s) != n*n {
		return Board{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidBoard, len(s), n*n)
	}
	for i, ch := range s {
		pc, ok := charToPiece[ch]
		if !ok {
			return Board{}, fmt.Errorf("%w: symbol %q at %d (allowed %q)", ErrInvalidBoard, ch, i, symbols)
		}
		b.Squares[i] = pc
	}
	return b, nil
}

// DecodePosition 解析棋盘串 + 走子方，返回规范化（已升变）的局面。
func DecodePosition(s string, n int, side Side) (*Position, error) {
	if side != White && side != Black {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, side)
	}
	b, err := DecodeBoard(s, n)
	if err != nil {
		return nil, err
	}
	return NewPosition(b, side), nil
}
