package raichu

type Side int8

const (
	NoSide Side = -1
	White  Side = 0 // 先手，向下（行号增大）走
	Black  Side = 1
)

func (s Side) String() string {
	switch s {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

type PieceType int8

const (
	PieceNone    PieceType = iota
	PiecePichu             // 基础子
	PiecePikachu           // 中级子
	PieceRaichu            // 升变后的顶级子
)

// 走法生成按这个顺序枚举棋子种类
var pieceTypes = [...]PieceType{PiecePichu, PiecePikachu, PieceRaichu}

type Piece int8 // 0=空；>0 白；<0 黑；abs=PieceType

func makePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return 0
	}
	if side == White {
		return Piece(pt)
	}
	return -Piece(pt)
}

// MakePiece 组合一方和棋子种类。
func MakePiece(side Side, pt PieceType) Piece { return makePiece(side, pt) }

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return White
	}
	return Black
}

// NoSquare 表示“没有吃子”
const NoSquare = -1

type Move struct {
	From    int `json:"from"`
	To      int `json:"to"`
	Capture int `json:"capture"` // 被吃子的格子，NoSquare 表示不吃子
}

// NoMove 根节点无子可动时的占位
var NoMove = Move{From: NoSquare, To: NoSquare, Capture: NoSquare}

func (m Move) IsCapture() bool { return m.Capture != NoSquare }

func (m Move) IsNone() bool { return m.From == NoSquare }

// Position = 棋盘 + 轮到谁走。按值传递，生成后不再修改。
type Position struct {
	Board      Board
	SideToMove Side
	Hash       uint64
}

// Successor 一步合法走法及其产生的新局面
type Successor struct {
	Move Move
	Pos  *Position
}
