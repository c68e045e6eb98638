package raichu

// GenerateMovesForSide 生成指定一方的全部合法走法。
// 顺序固定：棋子种类 (Pichu, Pikachu, Raichu) -> 格子行优先 -> 方向表顺序 -> 距离。
func (p *Position) GenerateMovesForSide(side Side) []Move {
	var moves []Move
	inv := p.Board.Inventory()
	for _, pt := range pieceTypes {
		for _, sq := range inv.Squares(makePiece(side, pt)) {
			switch pt {
			case PiecePichu:
				genPichuMoves(p, sq, &moves)
			case PiecePikachu:
				genPikachuMoves(p, sq, &moves)
			case PieceRaichu:
				genRaichuMoves(p, sq, &moves)
			}
		}
	}
	return moves
}

func (p *Position) GenerateMoves() []Move {
	return p.GenerateMovesForSide(p.SideToMove)
}

// SuccessorsForSide 每一步合法走法产生的新局面，顺序与走法顺序一致。
// 无子可动时返回空切片，由搜索层判负。
func (p *Position) SuccessorsForSide(side Side) []Successor {
	moves := p.GenerateMovesForSide(side)
	out := make([]Successor, 0, len(moves))
	for _, mv := range moves {
		np, ok := p.applyFor(side, mv)
		if !ok {
			continue
		}
		out = append(out, Successor{Move: mv, Pos: np})
	}
	return out
}

func (p *Position) Successors() []Successor {
	return p.SuccessorsForSide(p.SideToMove)
}

// ApplyMove 应用走子：这里默认传进来的就是生成器给出的合法招
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	return p.applyFor(p.SideToMove, m)
}

func (p *Position) applyFor(side Side, m Move) (*Position, bool) {
	n := p.Board.NumSquares()
	if m.From < 0 || m.From >= n || m.To < 0 || m.To >= n || m.Capture >= n {
		return nil, false
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 || pc.Side() != side || p.Board.Squares[m.To] != 0 {
		return nil, false
	}
	var captured Piece
	if m.Capture != NoSquare {
		if m.Capture < 0 {
			return nil, false
		}
		captured = p.Board.Squares[m.Capture]
		if captured == 0 || captured.Side() == side {
			return nil, false
		}
	}

	np := *p
	np.Board.Squares[m.From] = 0
	np.Board.Squares[m.To] = pc
	if captured != 0 {
		np.Board.Squares[m.Capture] = 0
	}
	np.SideToMove = opposite(side)

	// 增量 Zobrist：移除 from、加入 to、移除被吃子、切换走子方
	initZobrist()
	h := p.Hash
	if h == 0 {
		h = p.CalculateHash()
	}
	b := &np.Board
	h ^= b.pieceKey(pc, m.From) ^ b.pieceKey(pc, m.To)
	if captured != 0 {
		h ^= b.pieceKey(captured, m.Capture)
	}
	if side != p.SideToMove {
		// SuccessorsForSide 可以给非当前走子方生成，此时保持哈希与 SideToMove 一致
		h ^= zobrist.side
	}
	h ^= zobrist.side

	before := np.Board.Squares
	for _, sq := range np.Board.promote() {
		h ^= b.pieceKey(before[sq], sq) ^ b.pieceKey(b.Squares[sq], sq)
	}
	np.Hash = h

	return &np, true
}
