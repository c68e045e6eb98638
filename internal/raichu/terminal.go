package raichu

// IsTerminal 走子方 side 的对手三种棋子全部被吃光。
func (p *Position) IsTerminal(side Side) bool {
	return !p.hasPieces(opposite(side))
}

// GameOver 任意一方被吃光
func (p *Position) GameOver() bool {
	return !p.hasPieces(White) || !p.hasPieces(Black)
}

// Winner 吃光对方的一方；对局未结束返回 NoSide。
func (p *Position) Winner() Side {
	white, black := p.hasPieces(White), p.hasPieces(Black)
	switch {
	case white && !black:
		return White
	case black && !white:
		return Black
	default:
		return NoSide
	}
}

func (p *Position) hasPieces(side Side) bool {
	n := p.Board.NumSquares()
	for sq := 0; sq < n; sq++ {
		if pc := p.Board.Squares[sq]; pc != 0 && pc.Side() == side {
			return true
		}
	}
	return false
}
