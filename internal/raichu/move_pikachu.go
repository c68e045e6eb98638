package raichu

// Pikachu：前、左、右直走 1~2 格，不能后退。
// 逐格扫描：空格可停并继续；己方子或任何 Raichu 挡住；
// 敌方 Pichu/Pikachu 只有紧邻的下一格为空时才能跳吃，吃完该方向结束。
const pikachuRange = 2

func pikachuDirs(side Side) [3][2]int {
	f := forwardDir(side)
	return [3][2]int{
		{f, 0},  // 前
		{0, -1}, // 左
		{0, +1}, // 右
	}
}

func genPikachuMoves(p *Position, from int, moves *[]Move) {
	b := &p.Board
	row, col := b.RowCol(from)
	side := b.Squares[from].Side()

	for _, d := range pikachuDirs(side) {
		for k := 1; k <= pikachuRange; k++ {
			r, c := row+k*d[0], col+k*d[1]
			if !b.InBounds(r, c) {
				break
			}
			pc := b.At(r, c)
			if pc == 0 {
				*moves = append(*moves, Move{From: from, To: b.Index(r, c), Capture: NoSquare})
				continue
			}
			if pc.Side() != side && pc.Type() != PieceRaichu {
				lr, lc := r+d[0], c+d[1]
				if b.InBounds(lr, lc) && b.At(lr, lc) == 0 {
					*moves = append(*moves, Move{From: from, To: b.Index(lr, lc), Capture: b.Index(r, c)})
				}
			}
			break
		}
	}
}
