package raichu

// Inventory 局面的派生视图：每种棋子占据的格子（行优先）。按需从棋盘重算，不单独保存。
type Inventory struct {
	squares [2][len(pieceTypes) + 1][]int
}

func sideIndex(s Side) int {
	if s == Black {
		return 1
	}
	return 0
}

func (b *Board) Inventory() Inventory {
	var inv Inventory
	n := b.NumSquares()
	for sq := 0; sq < n; sq++ {
		pc := b.Squares[sq]
		if pc == 0 {
			continue
		}
		si, pt := sideIndex(pc.Side()), pc.Type()
		inv.squares[si][pt] = append(inv.squares[si][pt], sq)
	}
	return inv
}

// Squares 某种棋子的所有格子
func (inv *Inventory) Squares(pc Piece) []int {
	if pc == 0 {
		return nil
	}
	return inv.squares[sideIndex(pc.Side())][pc.Type()]
}

func (inv *Inventory) Count(pc Piece) int { return len(inv.Squares(pc)) }

// SideCount 一方三种棋子的总数
func (inv *Inventory) SideCount(side Side) int {
	total := 0
	for _, pt := range pieceTypes {
		total += len(inv.squares[sideIndex(side)][pt])
	}
	return total
}

// Counts 只统计数量，不分配切片；评估函数用这个。
func (b *Board) Counts() (counts [2][len(pieceTypes) + 1]int) {
	n := b.NumSquares()
	for sq := 0; sq < n; sq++ {
		pc := b.Squares[sq]
		if pc == 0 {
			continue
		}
		counts[sideIndex(pc.Side())][pc.Type()]++
	}
	return counts
}
