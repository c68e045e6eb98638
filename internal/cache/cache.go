// Package cache 缓存搜索结果：同一局面同一深度不重复搜索。
package cache

import (
	"context"
	"fmt"

	"raichu/internal/engine"
	"raichu/internal/raichu"
)

// Entry 是缓存里存的东西，JSON 序列化
type Entry struct {
	BestMove raichu.Move `json:"best_move"`
	Position string      `json:"position"` // 走完之后的局面编码
	Score    int         `json:"score"`
	Depth    int         `json:"depth"`
	Nodes    int64       `json:"nodes"`
}

type ResultCache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
}

// Key 局面 + 轮到谁 + 深度
func Key(pos *raichu.Position, depth int) string {
	return fmt.Sprintf("raichu:%d:%s:%s:%d", pos.Board.N, pos.SideToMove, pos.Encode(), depth)
}

func EntryFromResult(res engine.SearchResult) Entry {
	return Entry{
		BestMove: res.BestMove,
		Position: res.Position.Encode(),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
	}
}
