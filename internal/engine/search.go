package engine

import (
	"context"
	"errors"
	"iter"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"raichu/internal/raichu"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	// ScoreWin 吃光对方的分值，远大于任何子力分；再加上剩余深度，越早赢分越高
	ScoreWin = 1_000_000

	DefaultMinDepth = 1
	DefaultMaxDepth = 4

	// 每 1024 个节点看一次 ctx
	cancelCheckMask = 1<<10 - 1
)

var errSearchAborted = errors.New("search aborted")

// 搜索配置
type SearchConfig struct {
	MinDepth int  // 迭代加深起始深度（ply）
	MaxDepth int  // 最大搜索深度（ply）
	Parallel bool // 根节点并行
	Workers  int  // 并行 goroutine 上限，0 表示 GOMAXPROCS
	UseTT    bool
}

func (c SearchConfig) withDefaults() SearchConfig {
	if c.MinDepth <= 0 {
		c.MinDepth = DefaultMinDepth
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxDepth < c.MinDepth {
		c.MaxDepth = c.MinDepth
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// 搜索结果
type SearchResult struct {
	BestMove raichu.Move      // 最佳着法（当前位置）
	Position *raichu.Position // 走完最佳着法后的局面
	Score    int              // 评估分（正：白方好，负：黑方好）
	Depth    int              // 这个结果对应的搜索深度
	Nodes    int64            // 本深度的节点数
	TimeUsed time.Duration    // 从开始搜索到这个结果的时间
}

func winScore(side raichu.Side, depth int) int {
	if side == raichu.White {
		return ScoreWin + depth
	}
	return -(ScoreWin + depth)
}

// 无子可动的一方判负
func lossScore(side raichu.Side, depth int) int {
	return -winScore(side, depth)
}

// 极大层要更大，极小层要更小；严格比较保证平分时先枚举的着法胜出
func better(maximizing bool, score, best int) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

// FindBestMove 迭代加深：深度从 MinDepth 递增到 MaxDepth，每完成一层就产出当前最佳着法。
// 调用方随时可以停止消费（时间到了就不再取下一个）。
// 产出的局面已经分出胜负、根节点无棋可走、或 ctx 被取消时提前结束；被打断的那一层不会产出。
func (e *Engine) FindBestMove(ctx context.Context, pos *raichu.Position, cfg SearchConfig) iter.Seq[SearchResult] {
	cfg = cfg.withDefaults()
	return func(yield func(SearchResult) bool) {
		start := time.Now()
		e.useTT = cfg.UseTT && e.tt != nil

		for depth := cfg.MinDepth; depth <= cfg.MaxDepth; depth++ {
			if ctx.Err() != nil {
				return
			}
			e.nodes = 0
			e.aborted = false

			var (
				score int
				best  raichu.Successor
			)
			if cfg.Parallel {
				score, best = e.parallelRoot(ctx, pos, depth, cfg.Workers)
			} else {
				score, best = e.minimaxRoot(ctx, pos, depth, -scoreInf, scoreInf)
			}
			if e.aborted {
				e.log.Debugw("search interrupted", "depth", depth, "nodes", e.nodes)
				return
			}
			if best.Move.IsNone() {
				// 没招（或者根局面已经结束），没有东西可产出
				e.log.Debugw("no move at root", "depth", depth, "game_over", pos.GameOver())
				return
			}

			res := SearchResult{
				BestMove: best.Move,
				Position: best.Pos,
				Score:    score,
				Depth:    depth,
				Nodes:    e.nodes,
				TimeUsed: time.Since(start),
			}
			e.log.Debugw("depth complete",
				"depth", depth,
				"score", score,
				"nodes", e.nodes,
				"board", best.Pos.Encode(),
				"elapsed", res.TimeUsed,
			)
			if !yield(res) {
				return
			}
			if best.Pos.GameOver() {
				return
			}
		}
	}
}

// Search 把 FindBestMove 跑完，返回最后（最深）的结果
func (e *Engine) Search(ctx context.Context, pos *raichu.Position, cfg SearchConfig) (SearchResult, bool) {
	var (
		last SearchResult
		ok   bool
	)
	for res := range e.FindBestMove(ctx, pos, cfg) {
		last, ok = res, true
	}
	return last, ok
}

// Minimax 带 alpha-beta 剪枝的极大极小搜索，返回分数和最佳后继。
// depth == 0 或局面已分胜负时返回 (Evaluate(pos), pos 本身)。
func (e *Engine) Minimax(pos *raichu.Position, depth, alpha, beta int) (int, raichu.Successor) {
	e.aborted = false
	return e.minimaxRoot(context.Background(), pos, depth, alpha, beta)
}

func (e *Engine) minimaxRoot(ctx context.Context, pos *raichu.Position, depth, alpha, beta int) (int, raichu.Successor) {
	e.nodes++
	self := raichu.Successor{Move: raichu.NoMove, Pos: pos}
	if depth <= 0 || pos.GameOver() {
		return Evaluate(pos), self
	}

	side := pos.SideToMove
	succ := pos.Successors()
	if len(succ) == 0 {
		return lossScore(side, depth), self
	}
	maximizing := side == raichu.White

	// 第一个后继当作初始 best；分数取最坏值，第一个一定会覆盖它
	best := succ[0]
	bestScore := scoreInf
	if maximizing {
		bestScore = -scoreInf
	}
	for _, s := range succ {
		// 这一步吃光对方，直接返回
		if s.Pos.IsTerminal(side) {
			return winScore(side, depth), s
		}
		score := e.alphaBeta(ctx, s.Pos, depth-1, alpha, beta)
		if e.aborted {
			return Evaluate(pos), self
		}
		if better(maximizing, score, bestScore) {
			best, bestScore = s, score
		}
		if maximizing {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	return bestScore, best
}

// 内部递归：fail-soft alpha-beta，只返回分数
func (e *Engine) alphaBeta(ctx context.Context, pos *raichu.Position, depth, alpha, beta int) int {
	e.nodes++

	if depth <= 0 || pos.GameOver() {
		return Evaluate(pos)
	}
	if e.nodes&cancelCheckMask == 0 && ctx.Err() != nil {
		e.aborted = true
	}
	if e.aborted {
		return Evaluate(pos)
	}

	key := pos.Hash
	if e.useTT {
		if entry, ok := e.tt.probe(key, depth); ok {
			switch entry.Flag {
			case ttExact:
				return entry.Score
			case ttLower:
				alpha = max(alpha, entry.Score)
			case ttUpper:
				beta = min(beta, entry.Score)
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}
	alphaOrig, betaOrig := alpha, beta

	side := pos.SideToMove
	succ := pos.Successors()
	if len(succ) == 0 {
		return lossScore(side, depth)
	}
	maximizing := side == raichu.White

	bestScore := scoreInf
	if maximizing {
		bestScore = -scoreInf
	}
	for _, s := range succ {
		if s.Pos.IsTerminal(side) {
			bestScore = winScore(side, depth)
			alphaOrig, betaOrig = -scoreInf, scoreInf // 精确值
			break
		}
		score := e.alphaBeta(ctx, s.Pos, depth-1, alpha, beta)
		if better(maximizing, score, bestScore) {
			bestScore = score
		}
		if maximizing {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}

	if e.useTT && !e.aborted {
		flag := ttExact
		if bestScore <= alphaOrig {
			flag = ttUpper
		} else if bestScore >= betaOrig {
			flag = ttLower
		}
		e.tt.store(key, depth, bestScore, flag)
	}
	return bestScore
}

// 根节点并行：每个后继用全窗口、独立 Engine 搜索，再按枚举顺序挑最好的，
// 结果与串行搜索选出的着法一致。
func (e *Engine) parallelRoot(ctx context.Context, pos *raichu.Position, depth, workers int) (int, raichu.Successor) {
	e.nodes++
	self := raichu.Successor{Move: raichu.NoMove, Pos: pos}
	if depth <= 0 || pos.GameOver() {
		return Evaluate(pos), self
	}

	side := pos.SideToMove
	succ := pos.Successors()
	if len(succ) == 0 {
		return lossScore(side, depth), self
	}
	for _, s := range succ {
		if s.Pos.IsTerminal(side) {
			return winScore(side, depth), s
		}
	}
	// 只有一个着法时没必要并行
	if len(succ) == 1 {
		return e.minimaxRoot(ctx, pos, depth, -scoreInf, scoreInf)
	}

	scores := make([]int, len(succ))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range succ {
		g.Go(func() error {
			local := e.fork(e.useTT)
			scores[i] = local.alphaBeta(gctx, s.Pos, depth-1, -scoreInf, scoreInf)
			atomic.AddInt64(&e.nodes, local.nodes)
			if local.aborted {
				return errSearchAborted
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.aborted = true
		return Evaluate(pos), self
	}

	maximizing := side == raichu.White
	best, bestScore := succ[0], scores[0]
	for i := 1; i < len(succ); i++ {
		if better(maximizing, scores[i], bestScore) {
			best, bestScore = succ[i], scores[i]
		}
	}
	return bestScore, best
}
