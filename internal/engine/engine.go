package engine

import (
	"go.uber.org/zap"
)

const defaultTTSize = 1 << 20

// Engine 不是并发安全的：一个 Engine 同一时间只跑一个搜索。
// 根节点并行时每个 goroutine 用自己的 Engine。
type Engine struct {
	tt     *transpositionTable // nil 表示不用置换表
	ttSize int
	useTT  bool
	nodes  int64

	// 本轮搜索被 ctx 取消，结果作废
	aborted bool

	log *zap.SugaredLogger
}

type Option func(*Engine)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithTTSize sets the transposition table capacity in entries. Zero or less disables it.
func WithTTSize(n int) Option {
	return func(e *Engine) { e.ttSize = n }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		ttSize: defaultTTSize,
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ttSize > 0 {
		e.tt = newTranspositionTable(e.ttSize)
		e.useTT = true
	}
	return e
}

// fork 给根节点并行用的局部 Engine：独享置换表，避免加锁
func (e *Engine) fork(useTT bool) *Engine {
	local := &Engine{log: e.log}
	if useTT && e.ttSize > 0 {
		local.ttSize = max(e.ttSize/8, 1)
		local.tt = newTranspositionTable(local.ttSize)
		local.useTT = true
	}
	return local
}

// Nodes 最近一次搜索访问的节点数
func (e *Engine) Nodes() int64 { return e.nodes }
