package engine

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower
	ttUpper
)

// 深度也是键的一部分：只复用同一剩余深度的结果，保证不改变选出的着法
type ttKey struct {
	Hash  uint64
	Depth int
}

type ttEntry struct {
	Score int
	Flag  ttFlag
}

type transpositionTable struct {
	m   map[ttKey]ttEntry
	cap int
}

func newTranspositionTable(capacity int) *transpositionTable {
	if capacity <= 0 {
		capacity = defaultTTSize
	}
	return &transpositionTable{
		m:   make(map[ttKey]ttEntry, min(capacity, 1<<16)),
		cap: capacity,
	}
}

func (t *transpositionTable) probe(hash uint64, depth int) (ttEntry, bool) {
	e, ok := t.m[ttKey{Hash: hash, Depth: depth}]
	return e, ok
}

func (t *transpositionTable) store(hash uint64, depth, score int, flag ttFlag) {
	// 满了直接清空，简单粗暴
	if len(t.m) >= t.cap {
		clear(t.m)
	}
	t.m[ttKey{Hash: hash, Depth: depth}] = ttEntry{Score: score, Flag: flag}
}

func (t *transpositionTable) len() int { return len(t.m) }
