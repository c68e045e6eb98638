package engine

import (
	"context"
	"testing"

	"raichu/internal/raichu"
)

func mustDecode(t *testing.T, s string, n int, side raichu.Side) *raichu.Position {
	t.Helper()
	pos, err := raichu.DecodePosition(s, n, side)
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return pos
}

// samplePositions 从 start 开始交替走中间那步/吃子步，收集沿途局面
func samplePositions(t *testing.T, start *raichu.Position, plies int) []*raichu.Position {
	t.Helper()
	out := []*raichu.Position{start}
	pos := start
	for i := 0; i < plies; i++ {
		succ := pos.Successors()
		if len(succ) == 0 || pos.GameOver() {
			break
		}
		next := succ[(i*7)%len(succ)]
		if i%3 == 0 {
			for _, s := range succ {
				if s.Move.IsCapture() {
					next = s
					break
				}
			}
		}
		pos = next.Pos
		out = append(out, pos)
	}
	return out
}

// 不剪枝的极大极小，作为对照
func plainMinimax(pos *raichu.Position, depth int) (int, raichu.Successor) {
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
	best, bestScore := succ[0], scoreInf
	if maximizing {
		bestScore = -scoreInf
	}
	for _, s := range succ {
		if s.Pos.IsTerminal(side) {
			return winScore(side, depth), s
		}
		score, _ := plainMinimax(s.Pos, depth-1)
		if better(maximizing, score, bestScore) {
			best, bestScore = s, score
		}
	}
	return bestScore, best
}

func TestMinimaxDepthZeroReturnsStaticEval(t *testing.T) {
	pos, _ := raichu.NewInitialPosition(8)
	for _, p := range samplePositions(t, pos, 10) {
		e := NewEngine()
		score, s := e.Minimax(p, 0, -scoreInf, scoreInf)
		if score != Evaluate(p) || s.Pos != p || !s.Move.IsNone() {
			t.Fatalf("depth 0: got (%d, %+v)", score, s.Move)
		}
	}
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	starts := []*raichu.Position{
		mustInitial(t, 6),
		mustInitial(t, 8),
		mustDecode(t, "..W.....w...b....B.$..@..", 5, raichu.White),
		mustDecode(t, "..W.....w...b....B.$..@..", 5, raichu.Black),
	}
	for _, start := range starts {
		for _, pos := range samplePositions(t, start, 12) {
			for depth := 1; depth <= 3; depth++ {
				wantScore, want := plainMinimax(pos, depth)
				for _, ttSize := range []int{0, 1 << 12} {
					e := NewEngine(WithTTSize(ttSize))
					gotScore, got := e.Minimax(pos, depth, -scoreInf, scoreInf)
					if gotScore != wantScore || got.Move != want.Move {
						t.Fatalf("%s %v depth %d tt %d: got (%d, %+v) want (%d, %+v)",
							pos.Encode(), pos.SideToMove, depth, ttSize, gotScore, got.Move, wantScore, want.Move)
					}
				}
			}
		}
	}
}

func mustInitial(t *testing.T, n int) *raichu.Position {
	t.Helper()
	pos, err := raichu.NewInitialPosition(n)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}

func collect(ctx context.Context, e *Engine, pos *raichu.Position, cfg SearchConfig) []SearchResult {
	var out []SearchResult
	for res := range e.FindBestMove(ctx, pos, cfg) {
		out = append(out, res)
	}
	return out
}

func TestFindBestMoveAscendsDepth(t *testing.T) {
	pos := mustInitial(t, 8)
	results := collect(context.Background(), NewEngine(), pos, SearchConfig{MinDepth: 1, MaxDepth: 4, UseTT: true})
	if len(results) != 4 {
		t.Fatalf("want 4 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Depth != i+1 {
			t.Fatalf("result %d has depth %d", i, res.Depth)
		}
		if res.Position == nil || res.Position.SideToMove != raichu.Black {
			t.Fatalf("result %d: bad position", i)
		}
	}
}

func TestFindBestMoveIsDeterministic(t *testing.T) {
	pos := mustInitial(t, 8)
	cfg := SearchConfig{MaxDepth: 4, UseTT: true}
	a := collect(context.Background(), NewEngine(), pos, cfg)
	b := collect(context.Background(), NewEngine(), pos, cfg)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].BestMove != b[i].BestMove || a[i].Score != b[i].Score || a[i].Position.Encode() != b[i].Position.Encode() {
			t.Fatalf("depth %d differs: %+v vs %+v", i+1, a[i].BestMove, b[i].BestMove)
		}
	}
}

func TestParallelAndTTPickSameMove(t *testing.T) {
	for _, start := range []*raichu.Position{mustInitial(t, 8), mustInitial(t, 6)} {
		for _, pos := range samplePositions(t, start, 8) {
			if pos.GameOver() {
				continue
			}
			base := SearchConfig{MaxDepth: 3}
			want, ok := NewEngine(WithTTSize(0)).Search(context.Background(), pos, base)
			if !ok {
				continue
			}
			for _, cfg := range []SearchConfig{
				{MaxDepth: 3, UseTT: true},
				{MaxDepth: 3, Parallel: true, Workers: 4},
				{MaxDepth: 3, Parallel: true, Workers: 2, UseTT: true},
			} {
				got, ok := NewEngine().Search(context.Background(), pos, cfg)
				if !ok || got.BestMove != want.BestMove || got.Score != want.Score {
					t.Fatalf("%s cfg %+v: got %+v/%d want %+v/%d",
						pos.Encode(), cfg, got.BestMove, got.Score, want.BestMove, want.Score)
				}
			}
		}
	}
}

func TestImmediateWinStopsSequence(t *testing.T) {
	pos := mustDecode(t, "w...b....", 3, raichu.White)
	results := collect(context.Background(), NewEngine(), pos, SearchConfig{MaxDepth: 5})
	if len(results) != 1 {
		t.Fatalf("want a single result, got %d", len(results))
	}
	res := results[0]
	if res.Position.Encode() != "........@" || res.Score != ScoreWin+1 {
		t.Fatalf("got %s score %d", res.Position.Encode(), res.Score)
	}
	if !res.Position.IsTerminal(raichu.White) {
		t.Fatalf("winning position should be terminal")
	}
}

func TestBlackPrefersCapture(t *testing.T) {
	// 黑 Raichu 沿第一行滑过去吃掉白方唯一的子
	pos := mustDecode(t, "$....w...........................................", 7, raichu.Black)
	res, ok := NewEngine().Search(context.Background(), pos, SearchConfig{MaxDepth: 3})
	if !ok {
		t.Fatal("no result")
	}
	want := raichu.Move{From: 0, To: 6, Capture: 5}
	if res.BestMove != want || res.Score != -(ScoreWin+1) || res.Depth != 1 {
		t.Fatalf("got %+v score %d depth %d", res.BestMove, res.Score, res.Depth)
	}
}

func TestNoMovesAtRootYieldsNothing(t *testing.T) {
	pos := mustDecode(t, "w...B....", 3, raichu.White)
	if got := collect(context.Background(), NewEngine(), pos, SearchConfig{MaxDepth: 3}); len(got) != 0 {
		t.Fatalf("want no results, got %d", len(got))
	}
	// 搜索树里无棋可走的一方判负
	score, _ := NewEngine().Minimax(pos, 2, -scoreInf, scoreInf)
	if score != lossScore(raichu.White, 2) {
		t.Fatalf("got %d", score)
	}
}

func TestConsumerCanStopEarly(t *testing.T) {
	pos := mustInitial(t, 8)
	n := 0
	for res := range NewEngine().FindBestMove(context.Background(), pos, SearchConfig{MaxDepth: 6}) {
		n++
		if res.Depth == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("consumed %d results", n)
	}
}

func TestCancelledContextYieldsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pos := mustInitial(t, 8)
	if got := collect(ctx, NewEngine(), pos, SearchConfig{MaxDepth: 3}); len(got) != 0 {
		t.Fatalf("want no results, got %d", len(got))
	}
}

func TestReusedEngineAcrossBoardSizes(t *testing.T) {
	small := mustDecode(t, "....w......@........$.B..", 5, raichu.White)
	big := mustDecode(t, "....w......@........$.B.."+"...........", 6, raichu.White)
	cfg := SearchConfig{MaxDepth: 3, UseTT: true}

	shared := NewEngine()
	if _, ok := shared.Search(context.Background(), small, cfg); !ok {
		t.Fatal("no result on 5x5")
	}
	got, ok := shared.Search(context.Background(), big, cfg)
	if !ok {
		t.Fatal("no result on 6x6")
	}
	want, _ := NewEngine().Search(context.Background(), big, cfg)
	if got.BestMove != want.BestMove || got.Score != want.Score {
		t.Fatalf("reused engine (%+v, %d) vs fresh (%+v, %d)", got.BestMove, got.Score, want.BestMove, want.Score)
	}
}
