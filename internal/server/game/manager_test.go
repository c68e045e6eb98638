package game

import (
	"context"
	"errors"
	"testing"

	"raichu/internal/raichu"
)

func TestNewGameAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), nil)

	g, err := m.NewGame(ctx, 8)
	if err != nil {
		t.Fatal(err)
	}
	if g.ID == "" || g.Status != StatusOngoing || g.Pos.SideToMove != raichu.White {
		t.Fatalf("bad new game: %+v", g)
	}
	got, err := m.Get(ctx, g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Pos.Encode() != g.Pos.Encode() {
		t.Fatal("stored position differs")
	}
	if _, err := m.Get(ctx, "nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("want ErrGameNotFound, got %v", err)
	}
	if _, err := m.NewGame(ctx, 7); err == nil {
		t.Fatal("odd size accepted")
	}
}

func TestPlayAppliesLegalMove(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), nil)
	g, _ := m.NewGame(ctx, 8)

	mv := g.Pos.GenerateMoves()[0]
	after, err := m.Play(ctx, g.ID, raichu.Move{From: mv.From, To: mv.To})
	if err != nil {
		t.Fatal(err)
	}
	if after.Pos.SideToMove != raichu.Black || len(after.History) != 1 || after.History[0] != mv {
		t.Fatalf("bad state after play: %+v", after)
	}

	// 白方刚走完，再走白方的招是非法的
	if _, err := m.Play(ctx, g.ID, raichu.Move{From: mv.From, To: mv.To}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("want ErrIllegalMove, got %v", err)
	}
}

func TestPlayFinishesGame(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, nil)

	pos, err := raichu.DecodePosition("w...b....", 3, raichu.White)
	if err != nil {
		t.Fatal(err)
	}
	g := &GameState{ID: "g1", N: 3, Pos: pos, Status: StatusOf(pos)}
	if err := store.Create(ctx, g); err != nil {
		t.Fatal(err)
	}

	after, err := m.Play(ctx, "g1", raichu.Move{From: 0, To: 8})
	if err != nil {
		t.Fatal(err)
	}
	if after.Status != StatusWhiteWon || after.History[0].Capture != 4 {
		t.Fatalf("got %+v", after)
	}
	if _, err := m.Play(ctx, "g1", raichu.Move{From: 8, To: 5}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("want ErrGameOver, got %v", err)
	}
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		board string
		side  raichu.Side
		want  string
	}{
		{"w...b....", raichu.White, StatusOngoing},
		{"w...B....", raichu.White, StatusNoMoves},
		{"........@", raichu.Black, StatusWhiteWon},
		{"$........", raichu.White, StatusBlackWon},
	}
	for _, tc := range cases {
		pos, err := raichu.DecodePosition(tc.board, 3, tc.side)
		if err != nil {
			t.Fatal(err)
		}
		if got := StatusOf(pos); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.board, got, tc.want)
		}
	}
}
