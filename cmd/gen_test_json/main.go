package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"raichu/internal/raichu"
)

// TestCase 一个局面和它的全部合法招，给前端 / 其它实现对拍用
type TestCase struct {
	N          int           `json:"n"`
	Board      string        `json:"board"`
	ToMove     string        `json:"to_move"`
	Moves      []raichu.Move `json:"moves"`
	Successors []string      `json:"successors"`
	Terminal   bool          `json:"terminal"`
}

func main() {
	n := flag.Int("n", 8, "board size")
	numGames := flag.Int("games", 10, "number of random games")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		pos, err := raichu.NewInitialPosition(*n)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		maxMoves := 300 // 主要是防死循环
		for moveCount := 0; moveCount < maxMoves; moveCount++ {
			succ := pos.Successors()
			tc := TestCase{
				N:        *n,
				Board:    pos.Encode(),
				ToMove:   pos.SideToMove.String(),
				Moves:    make([]raichu.Move, len(succ)),
				Terminal: pos.GameOver(),
			}
			for i, s := range succ {
				tc.Moves[i] = s.Move
				tc.Successors = append(tc.Successors, s.Pos.Encode())
			}
			testCases = append(testCases, tc)

			if len(succ) == 0 || pos.GameOver() {
				break
			}
			// 随机选一步
			pos = succ[rng.Intn(len(succ))].Pos
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
