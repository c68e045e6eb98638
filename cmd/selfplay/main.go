package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"raichu/internal/engine"
	"raichu/internal/raichu"
)

type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

func main() {
	n := flag.Int("n", 8, "board size")
	totalGames := flag.Int("games", 4, "number of games to play")
	depthA := flag.Int("depth-a", 2, "search depth of player A")
	depthB := flag.Int("depth-b", 4, "search depth of player B")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	parallel := flag.Bool("parallel", true, "root-parallel search")
	pprof := flag.Bool("pprof", false, "serve pprof on localhost:6060")
	flag.Parse()

	if *pprof {
		go func() {
			log.Println("pprof listening on :6060")
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	playerA := PlayerConfig{
		Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *depthA),
		Cfg:  engine.SearchConfig{MaxDepth: *depthA, Parallel: *parallel, UseTT: true},
	}
	playerB := PlayerConfig{
		Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *depthB),
		Cfg:  engine.SearchConfig{MaxDepth: *depthB, Parallel: *parallel, UseTT: true},
	}

	e := engine.NewEngine()
	aWins, bWins, draws := 0, 0, 0

	for g := 0; g < *totalGames; g++ {
		white, black := playerA, playerB
		if g%2 == 1 {
			white, black = playerB, playerA
		}

		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name, black.Name)
		winner := playGame(e, *n, *maxMoves, white, black)

		switch {
		case winner == raichu.NoSide:
			draws++
			fmt.Println("Result: Draw")
		case (winner == raichu.White) == (g%2 == 0):
			aWins++
			fmt.Printf("Result: %s Wins!\n", playerA.Name)
		default:
			bWins++
			fmt.Printf("Result: %s Wins!\n", playerB.Name)
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("A %s: %d\n", playerA.Name, aWins)
	fmt.Printf("B %s: %d\n", playerB.Name, bWins)
	fmt.Printf("Draws: %d\n", draws)
}

// playGame 返回赢家；步数用完算和（NoSide）
func playGame(e *engine.Engine, n, maxMoves int, white, black PlayerConfig) raichu.Side {
	pos, err := raichu.NewInitialPosition(n)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < maxMoves; i++ {
		cfg := white.Cfg
		if pos.SideToMove == raichu.Black {
			cfg = black.Cfg
		}

		start := time.Now()
		res, ok := e.Search(context.Background(), pos, cfg)
		if !ok {
			// 无子可动，当前方输
			return raichu.Opposite(pos.SideToMove)
		}
		duration := time.Since(start)
		fmt.Printf("%3d %s %+v score %d nodes %d time %v\n",
			i+1, pos.SideToMove, res.BestMove, res.Score, res.Nodes, duration)

		pos = res.Position
		if w := pos.Winner(); w != raichu.NoSide {
			return w
		}
	}
	return raichu.NoSide
}
