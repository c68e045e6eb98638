package main

import (
	"flag"
	"fmt"

	"raichu/internal/engine"
	"raichu/internal/raichu"
)

func main() {
	n := flag.Int("n", 8, "board size")
	flag.Parse()

	pos, err := raichu.NewInitialPosition(*n)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(pos)
	fmt.Println("Board:", pos.Encode())
	fmt.Println("Moves:", len(pos.GenerateMoves()))
	fmt.Println("Eval:", engine.Evaluate(pos))
}
