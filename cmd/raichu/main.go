package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"raichu/internal/engine"
	"raichu/internal/raichu"
)

// 迭代加深最多搜到这么深，实际由时间限制截断
const maxCLIDepth = 64

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: raichu N player board timelimit")
	os.Exit(2)
}

func main() {
	if len(os.Args) != 5 {
		usage()
	}

	n, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad N %q: %v\n", os.Args[1], err)
		os.Exit(2)
	}
	side, err := raichu.ParseSide(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid player:", err)
		os.Exit(2)
	}
	seconds, err := strconv.Atoi(os.Args[4])
	if err != nil || seconds <= 0 {
		fmt.Fprintf(os.Stderr, "bad timelimit %q\n", os.Args[4])
		os.Exit(2)
	}
	pos, err := raichu.DecodePosition(os.Args[3], n, side)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Bad board string:", err)
		os.Exit(2)
	}

	fmt.Printf("Searching for best move for %s from board state: \n%s\n", side, pos)
	fmt.Println("Here's what I decided:")

	// 留一点余量打印
	limit := time.Duration(seconds)*time.Second - 200*time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), max(limit, 100*time.Millisecond))
	defer cancel()

	e := engine.NewEngine()
	cfg := engine.SearchConfig{MaxDepth: maxCLIDepth, Parallel: true, UseTT: true}
	for res := range e.FindBestMove(ctx, pos, cfg) {
		fmt.Println(res.Position.Encode())
	}
}
