package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

func main() {
	diagram := flag.String("pos", "", "position diagram (default: start position)")
	side := flag.String("side", "red", "side to move")
	depth := flag.Int("depth", 0, "also run a search at this depth")
	flag.Parse()

	pos := xiangqi.NewStartPosition()
	if *diagram != "" {
		var err error
		if pos, err = xiangqi.Decode(*diagram); err != nil {
			log.Fatal(err)
		}
	}
	toMove := xiangqi.Red
	if *side == "black" {
		toMove = xiangqi.Black
	}

	fmt.Println("Diagram:", pos.Encode())
	fmt.Print(pos)
	fmt.Printf("Hash: %016x\n", pos.Hash)
	for _, s := range []xiangqi.Side{xiangqi.Red, xiangqi.Black} {
		fmt.Printf("%v legal moves: %d\n", s, len(pos.LegalMoves(s)))
	}
	fmt.Printf("Eval (%v): %d\n", toMove, engine.Evaluate(pos, toMove))

	if *depth == 0 {
		return
	}
	res, err := engine.NewEngine().Search(pos, toMove, engine.SearchConfig{Depth: *depth})
	if err != nil {
		log.Fatal(err)
	}
	to, _ := pos.Target(res.BestMove)
	from, _ := pos.CoordOf(res.BestMove.Piece)
	fmt.Printf("BestMove: %v-%v, Score: %d, Nodes: %d, Time: %v\n", from, to, res.Score, res.Nodes, res.TimeUsed)
	for _, c := range res.Candidates {
		f, _ := pos.CoordOf(c.Move.Piece)
		t, _ := pos.Target(c.Move)
		fmt.Printf("  %v-%v %d\n", f, t, c.Score)
	}
}
