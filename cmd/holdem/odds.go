package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdemengine/internal/evaluator"
	"github.com/lox/holdemengine/internal/randutil"
)

type OddsCmd struct {
	Hole      string `arg:"" help:"Hole cards, e.g. 'AhKh'"`
	Board     string `short:"b" help:"Community cards dealt so far"`
	Opponents int    `short:"o" default:"1" help:"Number of opponents holding random cards"`
	Samples   int    `short:"n" default:"20000" help:"Number of Monte Carlo samples"`
	Seed      int64  `help:"Seed for reproducible results (0 for random)"`
}

func (c *OddsCmd) Run(g *Globals) error {
	hole, board, err := parseHoleAndBoard(c.Hole, c.Board)
	if err != nil {
		return err
	}
	seed := c.Seed
	if seed == 0 {
		_, seed = randutil.NewTimeSeeded()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eq, err := evaluator.EstimateEquity(ctx, hole, board, c.Opponents, c.Samples, seed)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(" Equity "))
	fmt.Printf("%s %s", infoStyle.Render("Hole:"), renderCards(hole))
	if len(board) > 0 {
		fmt.Printf("  %s %s", infoStyle.Render("Board:"), renderCards(board))
	}
	fmt.Println()
	fmt.Printf("%s %s\n", infoStyle.Render("Win: "), successStyle.Render(fmt.Sprintf("%6.2f%%", 100*eq.Win)))
	fmt.Printf("%s %s\n", infoStyle.Render("Tie: "), warningStyle.Render(fmt.Sprintf("%6.2f%%", 100*eq.Tie)))
	fmt.Printf("%s %6.2f%%\n", infoStyle.Render("Loss:"), 100*eq.Loss)
	fmt.Println(infoStyle.Render(fmt.Sprintf("%d samples vs %d opponents, seed %d", eq.Samples, c.Opponents, seed)))
	return nil
}
