package main

import (
	"fmt"
	"strings"

	"github.com/lox/holdemengine/internal/deck"
	"github.com/lox/holdemengine/internal/evaluator"
)

type EvalCmd struct {
	Hole  string `arg:"" help:"Hole cards, e.g. 'AhKh'"`
	Board string `arg:"" optional:"" help:"Community cards, e.g. 'QhJhTh'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	hole, board, err := parseHoleAndBoard(c.Hole, c.Board)
	if err != nil {
		return err
	}
	if len(hole)+len(board) < 5 {
		return fmt.Errorf("need at least 5 cards, got %d", len(hole)+len(board))
	}

	hand := evaluator.Evaluate(hole, board)
	fmt.Println(headerStyle.Render(" Hand Evaluation "))
	fmt.Printf("%s %s\n", infoStyle.Render("Hole: "), renderCards(hole))
	if len(board) > 0 {
		fmt.Printf("%s %s\n", infoStyle.Render("Board:"), renderCards(board))
	}
	fmt.Printf("%s %s  %s\n", infoStyle.Render("Best: "), successStyle.Render(hand.Name), renderCards(hand.Cards))
	if len(hole) == 2 {
		fmt.Printf("%s %s (percentile %.2f)\n", infoStyle.Render("Start:"),
			deck.StartingHand(hole[0], hole[1]), deck.StartingHandPercentile(hole))
	}
	return nil
}

// parseHoleAndBoard parses two hole cards and up to five board cards and
// rejects cards that appear twice.
func parseHoleAndBoard(holeStr, boardStr string) ([]deck.Card, []deck.Card, error) {
	hole, err := deck.ParseCards(holeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid hole cards: %w", err)
	}
	if len(hole) != 2 {
		return nil, nil, fmt.Errorf("need exactly 2 hole cards, got %d", len(hole))
	}

	var board []deck.Card
	if strings.TrimSpace(boardStr) != "" {
		board, err = deck.ParseCards(boardStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid board: %w", err)
		}
	}
	if len(board) > 5 {
		return nil, nil, fmt.Errorf("board cannot have more than 5 cards")
	}

	seen := make(map[deck.Card]bool, len(hole)+len(board))
	for _, card := range append(append([]deck.Card{}, hole...), board...) {
		if seen[card] {
			return nil, nil, fmt.Errorf("card %s appears twice", card)
		}
		seen[card] = true
	}
	return hole, board, nil
}
