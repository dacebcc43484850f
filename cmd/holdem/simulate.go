package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lox/holdemengine/internal/fileutil"
	"github.com/lox/holdemengine/internal/logging"
	"github.com/lox/holdemengine/internal/randutil"
	"github.com/lox/holdemengine/internal/simulator"
)

type SimulateCmd struct {
	Hero     string        `kong:"default='chart',help='Bot to measure'"`
	Opponent string        `kong:"default='mixed',help='Bot for the other seats, or mixed for a fixed line-up'"`
	Hands    int           `kong:"default='1000',help='Deals to play; each is played twice from different seats'"`
	Seats    int           `kong:"default='6',help='Players at the table (2-9)'"`
	Seed     int64         `kong:"help='Seed for reproducible results (0 for random)'"`
	Timeout  time.Duration `kong:"default='5s',help='Give up on a hand that takes longer than this'"`

	WriteStats string `kong:"help='Also write the summary to this file'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger, err := logging.New(logging.Level(g.LogLevel, g.Debug), os.Stderr)
	if err != nil {
		return err
	}
	seed := c.Seed
	if seed == 0 {
		_, seed = randutil.NewTimeSeeded()
	}

	sim, err := simulator.New(simulator.Config{
		Hands:    c.Hands,
		Hero:     c.Hero,
		Opponent: c.Opponent,
		Seats:    c.Seats,
		Seed:     seed,
		Timeout:  c.Timeout,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Simulating", "hero", c.Hero, "opponents", sim.Opponents(), "hands", c.Hands, "seed", seed)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Simulation complete", "duration", time.Since(start).Round(time.Millisecond))

	var summary bytes.Buffer
	simulator.PrintSummary(&summary, stats, sim.Opponents())
	fmt.Fprintf(&summary, "Seed: %d\n", seed)

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %s vs %s ", c.Hero, sim.Opponents())))
	fmt.Print(summary.String())

	if c.WriteStats != "" {
		if err := writeStats(c.WriteStats, summary.Bytes()); err != nil {
			return err
		}
		logger.Info("Wrote statistics", "path", c.WriteStats)
	}
	return nil
}

func writeStats(path string, data []byte) error {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
