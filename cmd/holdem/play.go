package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdemengine/internal/bot"
	"github.com/lox/holdemengine/internal/config"
	"github.com/lox/holdemengine/internal/game"
	"github.com/lox/holdemengine/internal/logging"
	"github.com/lox/holdemengine/internal/randutil"
	"github.com/lox/holdemengine/internal/statistics"
	"github.com/lox/holdemengine/internal/table"
	"golang.org/x/sync/errgroup"
)

type PlayCmd struct {
	Config string `kong:"default='holdem.hcl',help='Table configuration file (HCL); built-in tables are used when it does not exist'"`
	Hands  int    `kong:"default='100',help='Hands to play per table (0 plays until one player has every chip)'"`
	Seed   int64  `kong:"help='Seed for every table that does not set one (0 for random)'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.Config, err)
	}

	level := cfg.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	logger, err := logging.New(logging.Level(level, g.Debug), os.Stderr)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcomes := make([]tableResult, len(cfg.Tables))
	eg, ctx := errgroup.WithContext(sigCtx)
	for i, tc := range cfg.Tables {
		if tc.Seed == 0 {
			tc.Seed = c.Seed
		}
		eg.Go(func() error {
			res, err := playTable(ctx, tc, c.Hands, logger)
			outcomes[i] = res
			return err
		})
	}
	err = eg.Wait()
	if err != nil && sigCtx.Err() != nil {
		logger.Warn("Interrupted, printing partial results")
		err = nil
	}

	for _, res := range outcomes {
		printResult(res)
	}
	return err
}

type tableResult struct {
	name   string
	seed   int64
	hands  int
	final  game.GameState
	stats  *statistics.Tracker
	played bool
}

// playTable runs one table until it has played hands hands or only one
// player has chips left.
func playTable(ctx context.Context, tc config.TableConfig, hands int, logger *log.Logger) (tableResult, error) {
	res := tableResult{name: tc.Name, seed: tc.Seed, stats: statistics.NewTracker()}
	if res.seed == 0 {
		_, res.seed = randutil.NewTimeSeeded()
	}

	settings, err := tc.TableSettings()
	if err != nil {
		return res, fmt.Errorf("table %s: %w", tc.Name, err)
	}
	settings.Game.Seed = res.seed

	bots := make(map[string]bot.Bot, len(tc.Players))
	for i, p := range tc.Players {
		b, err := bot.ByName(p.Bot, randutil.New(randutil.Derive(res.seed, i)), logger.WithPrefix(p.Name))
		if err != nil {
			return res, fmt.Errorf("table %s: player %s: %w", tc.Name, p.Name, err)
		}
		bots[p.Name] = b
	}

	tbl, err := table.New(tc.Name, settings, logger, quartz.NewReal())
	if err != nil {
		return res, err
	}
	go func() { _ = tbl.Run(ctx) }()
	defer func() {
		tbl.Close()
		<-tbl.Done()
	}()

	seats := tc.Seats()
	total := 0
	for _, s := range seats {
		total += s.Chips
	}
	logger.Info("Table starting", "table", tc.Name, "players", len(seats), "chips", total, "seed", res.seed)

	if err := tbl.Start(ctx, seats); err != nil {
		return res, fmt.Errorf("table %s: %w", tc.Name, err)
	}
	decide := func(turn table.Turn) game.Action {
		return bots[turn.Player.ID].Decide(turn.State, turn.Player, turn.Valid)
	}

	for {
		final, err := tbl.PlayHand(ctx, decide)
		if err != nil {
			return res, fmt.Errorf("table %s: %w", tc.Name, err)
		}
		res.hands++
		res.final = final
		res.played = true

		if got := final.TotalChips(); got != total {
			return res, fmt.Errorf("table %s: hand %d left %d chips on the table, want %d", tc.Name, final.HandNumber, got, total)
		}
		logHand(logger, tc.Name, final)
		res.stats.AddHand(final)

		if final.Status == game.Finished || (hands > 0 && res.hands >= hands) {
			return res, nil
		}
		if err := tbl.NextHand(ctx); err != nil {
			return res, fmt.Errorf("table %s: %w", tc.Name, err)
		}
	}
}

func logHand(logger *log.Logger, name string, s game.GameState) {
	for _, w := range s.Winners {
		kv := []any{"table", name, "hand", s.HandNumber, "id", s.ID, "winner", w.PlayerID, "amount", w.Amount}
		if w.Hand != nil {
			kv = append(kv, "with", w.Hand.Name)
		}
		logger.Debug("Hand complete", kv...)
	}
}

func printResult(res tableResult) {
	if !res.played {
		return
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf(" Table %s ", res.name)))
	fmt.Println(infoStyle.Render(fmt.Sprintf("%d hands, seed %d", res.hands, res.seed)))

	players := append([]game.Player(nil), res.final.Players...)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Chips > players[j].Chips
	})
	for i, p := range players {
		line := fmt.Sprintf("%2d. %-12s %8d", i+1, p.ID, p.Chips)
		if st, ok := res.stats.Player(p.ID); ok {
			line += fmt.Sprintf("  %+8.1f bb/100  %3d showdown wins", st.BBPer100(), st.ShowdownWins)
		}
		switch {
		case i == 0:
			fmt.Println(successStyle.Render(line))
		case p.Chips == 0:
			fmt.Println(infoStyle.Render(line))
		default:
			fmt.Println(line)
		}
	}
	fmt.Println()
}
