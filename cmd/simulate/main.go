package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/config"
	"github.com/lox/headsup/internal/fileutil"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/simulator"
	"github.com/lox/headsup/internal/statistics"
)

var sectionStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Tournaments int    `default:"1000" help:"Number of tournaments to simulate"`
	MaxHands    int    `default:"1000" help:"Hand limit per tournament"`
	Seed        int64  `default:"0" help:"RNG seed (0 for random)"`
	Workers     int    `default:"0" help:"Concurrent tournaments (0 = number of CPUs)"`
	Player      string `default:"call" enum:"aggressive,call,equity,random" help:"Simulated player strategy: ${enum}"`
	Config      string `short:"c" type:"path" default:"headsup.hcl" help:"HCL config file for rules and the bot's strategy"`
	Output      string `short:"o" type:"path" help:"Write a JSON report to this file"`
	Verbose     bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Play simulated tournaments against the bot and report results"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(run(cli))
}

func run(cli CLI) error {
	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "simulate"})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	seed := randutil.Seed(cli.Seed)

	sim, err := simulator.New(simulator.Config{
		Tournaments: cli.Tournaments,
		MaxHands:    cli.MaxHands,
		Workers:     cli.Workers,
		Seed:        seed,
		Player:      cli.Player,
		Options:     cfg.Options(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting simulation: %d tournaments, %s player vs %s (seed: %d)\n",
		cli.Tournaments, cli.Player, cfg.OpponentName(), seed)

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	printSummary(stats, cli.Player, duration)

	if cli.Output != "" {
		report := newReport(stats, cli, seed, duration)
		if err := fileutil.WriteJSONAtomic(cli.Output, report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", cli.Output)
	}
	return nil
}

func printSummary(stats *statistics.Statistics, player string, duration time.Duration) {
	low, high := stats.ConfidenceInterval95()

	fmt.Println()
	fmt.Println(sectionStyle.Render(fmt.Sprintf("FINAL RESULTS: %s player", player)))
	fmt.Printf("Tournaments: %d (player %d, bot %d, unfinished %d)\n",
		stats.Tournaments, stats.PlayerTournaments, stats.BotTournaments, stats.Unfinished)
	fmt.Printf("Hands played: %d (mean %.1f per tournament, longest %d)\n",
		stats.Hands, stats.MeanTournamentLength(), stats.LongestTournament)
	fmt.Printf("Total time: %v (%.0f hands/sec)\n",
		duration.Round(time.Millisecond), float64(stats.Hands)/duration.Seconds())

	fmt.Println()
	fmt.Println(sectionStyle.Render("STATISTICAL RESULTS"))
	fmt.Printf("Mean: %.3f chips/hand\n", stats.Mean())
	fmt.Printf("Median: %.3f chips/hand\n", stats.Median())
	fmt.Printf("Std Dev: %.3f chips\n", stats.StdDev())
	fmt.Printf("95%% CI: [%.3f, %.3f] chips/hand\n", low, high)
	fmt.Printf("Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Println()
	fmt.Println(sectionStyle.Render("HAND OUTCOMES"))
	fmt.Printf("Won %d, lost %d, split %d\n", stats.PlayerWins, stats.OpponentWins, stats.Ties)
	fmt.Printf("Showdowns: %d (%.1f%%), won %d at showdown, %d by fold\n",
		stats.Showdowns, stats.ShowdownRate()*100, stats.ShowdownWins, stats.NonShowdownWins)
	fmt.Printf("Showdown: %.2f chips/hand, non-showdown: %.2f chips/hand\n",
		stats.ShowdownChips/float64(stats.Hands), stats.NonShowdownChips/float64(stats.Hands))
	fmt.Printf("Max pot: %d chips, big pots (>=%d): %d\n",
		stats.MaxPot, statistics.BigPotThreshold, stats.BigPots)

	fmt.Println()
	fmt.Println(sectionStyle.Render("BY PHASE REACHED"))
	for _, phase := range []string{"pre-flop", "flop", "turn", "river"} {
		if ps := stats.PhaseResults[phase]; ps != nil && ps.Hands > 0 {
			fmt.Printf("%-9s %6d hands, %8.2f chips/hand\n", phase, ps.Hands, stats.PhaseMean(phase))
		}
	}

	if len(stats.WinningCategories) > 0 {
		fmt.Println()
		fmt.Println(sectionStyle.Render("WINNING CATEGORIES"))
		cats := make([]string, 0, len(stats.WinningCategories))
		for cat := range stats.WinningCategories {
			cats = append(cats, cat)
		}
		sort.Slice(cats, func(i, j int) bool {
			return stats.WinningCategories[cats[i]] > stats.WinningCategories[cats[j]]
		})
		for _, cat := range cats {
			fmt.Printf("%-16s %d\n", cat, stats.WinningCategories[cat])
		}
	}
}
