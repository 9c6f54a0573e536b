package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxHands bounds a tournament in which neither stack ever empties
const DefaultMaxHands = 1000

// ErrChipsNotConserved is returned when the chip total changes during play
var ErrChipsNotConserved = errors.New("chips not conserved")

// Config holds configuration for running simulations
type Config struct {
	Tournaments int
	MaxHands    int // per tournament, DefaultMaxHands when zero
	Workers     int // concurrent tournaments, NumCPU when zero
	Seed        int64
	Player      string        // simulated player strategy, see PlayerStrategies
	Options     []game.Option // session options (rules, opponent strategy)
	Logger      *log.Logger
}

// Simulator plays complete tournaments between a scripted player and the opponent policy
type Simulator struct {
	config Config
	player PlayerStrategy
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Tournaments <= 0 {
		return nil, fmt.Errorf("tournaments must be positive, got %d", config.Tournaments)
	}
	if config.MaxHands <= 0 {
		config.MaxHands = DefaultMaxHands
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Player == "" {
		config.Player = "call"
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	player, err := NewPlayerStrategy(config.Player)
	if err != nil {
		return nil, err
	}
	return &Simulator{config: config, player: player}, nil
}

// Run plays every tournament and returns the merged results. Tournament i is
// seeded from randutil.DeriveSeed(Seed, i), so the result is the same for any
// number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	start := time.Now()
	results := make([]*statistics.Statistics, s.config.Tournaments)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Tournaments {
		seed := randutil.DeriveSeed(s.config.Seed, i)
		g.Go(func() error {
			stats, err := s.playTournament(ctx, i, seed)
			if err != nil {
				return fmt.Errorf("tournament %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Merge(r)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"tournaments", stats.Tournaments,
		"hands", stats.Hands,
		"player", s.player.Name(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return stats, nil
}

// playTournament plays hands until a stack is empty or MaxHands is reached
func (s *Simulator) playTournament(ctx context.Context, index int, seed int64) (*statistics.Statistics, error) {
	logger := s.config.Logger.With("tournament", index+1)
	opts := append(append([]game.Option{}, s.config.Options...), game.WithLogger(logger))

	session := game.NewSession(randutil.New(seed), opts...)
	playerRng := randutil.Derive(seed, 0)
	rules := session.Rules()

	stats := &statistics.Statistics{}
	snap := session.Snapshot()
	total := snap.TotalChips()

	result := statistics.TournamentResult{Seed: seed}
	for result.Hands < s.config.MaxHands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := snap.PlayerChips
		var err error
		snap, err = session.NewRound()
		if err != nil {
			return nil, fmt.Errorf("deal hand %d: %w", result.Hands+1, err)
		}
		if snap.Phase == game.TournamentOver {
			result.Winner = "player"
			if snap.PlayerChips <= 0 {
				result.Winner = "opponent"
			}
			break
		}
		result.Hands++

		hand, err := s.playHand(session, rules, playerRng, total)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", result.Hands, err)
		}
		snap = session.Snapshot()
		hand.Seed = seed
		hand.NetChips = snap.PlayerChips - before
		stats.Add(hand)
	}

	result.FinalChips = [2]int{snap.PlayerChips, snap.OpponentChips}
	stats.AddTournament(result)
	logger.Debug("Tournament finished", "hands", result.Hands, "winner", result.Winner, "player", snap.PlayerChips, "opponent", snap.OpponentChips)
	return stats, nil
}

// playHand drives one dealt hand to its end, checking invariants after every action
func (s *Simulator) playHand(session *game.Session, rules game.Rules, rng *rand.Rand, total int) (statistics.HandResult, error) {
	snap := session.Snapshot()
	reached := snap.Phase

	for snap.Phase.IsBetting() {
		reached = snap.Phase

		var err error
		if snap.OpponentToAct() {
			snap, err = session.OpponentAct(snap.RoundID)
		} else {
			snap, err = session.PlayerAction(s.player.Act(snap, rules, rng))
			if errors.Is(err, game.ErrInsufficientChips) {
				snap, err = session.PlayerAction(game.CheckCall)
			}
		}
		if err != nil {
			return statistics.HandResult{}, err
		}

		if got := snap.TotalChips(); got != total {
			return statistics.HandResult{}, fmt.Errorf("%w: have %d, want %d", ErrChipsNotConserved, got, total)
		}
		if err := session.Validate(); err != nil {
			return statistics.HandResult{}, err
		}
	}

	out := snap.Outcome
	if out == nil {
		return statistics.HandResult{}, fmt.Errorf("hand ended in %s without an outcome", snap.Phase)
	}

	result := statistics.HandResult{
		WentToShowdown: snap.Phase == game.Showdown,
		FinalPot:       out.Pot,
		PhaseReached:   reached.String(),
		Winner:         out.WinnerLabel(),
	}
	if !out.Folded {
		result.Category = out.Reason
	}
	return result, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, tournaments int, player string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	sim, err := New(Config{
		Tournaments: tournaments,
		Seed:        seed,
		Player:      player,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx)
}
