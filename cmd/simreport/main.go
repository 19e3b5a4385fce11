package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/ugaemi/mazechase-server/internal/config"
	"github.com/ugaemi/mazechase-server/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome   game.Outcome
	ticks     int
	score     int
	remaining int

	dots       int
	powers     int
	fruit      int
	catches    int
	bestChain  int
	turns      int
	firstCatch int
	firstPower int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var turnEvery int
	var tuningFile string

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 60*game.TickRate, "tick limit per round")
	flag.Int64Var(&seedBase, "seed", 42, "base RNG seed for run 1")
	flag.IntVar(&turnEvery, "turn-every", 12, "ticks between random steering inputs")
	flag.StringVar(&tuningFile, "tuning", "", "optional YAML tuning file")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 || turnEvery <= 0 {
		fmt.Println("error: -ticks and -turn-every must be > 0")
		return
	}

	tuning, err := config.LoadTuning(tuningFile)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	level, err := game.ParseLevel(game.DefaultLayout, tuning.CellSize, tuning.Offset)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Round Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed=%d turn_every=%d agents=%d\n\n", runs, ticks, seedBase, turnEvery, len(tuning.Roster))

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		stats, err := runRound(i+1, seedBase+int64(i), level, tuning, ticks, turnEvery)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runRound plays one round with a seeded random steering policy.
func runRound(runIndex int, seed int64, level *game.Level, tuning game.Tuning, ticks, turnEvery int) (runStats, error) {
	sim, err := game.NewSimulation(level, tuning)
	if err != nil {
		return runStats{}, err
	}
	rng := rand.New(rand.NewSource(seed))
	dirs := []game.Direction{game.DirUp, game.DirRight, game.DirDown, game.DirLeft}

	rs := runStats{runIndex: runIndex, seed: seed, firstCatch: -1, firstPower: -1}
	for tick := 0; tick < ticks && sim.Outcome() == game.OutcomeNone; tick++ {
		intent := game.DirNone
		if tick%turnEvery == 0 {
			intent = dirs[rng.Intn(len(dirs))]
		}
		for _, e := range sim.Step(game.TickInterval, intent) {
			rs.record(e, sim.Tick())
		}
		rs.bestChain = max(rs.bestChain, sim.Chain())
	}

	rs.outcome = sim.Outcome()
	rs.ticks = sim.Tick()
	rs.score = sim.Score()
	rs.remaining = sim.Remaining()
	return rs, nil
}

func (rs *runStats) record(e game.Event, tick int) {
	switch e.Kind {
	case game.EventDotEaten:
		rs.dots++
	case game.EventPowerConsumed:
		rs.powers++
		if rs.firstPower < 0 {
			rs.firstPower = tick
		}
	case game.EventFruitEaten:
		rs.fruit++
	case game.EventAgentCaught:
		rs.catches++
		if rs.firstCatch < 0 {
			rs.firstCatch = tick
		}
	case game.EventDirectionChanged:
		rs.turns++
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s ticks=%d score=%d remaining=%d\n", outcomeLabel(rs.outcome), rs.ticks, rs.score, rs.remaining)
	fmt.Printf("dots=%d powers=%d fruit=%d catches=%d best_chain=%d turns=%d\n", rs.dots, rs.powers, rs.fruit, rs.catches, rs.bestChain, rs.turns)
	fmt.Printf("first_power=%s first_catch=%s\n\n", tickLabel(rs.firstPower), tickLabel(rs.firstCatch))
}

type aggregate struct {
	wins, losses, timeouts int
	meanScore              float64
	meanTicks              float64
	totalCatches           int
	bestScore              int
}

func summarize(all []runStats) aggregate {
	var agg aggregate
	if len(all) == 0 {
		return agg
	}
	var score, ticks int
	for _, rs := range all {
		switch rs.outcome {
		case game.OutcomeWin:
			agg.wins++
		case game.OutcomeLose:
			agg.losses++
		default:
			agg.timeouts++
		}
		score += rs.score
		ticks += rs.ticks
		agg.totalCatches += rs.catches
		agg.bestScore = max(agg.bestScore, rs.score)
	}
	agg.meanScore = float64(score) / float64(len(all))
	agg.meanTicks = float64(ticks) / float64(len(all))
	return agg
}

func printAggregate(all []runStats) {
	agg := summarize(all)
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("wins=%d losses=%d timeouts=%d\n", agg.wins, agg.losses, agg.timeouts)
	fmt.Printf("mean_score=%.1f best_score=%d mean_ticks=%.1f catches=%d\n", agg.meanScore, agg.bestScore, agg.meanTicks, agg.totalCatches)
}

func outcomeLabel(o game.Outcome) string {
	if o == game.OutcomeNone {
		return "timeout"
	}
	return o.String()
}

func tickLabel(tick int) string {
	if tick < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", tick)
}
