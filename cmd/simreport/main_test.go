package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase-server/internal/game"
)

func TestRunRound_Deterministic(t *testing.T) {
	level := game.MustParseLevel(game.DefaultLayout, game.CellSize, game.BoardOffset)
	tuning := game.DefaultTuning()

	a, err := runRound(1, 7, level, tuning, 600, 12)
	require.NoError(t, err)
	b, err := runRound(1, 7, level, tuning, 600, 12)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed should replay the same round")
	assert.LessOrEqual(t, a.ticks, 600)
	assert.GreaterOrEqual(t, a.score, a.dots*10+a.powers*50)
}

func TestRecord(t *testing.T) {
	rs := runStats{firstCatch: -1, firstPower: -1}
	rs.record(game.Event{Kind: game.EventDotEaten}, 3)
	rs.record(game.Event{Kind: game.EventPowerConsumed}, 5)
	rs.record(game.Event{Kind: game.EventAgentCaught, AgentID: "red", Points: 200}, 9)
	rs.record(game.Event{Kind: game.EventAgentCaught, AgentID: "pink", Points: 400}, 11)

	assert.Equal(t, 1, rs.dots)
	assert.Equal(t, 1, rs.powers)
	assert.Equal(t, 2, rs.catches)
	assert.Equal(t, 5, rs.firstPower)
	assert.Equal(t, 9, rs.firstCatch)
}

func TestSummarize(t *testing.T) {
	all := []runStats{
		{outcome: game.OutcomeWin, score: 3000, ticks: 100, catches: 2},
		{outcome: game.OutcomeLose, score: 1000, ticks: 50},
		{outcome: game.OutcomeNone, score: 2000, ticks: 150, catches: 1},
	}

	agg := summarize(all)
	assert.Equal(t, 1, agg.wins)
	assert.Equal(t, 1, agg.losses)
	assert.Equal(t, 1, agg.timeouts)
	assert.InDelta(t, 2000.0, agg.meanScore, 0.001)
	assert.InDelta(t, 100.0, agg.meanTicks, 0.001)
	assert.Equal(t, 3000, agg.bestScore)
	assert.Equal(t, 3, agg.totalCatches)

	assert.Equal(t, aggregate{}, summarize(nil))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "timeout", outcomeLabel(game.OutcomeNone))
	assert.Equal(t, "win", outcomeLabel(game.OutcomeWin))
	assert.Equal(t, "-", tickLabel(-1))
	assert.Equal(t, "42", tickLabel(42))
}
