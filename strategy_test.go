package betting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoLimit_MinRaiseTracksLastRaise(t *testing.T) {
	s := NewBettingStrategy(BettingStructure_NoLimit, 0, 0)
	ctx := BetContext{
		BigBlind:        10,
		CurrentBet:      30,
		LastRaiseAmount: 20,
		PlayerStack:     1000,
	}

	// Raise must add at least the last raise amount.
	assert.Equal(t, int64(50), s.MinRaise(ctx))
	assert.False(t, s.IsValidRaise(ctx, 40))
	assert.True(t, s.IsValidRaise(ctx, 50))
	assert.True(t, s.IsValidRaise(ctx, 1000))
}

func TestNoLimit_MinRaiseFloorsAtBigBlind(t *testing.T) {
	s := NewBettingStrategy(BettingStructure_NoLimit, 0, 0)
	ctx := BetContext{
		BigBlind:        10,
		CurrentBet:      10,
		LastRaiseAmount: 10,
		PlayerStack:     500,
	}

	assert.Equal(t, int64(20), s.MinRaise(ctx))
}

func TestNoLimit_BetBounds(t *testing.T) {
	s := NewBettingStrategy(BettingStructure_NoLimit, 0, 0)
	ctx := BetContext{BigBlind: 10, PlayerStack: 200}

	assert.Equal(t, int64(10), s.MinBet(ctx))
	assert.Equal(t, int64(200), s.MaxBet(ctx))
	assert.False(t, s.IsValidBet(ctx, 5))
	assert.True(t, s.IsValidBet(ctx, 10))
	assert.False(t, s.IsValidBet(ctx, 201))
}

func TestNoLimit_ShortAllInAlwaysValid(t *testing.T) {
	s := NewBettingStrategy(BettingStructure_NoLimit, 0, 0)

	// All-in below the minimum bet is still a legal bet.
	betCtx := BetContext{BigBlind: 10, PlayerStack: 7}
	assert.True(t, s.IsValidBet(betCtx, 7))

	// All-in below the minimum raise is still a legal raise.
	raiseCtx := BetContext{
		BigBlind:        10,
		CurrentBet:      30,
		LastRaiseAmount: 20,
		PlayerStack:     35,
	}
	assert.True(t, s.IsValidRaise(raiseCtx, 35))
	// But not when it does not even exceed the current bet.
	shortCtx := BetContext{BigBlind: 10, CurrentBet: 30, LastRaiseAmount: 20, PlayerStack: 25}
	assert.False(t, s.IsValidRaise(shortCtx, 25))
}

func TestPotLimit_MaxBetIsPot(t *testing.T) {
	s := NewBettingStrategy(BettingStructure_PotLimit, 0, 0)
	ctx := BetContext{BigBlind: 10, CurrentPot: 120, PlayerStack: 1000}

	assert.Equal(t, int64(120), s.MaxBet(ctx))
	assert.True(t, s.IsValidBet(ctx, 120))
	assert.False(t, s.IsValidBet(ctx, 121))
}

func TestPotLimit_MaxRaiseIsPotAfterCall(t *testing.T) {
	s := NewBettingStrategy(BettingStructure_PotLimit, 0, 0)
	ctx := BetContext{
		BigBlind:         10,
		CurrentBet:       50,
		LastRaiseAmount:  40,
		CurrentPot:       100,
		PlayerStack:      1000,
		PlayerCurrentBet: 10,
	}

	// currentBet + pot + amountToCall = 50 + 100 + 40.
	assert.Equal(t, int64(190), s.MaxRaise(ctx))
	assert.True(t, s.IsValidRaise(ctx, 190))
	assert.False(t, s.IsValidRaise(ctx, 191))
}

func TestPotLimit_StackCapsPotSizedBets(t *testing.T) {
	s := NewBettingStrategy(BettingStructure_PotLimit, 0, 0)
	ctx := BetContext{BigBlind: 10, CurrentPot: 500, PlayerStack: 80}

	assert.Equal(t, int64(80), s.MaxBet(ctx))
	assert.True(t, s.IsValidBet(ctx, 80))
}

func TestFixedLimit_IncrementPerStage(t *testing.T) {
	base := &FixedLimitStrategy{SmallBet: 10, BigBet: 20}
	ctx := BetContext{CurrentBet: 10, PlayerStack: 500}

	assert.Equal(t, int64(10), base.MinBet(ctx))
	assert.Equal(t, int64(20), base.MinRaise(ctx))
	assert.True(t, base.IsValidRaise(ctx, 20))
	assert.False(t, base.IsValidRaise(ctx, 30))

	late := base.ForStage(true)
	assert.Equal(t, int64(20), late.MinBet(ctx))
	assert.Equal(t, int64(30), late.MinRaise(ctx))
	// The receiver stays on the small bet.
	assert.Equal(t, int64(10), base.MinBet(ctx))
}

func TestFixedLimit_ShortAllIn(t *testing.T) {
	s := &FixedLimitStrategy{SmallBet: 10, BigBet: 20}
	ctx := BetContext{CurrentBet: 10, PlayerStack: 14}

	// All-in to 14 is between the current bet and the fixed raise target.
	assert.True(t, s.IsValidRaise(ctx, 14))
	assert.False(t, s.IsValidRaise(ctx, 15))
}

func TestNewBettingStrategy_Selection(t *testing.T) {
	assert.Equal(t, "no_limit", NewBettingStrategy(BettingStructure_NoLimit, 0, 0).Name())
	assert.Equal(t, "pot_limit", NewBettingStrategy(BettingStructure_PotLimit, 0, 0).Name())
	assert.Equal(t, "fixed_limit", NewBettingStrategy(BettingStructure_FixedLimit, 10, 20).Name())
}
