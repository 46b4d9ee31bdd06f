package betting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func roundPlayers(stacks ...int64) []*PokerPlayer {
	players := make([]*PokerPlayer, 0, len(stacks))
	for i, stack := range stacks {
		players = append(players, NewPokerPlayer("", i, stack))
	}
	return players
}

func TestRound_StartState(t *testing.T) {
	players := roundPlayers(1000, 1000, 1000)
	br := NewBettingRound(players)

	assert.Equal(t, RoundStatus_NotStarted, br.State.Status)

	br.Start(Street_Preflop, 10, 10, 2)

	assert.Equal(t, RoundStatus_InProgress, br.State.Status)
	assert.Equal(t, int64(10), br.State.CurrentBet)
	assert.Equal(t, int64(10), br.State.LastRaiseAmount)
	assert.Same(t, players[2], br.CurrentActor())
}

func TestRound_FullRaiseReopensAction(t *testing.T) {
	players := roundPlayers(1000, 1000, 1000)
	br := NewBettingRound(players)
	br.Start(Street_Flop, 0, 10, 0)

	br.MarkActed(0)
	br.MarkActed(1)

	// Player 2 bets 40: everyone else must act again.
	br.ApplyRaise(2, 40)
	br.MarkActed(2)

	assert.False(t, br.State.PlayersActed[0])
	assert.False(t, br.State.PlayersActed[1])
	assert.True(t, br.State.PlayersActed[2])
	assert.Equal(t, int64(40), br.State.LastRaiseAmount)
	assert.Equal(t, 1, br.State.RaiseCount)
	assert.Equal(t, 2, br.State.LastAggressorIndex)
}

func TestRound_ShortAllInDoesNotReopen(t *testing.T) {
	players := roundPlayers(1000, 1000, 45)
	br := NewBettingRound(players)
	br.Start(Street_Flop, 0, 10, 0)

	br.ApplyRaise(0, 40)
	br.MarkActed(0)
	br.MarkActed(1)

	// Player 2 goes all-in to 45: only 5 more, not a full raise of 40.
	assert.NoError(t, players[2].PlaceBet(45))
	br.ApplyRaise(2, 45)
	br.MarkActed(2)

	assert.Equal(t, int64(45), br.State.CurrentBet)
	assert.Equal(t, int64(40), br.State.LastRaiseAmount)
	assert.Equal(t, 1, br.State.RaiseCount)
	// Action stays closed for players who already acted.
	assert.True(t, br.State.PlayersActed[1])
}

func TestRound_AdvanceActorSkipsFoldedAndAllIn(t *testing.T) {
	players := roundPlayers(1000, 1000, 1000, 1000)
	players[1].Fold()
	assert.NoError(t, players[2].PlaceBet(1000))

	br := NewBettingRound(players)
	br.Start(Street_Turn, 0, 10, 0)

	assert.True(t, br.AdvanceActor())
	assert.Same(t, players[3], br.CurrentActor())

	assert.True(t, br.AdvanceActor())
	assert.Same(t, players[0], br.CurrentActor())
}

func TestRound_CompleteWhenAllActedAndMatched(t *testing.T) {
	players := roundPlayers(1000, 1000)
	br := NewBettingRound(players)
	br.Start(Street_Flop, 0, 10, 0)

	assert.False(t, br.IsComplete())

	assert.NoError(t, players[0].PlaceBet(50))
	br.ApplyRaise(0, 50)
	br.MarkActed(0)
	assert.False(t, br.IsComplete())

	assert.NoError(t, players[1].PlaceBet(50))
	br.MarkActed(1)
	assert.True(t, br.IsComplete())
}

func TestRound_CompleteWhenOnePlayerLeft(t *testing.T) {
	players := roundPlayers(1000, 1000, 1000)
	br := NewBettingRound(players)
	br.Start(Street_Preflop, 10, 10, 0)

	players[0].Fold()
	players[2].Fold()

	assert.True(t, br.IsComplete())
}

func TestRound_CompleteWhenEveryoneAllIn(t *testing.T) {
	players := roundPlayers(100, 100)
	br := NewBettingRound(players)
	br.Start(Street_Flop, 0, 10, 0)

	assert.NoError(t, players[0].PlaceBet(100))
	assert.NoError(t, players[1].PlaceBet(100))

	assert.True(t, br.IsComplete())
}

func TestRound_Finish(t *testing.T) {
	players := roundPlayers(1000, 1000)
	br := NewBettingRound(players)
	br.Start(Street_River, 0, 10, 0)

	br.Finish()

	assert.Equal(t, RoundStatus_Complete, br.State.Status)
	assert.Nil(t, br.CurrentActor())
}
