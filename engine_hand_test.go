package betting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectFirst(eligible []string) []string {
	if len(eligible) == 0 {
		return nil
	}
	return eligible[:1]
}

func TestOpenHand_HeadsUpBlinds(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000)

	require.NoError(t, engine.OpenHand())

	// Heads-up: the button posts the small blind and acts first preflop.
	state := engine.ButtonState()
	assert.Equal(t, 0, state.ButtonPosition)
	assert.Equal(t, 1, state.HandNumber)
	assert.Equal(t, int64(15), engine.PotManager().Total())
	assert.Equal(t, int64(10), engine.CurrentBet())
	assert.Equal(t, int64(995), players[0].Chips())
	assert.Equal(t, int64(990), players[1].Chips())
	assert.Same(t, players[0], engine.CurrentPlayer())
}

func TestOpenHand_ThreeHandedFirstToAct(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000, 1000)

	require.NoError(t, engine.OpenHand())

	// Button 0, SB 1, BB 2: under the gun is the button's left of BB,
	// i.e. seat 0 acting first three-handed.
	assert.Equal(t, 0, engine.ButtonState().ButtonPosition)
	assert.Equal(t, int64(5), players[1].CurrentBet())
	assert.Equal(t, int64(10), players[2].CurrentBet())
	assert.Same(t, players[0], engine.CurrentPlayer())
}

func TestOpenHand_TwiceFails(t *testing.T) {
	engine, _ := newTestEngine(t, 1000, 1000)

	require.NoError(t, engine.OpenHand())

	assert.ErrorIs(t, engine.OpenHand(), ErrEngineHandInProgress)
}

func TestOpenHand_InsufficientPlayers(t *testing.T) {
	engine, _ := newTestEngine(t, 1000, 0)

	assert.ErrorIs(t, engine.OpenHand(), ErrEngineInsufficientPlayers)
}

func TestOpenHand_BrokePlayerSitsOut(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 0, 1000)

	require.NoError(t, engine.OpenHand())

	assert.True(t, players[1].HasFolded())
	assert.Equal(t, 2, engine.PlayersInHand())
}

func TestOpenHand_CollectsAntes(t *testing.T) {
	players := []*PokerPlayer{
		NewPokerPlayerWithID("P1", "P1", 0, 1000),
		NewPokerPlayerWithID("P2", "P2", 1, 1000),
	}
	options := NewDefaultEngineOptions()
	options.TableID = "table-test"
	options.ReadyTimeoutSeconds = 0
	options.Ante = 2
	engine, err := NewBettingEngine(options, players)
	require.NoError(t, err)

	require.NoError(t, engine.OpenHand())

	// 2 antes + blinds 5 and 10.
	assert.Equal(t, int64(19), engine.PotManager().Total())
	// Antes are not live bets: the blinds alone set the street totals.
	assert.Equal(t, int64(5), players[0].CurrentBet())
	assert.Equal(t, int64(10), players[1].CurrentBet())
}

func TestOpenHand_MissedBlindDebtCollected(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000, 1000)

	// P1 owes a small and a big blind from sitting out; button lands on
	// seat 0 so P1 is neither blind this hand.
	engine.BlindService().RecordMissedBlinds(players[0].ID, true, true, 5, 10, 0)
	require.NoError(t, engine.OpenHand())

	// Dead SB 5, live BB 10 (live portion counts toward the street bet),
	// plus the posted blinds 5 and 10.
	assert.Equal(t, int64(30), engine.PotManager().Total())
	assert.Equal(t, int64(10), players[0].CurrentBet())
	assert.Equal(t, int64(985), players[0].Chips())
	assert.False(t, engine.BlindService().HasMissedBlinds(players[0].ID))
}

func TestOpenHand_NaturalBigBlindClearsDebt(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000, 1000)

	// The debtor is the big blind this hand; posting it settles the debt
	// without a separate collection.
	engine.BlindService().RecordMissedBlinds(players[2].ID, false, true, 5, 10, 0)
	require.NoError(t, engine.OpenHand())

	assert.Equal(t, int64(15), engine.PotManager().Total())
	assert.False(t, engine.BlindService().HasMissedBlinds(players[2].ID))
}

func TestPlayerReady_CompletesReadyWait(t *testing.T) {
	players := []*PokerPlayer{
		NewPokerPlayerWithID("P1", "P1", 0, 1000),
		NewPokerPlayerWithID("P2", "P2", 1, 1000),
	}
	options := NewDefaultEngineOptions()
	options.TableID = "table-test"
	options.ReadyTimeoutSeconds = 30
	engine, err := NewBettingEngine(options, players)
	require.NoError(t, err)

	require.NoError(t, engine.OpenHand())
	// The hand waits for readiness; blinds are not posted yet.
	assert.Equal(t, int64(0), engine.PotManager().Total())

	require.NoError(t, engine.PlayerReady("P1"))
	require.NoError(t, engine.PlayerReady("P2"))

	require.Eventually(t, func() bool {
		return engine.PotManager().Total() == 15
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(10), engine.CurrentBet())
}

func TestPlayerReady_WithoutOpenHand(t *testing.T) {
	engine, _ := newTestEngine(t, 1000, 1000)

	assert.ErrorIs(t, engine.PlayerReady("P1"), ErrEngineHandNotOpening)
}

func TestSettleHand_RequiresCompletedRound(t *testing.T) {
	engine, _ := newTestEngine(t, 1000, 1000)
	require.NoError(t, engine.OpenHand())

	_, err := engine.SettleHand(selectFirst)

	assert.ErrorIs(t, err, ErrEngineRoundNotComplete)
}

func TestSettleHand_WinnerTakesPot(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000)
	require.NoError(t, engine.OpenHand())

	// Button calls, big blind checks.
	require.True(t, engine.ProcessAction(players[0].ID, Action_Call, 0).Success)
	result := engine.ProcessAction(players[1].ID, Action_Check, 0)
	require.True(t, result.Success)
	require.True(t, result.RoundComplete)

	awards, err := engine.SettleHand(func(eligible []string) []string {
		return []string{players[1].ID}
	})
	require.NoError(t, err)

	require.Len(t, awards, 1)
	assert.Equal(t, int64(20), awards[0].Amount)
	assert.Equal(t, int64(990), players[0].Chips())
	assert.Equal(t, int64(1010), players[1].Chips())
}

func TestSettleHand_RefundsUncalledBet(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 300)
	require.NoError(t, engine.OpenHand())

	require.True(t, engine.ProcessAction(players[0].ID, Action_Raise, 500).Success)
	require.True(t, engine.ProcessAction(players[1].ID, Action_AllIn, 0).Success)

	awards, err := engine.SettleHand(func(eligible []string) []string {
		return []string{players[1].ID}
	})
	require.NoError(t, err)

	// P1's 200 over P2's 300 all-in comes back before the award.
	require.Len(t, awards, 1)
	assert.Equal(t, int64(600), awards[0].Amount)
	assert.Equal(t, int64(700), players[0].Chips())
	assert.Equal(t, int64(600), players[1].Chips())
	// Chip conservation across the hand.
	assert.Equal(t, int64(1300), players[0].Chips()+players[1].Chips())
}

func TestSettleHand_SidePotsAwardedSeparately(t *testing.T) {
	engine, players := newTestEngine(t, 100, 300, 300)
	require.NoError(t, engine.OpenHand())

	// Everyone all-in preflop: main pot 300, side pot 400.
	require.True(t, engine.ProcessAction(players[0].ID, Action_AllIn, 0).Success)
	require.True(t, engine.ProcessAction(players[1].ID, Action_AllIn, 0).Success)
	require.True(t, engine.ProcessAction(players[2].ID, Action_AllIn, 0).Success)

	// P1 wins every pot it is eligible for, P2 takes the rest.
	awards, err := engine.SettleHand(func(eligible []string) []string {
		for _, id := range eligible {
			if id == players[0].ID {
				return []string{id}
			}
		}
		return []string{players[1].ID}
	})
	require.NoError(t, err)

	require.Len(t, awards, 2)
	assert.Equal(t, int64(300), players[0].Chips())
	assert.Equal(t, int64(400), players[1].Chips())
	assert.Equal(t, int64(0), players[2].Chips())
}

func TestSettleHandSplit_PaysBothPools(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000)
	require.NoError(t, engine.OpenHand())

	require.True(t, engine.ProcessAction(players[0].ID, Action_Call, 0).Success)
	require.True(t, engine.ProcessAction(players[1].ID, Action_Check, 0).Success)

	result, err := engine.SettleHandSplit(
		func(eligible []string) []string { return []string{players[0].ID} },
		func(eligible []string) []string { return []string{players[1].ID} },
	)
	require.NoError(t, err)

	assert.Equal(t, int64(10), result.SevensPool)
	assert.Equal(t, int64(10), result.HighPool)
	assert.False(t, result.SevensPoolRolledOver)
	assert.Equal(t, int64(1000), players[0].Chips())
	assert.Equal(t, int64(1000), players[1].Chips())
}

func TestSettleHandSplit_RollsOverWhenNoSevens(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000)
	require.NoError(t, engine.OpenHand())

	require.True(t, engine.ProcessAction(players[0].ID, Action_Call, 0).Success)
	require.True(t, engine.ProcessAction(players[1].ID, Action_Check, 0).Success)

	result, err := engine.SettleHandSplit(
		func(eligible []string) []string { return nil },
		func(eligible []string) []string { return []string{players[0].ID} },
	)
	require.NoError(t, err)

	assert.True(t, result.SevensPoolRolledOver)
	assert.Equal(t, int64(20), result.Payouts[players[0].ID])
	assert.Equal(t, int64(1010), players[0].Chips())
}

func TestContinueHand_OpensNextHandImmediately(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000)
	require.NoError(t, engine.OpenHand())

	require.True(t, engine.ProcessAction(players[0].ID, Action_Call, 0).Success)
	require.True(t, engine.ProcessAction(players[1].ID, Action_Check, 0).Success)
	_, err := engine.SettleHand(selectFirst)
	require.NoError(t, err)

	require.NoError(t, engine.ContinueHand())

	// The button moves and fresh blinds go in.
	state := engine.ButtonState()
	assert.Equal(t, 1, state.ButtonPosition)
	assert.Equal(t, 2, state.HandNumber)
	assert.Equal(t, int64(15), engine.PotManager().Total())
}

func TestReleaseEngine_BlocksFurtherHands(t *testing.T) {
	engine, _ := newTestEngine(t, 1000, 1000)

	require.NoError(t, engine.ReleaseEngine())

	assert.ErrorIs(t, engine.OpenHand(), ErrEngineReleased)
	assert.ErrorIs(t, engine.ContinueHand(), ErrEngineReleased)
	assert.ErrorIs(t, engine.StartRound(Street_Flop, 0, 0), ErrEngineReleased)
}

func TestSnapshot_CapturesTableState(t *testing.T) {
	engine, players := newTestEngine(t, 1000, 1000)
	require.NoError(t, engine.OpenHand())

	snapshot := engine.Snapshot()

	assert.Equal(t, "table-test", snapshot.TableID)
	assert.Equal(t, 1, snapshot.HandNumber)
	require.Len(t, snapshot.Players, 2)
	assert.Equal(t, players[0].ID, snapshot.Players[0].ID)
	assert.Equal(t, int64(995), snapshot.Players[0].Chips)
	require.Len(t, snapshot.Pots, 1)
	assert.Equal(t, int64(15), snapshot.Pots[0].Amount)
	assert.NotZero(t, snapshot.UpdatedAt)
}
