package pot_manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func firstEligible(eligible []string) []string {
	if len(eligible) == 0 {
		return nil
	}
	return eligible[:1]
}

func TestPotManager_AddContribution(t *testing.T) {
	pm := NewPotManager()

	pm.AddContribution("P1", 10)
	pm.AddContribution("P2", 10)
	pm.AddContribution("P1", 20)

	assert.Equal(t, int64(40), pm.Total())
	assert.Equal(t, int64(30), pm.Contribution("P1"))
	assert.Equal(t, int64(10), pm.Contribution("P2"))
	assert.Equal(t, int64(40), pm.TotalContributed())
	assert.Len(t, pm.Pots(), 1)
	assert.True(t, pm.Pots()[0].IsEligible("P1"))
	assert.True(t, pm.Pots()[0].IsEligible("P2"))
}

func TestPotManager_NegativeContributionPanics(t *testing.T) {
	pm := NewPotManager()

	assert.Panics(t, func() {
		pm.AddContribution("P1", -1)
	})
}

func TestPotManager_FoldRemovesEligibilityNotChips(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 50)
	pm.AddContribution("P2", 50)

	pm.RemovePlayerEligibility("P1")

	assert.Equal(t, int64(100), pm.Total())
	assert.False(t, pm.Pots()[0].IsEligible("P1"))
	assert.True(t, pm.Pots()[0].IsEligible("P2"))
	assert.True(t, pm.HasFolded("P1"))

	// Later contributions from a folded player stay ineligible.
	pm.AddContribution("P1", 10)
	assert.False(t, pm.Pots()[0].IsEligible("P1"))
	assert.Equal(t, int64(110), pm.Total())
}

func TestBuildSidePots_ThreeAllInLevels(t *testing.T) {
	stakes := []PlayerStake{
		{PlayerID: "P1", Total: 50, AllIn: true},
		{PlayerID: "P2", Total: 100, AllIn: true},
		{PlayerID: "P3", Total: 150, AllIn: true},
	}

	pots := BuildSidePots(stakes)

	assert.Len(t, pots, 3)

	// Main pot: 50 from each player.
	assert.Equal(t, int64(150), pots[0].Amount)
	assert.ElementsMatch(t, []string{"P1", "P2", "P3"}, pots[0].EligiblePlayers)

	// First side pot: the next 50 from P2 and P3.
	assert.Equal(t, int64(100), pots[1].Amount)
	assert.ElementsMatch(t, []string{"P2", "P3"}, pots[1].EligiblePlayers)

	// Second side pot: P3's last 50 alone.
	assert.Equal(t, int64(50), pots[2].Amount)
	assert.ElementsMatch(t, []string{"P3"}, pots[2].EligiblePlayers)

	// Nested eligibility and conservation.
	total := int64(0)
	for _, pot := range pots {
		total += pot.Amount
	}
	assert.Equal(t, int64(300), total)
}

func TestBuildSidePots_FoldedChipsCountTowardSizing(t *testing.T) {
	stakes := []PlayerStake{
		{PlayerID: "P1", Total: 40, AllIn: true},
		{PlayerID: "P2", Total: 100},
		{PlayerID: "P3", Total: 60, Folded: true},
	}

	pots := BuildSidePots(stakes)

	assert.Len(t, pots, 2)
	// Main pot at level 40: 40 + 40 + 40.
	assert.Equal(t, int64(120), pots[0].Amount)
	assert.ElementsMatch(t, []string{"P1", "P2"}, pots[0].EligiblePlayers)
	// Side pot: P2's 60 above plus P3's folded 20.
	assert.Equal(t, int64(80), pots[1].Amount)
	assert.ElementsMatch(t, []string{"P2"}, pots[1].EligiblePlayers)
}

func TestPotManager_ContributionAfterAwardOpensNewPot(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 30)
	pm.AddContribution("P2", 30)

	_, err := pm.AwardPots(firstEligible)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), pm.Total())

	pm.AddContribution("P1", 20)

	assert.Len(t, pm.Pots(), 2)
	assert.Equal(t, int64(20), pm.Total())
	assert.Equal(t, int64(60), pm.Pots()[0].Amount)
}

func TestPotManager_CalculateSidePotsFromFoldAndAllIn(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 40)
	pm.AddContribution("P2", 100)
	pm.AddContribution("P3", 60)
	pm.RemovePlayerEligibility("P3")

	pots := pm.CalculateSidePots(pm.Stakes(map[string]bool{"P1": true}))

	assert.Len(t, pots, 2)
	assert.Equal(t, int64(120), pots[0].Amount)
	assert.ElementsMatch(t, []string{"P1", "P2"}, pots[0].EligiblePlayers)
	assert.Equal(t, int64(80), pots[1].Amount)
	assert.ElementsMatch(t, []string{"P2"}, pots[1].EligiblePlayers)
	assert.Equal(t, pm.TotalContributed(), pots[0].Amount+pots[1].Amount)
}

func TestPotManager_AwardSplitsOddChipDeterministically(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 50)
	pm.AddContribution("P2", 51)

	awards, err := pm.AwardPots(func(eligible []string) []string {
		return eligible
	})

	assert.NoError(t, err)
	assert.Len(t, awards, 1)
	assert.Equal(t, int64(101), awards[0].Amount)
	assert.Equal(t, int64(51), awards[0].Payouts["P1"])
	assert.Equal(t, int64(50), awards[0].Payouts["P2"])

	paid := awards[0].Payouts["P1"] + awards[0].Payouts["P2"]
	assert.Equal(t, int64(101), paid)
}

func TestPotManager_AwardTwiceIsNoop(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 10)
	pm.AddContribution("P2", 10)

	first, err := pm.AwardPots(firstEligible)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := pm.AwardPots(firstEligible)
	assert.NoError(t, err)
	assert.Empty(t, second)
}

func TestPotManager_AwardNoWinners(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 10)
	pm.AddContribution("P2", 10)

	_, err := pm.AwardPots(func(eligible []string) []string {
		return nil
	})

	assert.ErrorIs(t, err, ErrPotNoEligibleWinners)
}

func TestPotManager_ReturnUncalled(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 100)
	pm.AddContribution("P2", 40)

	playerID, amount := pm.ReturnUncalled()

	assert.Equal(t, "P1", playerID)
	assert.Equal(t, int64(60), amount)
	assert.Equal(t, int64(80), pm.Total())
	assert.Equal(t, int64(40), pm.Contribution("P1"))
}

func TestPotManager_ReturnUncalledMatchedBets(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 50)
	pm.AddContribution("P2", 50)

	playerID, amount := pm.ReturnUncalled()

	assert.Empty(t, playerID)
	assert.Zero(t, amount)
	assert.Equal(t, int64(100), pm.Total())
}

func TestPotManager_SplitAward(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 100)
	pm.AddContribution("P2", 100)
	pm.AddContribution("P3", 101)

	result, err := pm.AwardPotsSplit(
		func(eligible []string) []string { return []string{"P2"} },
		func(eligible []string) []string { return []string{"P1"} },
		[]string{"P1", "P2", "P3"},
	)

	assert.NoError(t, err)
	assert.False(t, result.SevensPoolRolledOver)
	assert.Equal(t, int64(150), result.SevensPool)
	// High pool takes the odd chip.
	assert.Equal(t, int64(151), result.HighPool)
	assert.Equal(t, int64(150), result.Payouts["P2"])
	assert.Equal(t, int64(151), result.Payouts["P1"])
}

func TestPotManager_SplitAwardRollover(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 150)
	pm.AddContribution("P2", 150)

	result, err := pm.AwardPotsSplit(
		func(eligible []string) []string { return nil },
		func(eligible []string) []string { return []string{"P2"} },
		[]string{"P1", "P2"},
	)

	assert.NoError(t, err)
	assert.True(t, result.SevensPoolRolledOver)
	assert.Equal(t, int64(0), result.SevensPool)
	assert.Equal(t, int64(300), result.HighPool)
	assert.Equal(t, int64(300), result.Payouts["P2"])
	assert.Zero(t, result.Payouts["P1"])
}

func TestPotManager_Reset(t *testing.T) {
	pm := NewPotManager()
	pm.AddContribution("P1", 25)
	pm.RemovePlayerEligibility("P1")

	pm.Reset()

	assert.Zero(t, pm.Total())
	assert.Empty(t, pm.Pots())
	assert.Zero(t, pm.Contribution("P1"))
	assert.False(t, pm.HasFolded("P1"))
}
