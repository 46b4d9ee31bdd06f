package pot_manager

import (
	"errors"
	"fmt"
)

var (
	ErrPotNoEligibleWinners = errors.New("pot: winner selector returned no eligible winners")
	ErrPotAlreadyAwarded    = errors.New("pot: pot has already been awarded")
)

// Pot is a single pot or side pot. PotOrder 0 is the main pot; higher orders
// are side pots stacked on top of it.
type Pot struct {
	Amount          int64    `json:"amount"`
	EligiblePlayers []string `json:"eligible_players"`
	PotOrder        int      `json:"pot_order"`
	IsAwarded       bool     `json:"is_awarded"`
}

func (p *Pot) IsEligible(playerID string) bool {
	for _, id := range p.EligiblePlayers {
		if id == playerID {
			return true
		}
	}
	return false
}

func (p *Pot) removeEligible(playerID string) {
	remaining := make([]string, 0, len(p.EligiblePlayers))
	for _, id := range p.EligiblePlayers {
		if id != playerID {
			remaining = append(remaining, id)
		}
	}
	p.EligiblePlayers = remaining
}

// WinnerSelector picks the winning player IDs among a pot's eligible players.
// Implementations must return winners in seat order so that odd-chip
// distribution stays deterministic.
type WinnerSelector func(eligiblePlayers []string) []string

// PotAward reports the settlement of a single pot.
type PotAward struct {
	PotOrder int              `json:"pot_order"`
	Amount   int64            `json:"amount"`
	Payouts  map[string]int64 `json:"payouts"`
}

// PotManager tracks the pots for one hand. Contributions are keyed by stable
// player ID. All mutation happens on the table's serialized action path, so
// the manager itself holds no lock.
type PotManager struct {
	pots          []*Pot
	contributions map[string]int64
	folded        map[string]bool
	order         []string
}

func NewPotManager() *PotManager {
	return &PotManager{
		pots:          make([]*Pot, 0),
		contributions: make(map[string]int64),
		folded:        make(map[string]bool),
		order:         make([]string, 0),
	}
}

// AddContribution moves amount chips from a player into the current pot.
// A negative amount is a caller bug.
func (pm *PotManager) AddContribution(playerID string, amount int64) {
	if amount < 0 {
		panic(fmt.Sprintf("pot: negative contribution %d from player %s", amount, playerID))
	}

	if _, seen := pm.contributions[playerID]; !seen {
		pm.order = append(pm.order, playerID)
	}
	pm.contributions[playerID] += amount

	if len(pm.pots) == 0 || pm.pots[len(pm.pots)-1].IsAwarded {
		pm.pots = append(pm.pots, &Pot{
			Amount:          0,
			EligiblePlayers: make([]string, 0),
			PotOrder:        len(pm.pots),
		})
	}

	current := pm.pots[len(pm.pots)-1]
	current.Amount += amount
	if !pm.folded[playerID] && !current.IsEligible(playerID) {
		current.EligiblePlayers = append(current.EligiblePlayers, playerID)
	}
}

// RemovePlayerEligibility drops a folded player from every pot's winner set.
// Their chips stay in the pots they contributed to.
func (pm *PotManager) RemovePlayerEligibility(playerID string) {
	pm.folded[playerID] = true
	for _, pot := range pm.pots {
		pot.removeEligible(playerID)
	}
}

// Contribution returns the player's running total committed to this hand.
func (pm *PotManager) Contribution(playerID string) int64 {
	return pm.contributions[playerID]
}

// TotalContributed returns the sum of all contributions this hand.
func (pm *PotManager) TotalContributed() int64 {
	var total int64
	for _, amount := range pm.contributions {
		total += amount
	}
	return total
}

// Total returns the chips currently sitting in unawarded pots.
func (pm *PotManager) Total() int64 {
	var total int64
	for _, pot := range pm.pots {
		if !pot.IsAwarded {
			total += pot.Amount
		}
	}
	return total
}

func (pm *PotManager) Pots() []*Pot {
	return pm.pots
}

// HasFolded reports whether the player's eligibility has been removed.
func (pm *PotManager) HasFolded(playerID string) bool {
	return pm.folded[playerID]
}

// Stakes snapshots the hand's contributions in contribution order, marking
// each stake with the caller-supplied all-in set. The snapshot is the input
// to BuildSidePots and is safe to hold across later mutations.
func (pm *PotManager) Stakes(allIn map[string]bool) []PlayerStake {
	stakes := make([]PlayerStake, 0, len(pm.order))
	for _, playerID := range pm.order {
		stakes = append(stakes, PlayerStake{
			PlayerID: playerID,
			Total:    pm.contributions[playerID],
			AllIn:    allIn[playerID],
			Folded:   pm.folded[playerID],
		})
	}
	return stakes
}

// CalculateSidePots repartitions the hand's chips into main and side pots
// according to the given contribution snapshot. Awarded pots are preserved.
func (pm *PotManager) CalculateSidePots(stakes []PlayerStake) []*Pot {
	awarded := make([]*Pot, 0)
	for _, pot := range pm.pots {
		if pot.IsAwarded {
			awarded = append(awarded, pot)
		}
	}
	pm.pots = append(awarded, BuildSidePots(stakes)...)
	return pm.pots
}

// ReturnUncalled finds the portion of the highest contribution that no other
// player matched and removes it from the pot. The caller is responsible for
// crediting the chips back to the player's stack.
func (pm *PotManager) ReturnUncalled() (string, int64) {
	var topID string
	var top, second int64
	for _, playerID := range pm.order {
		amount := pm.contributions[playerID]
		if amount > top {
			second = top
			top = amount
			topID = playerID
		} else if amount > second {
			second = amount
		}
	}

	excess := top - second
	if topID == "" || excess <= 0 {
		return "", 0
	}

	pm.contributions[topID] -= excess
	if len(pm.pots) > 0 {
		pm.pots[len(pm.pots)-1].Amount -= excess
	}
	return topID, excess
}

// AwardPots settles every unawarded pot through the winner selector. Ties
// split evenly; remainder chips go one at a time to winners in selector
// order, so the amount paid out always equals the pot exactly.
func (pm *PotManager) AwardPots(selector WinnerSelector) ([]PotAward, error) {
	awards := make([]PotAward, 0, len(pm.pots))
	for _, pot := range pm.pots {
		if pot.IsAwarded || pot.Amount == 0 {
			continue
		}

		winners := selector(append([]string(nil), pot.EligiblePlayers...))
		if len(winners) == 0 {
			return nil, ErrPotNoEligibleWinners
		}

		payouts := splitEvenly(pot.Amount, winners)
		pot.IsAwarded = true
		awards = append(awards, PotAward{
			PotOrder: pot.PotOrder,
			Amount:   pot.Amount,
			Payouts:  payouts,
		})
	}
	return awards, nil
}

// SplitAwardResult reports the settlement of a dual-pool game.
type SplitAwardResult struct {
	SevensPool           int64            `json:"sevens_pool"`
	HighPool             int64            `json:"high_pool"`
	Payouts              map[string]int64 `json:"payouts"`
	SevensPoolRolledOver bool             `json:"sevens_pool_rolled_over"`
}

// AwardPotsSplit settles the whole pot as two pools: floor(pot/2) for the
// sevens pool and the remainder (including the odd chip) for the high hand.
// An unclaimed sevens pool rolls into the high pool rather than being
// stranded.
func (pm *PotManager) AwardPotsSplit(sevensSelector, highHandSelector WinnerSelector, eligiblePlayers []string) (*SplitAwardResult, error) {
	pot := pm.Total()
	sevensPool := pot / 2
	highPool := pot - sevensPool

	result := &SplitAwardResult{
		Payouts: make(map[string]int64),
	}

	sevensWinners := sevensSelector(append([]string(nil), eligiblePlayers...))
	if len(sevensWinners) == 0 {
		highPool += sevensPool
		sevensPool = 0
		result.SevensPoolRolledOver = true
	}

	highWinners := highHandSelector(append([]string(nil), eligiblePlayers...))
	if len(highWinners) == 0 {
		return nil, ErrPotNoEligibleWinners
	}

	if sevensPool > 0 {
		for playerID, amount := range splitEvenly(sevensPool, sevensWinners) {
			result.Payouts[playerID] += amount
		}
	}
	for playerID, amount := range splitEvenly(highPool, highWinners) {
		result.Payouts[playerID] += amount
	}

	result.SevensPool = sevensPool
	result.HighPool = highPool

	for _, pot := range pm.pots {
		pot.IsAwarded = true
	}
	return result, nil
}

// Reset clears all pots and contributions for a new hand.
func (pm *PotManager) Reset() {
	pm.pots = make([]*Pot, 0)
	pm.contributions = make(map[string]int64)
	pm.folded = make(map[string]bool)
	pm.order = make([]string, 0)
}

func splitEvenly(amount int64, winners []string) map[string]int64 {
	payouts := make(map[string]int64, len(winners))
	share := amount / int64(len(winners))
	remainder := amount % int64(len(winners))
	for _, playerID := range winners {
		payouts[playerID] += share
	}
	for i := int64(0); i < remainder; i++ {
		payouts[winners[i%int64(len(winners))]]++
	}
	return payouts
}
