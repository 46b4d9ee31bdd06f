package pot_manager

import "sort"

// PlayerStake is an immutable snapshot of one player's total commitment to
// the hand, taken at side-pot calculation time.
type PlayerStake struct {
	PlayerID string `json:"player_id"`
	Total    int64  `json:"total"`
	AllIn    bool   `json:"all_in"`
	Folded   bool   `json:"folded"`
}

// BuildSidePots partitions the hand's contributions into ordered pots, one
// per distinct all-in stake level plus one for the chips above the highest
// all-in. Pot k's eligible set is the non-folded players whose total reaches
// level k, which makes each side pot's set a subset of the pot below it.
// Folded players' chips count toward pot sizes at the levels they reached but
// the players never appear in an eligible set.
func BuildSidePots(stakes []PlayerStake) []*Pot {
	levels := stakeLevels(stakes)
	if len(levels) == 0 {
		return []*Pot{}
	}

	pots := make([]*Pot, 0, len(levels))
	prev := int64(0)
	for _, level := range levels {
		amount := int64(0)
		eligible := make([]string, 0, len(stakes))
		for _, stake := range stakes {
			amount += clamp(stake.Total, level) - clamp(stake.Total, prev)
			if !stake.Folded && stake.Total >= level {
				eligible = append(eligible, stake.PlayerID)
			}
		}
		prev = level

		if amount == 0 {
			continue
		}
		pots = append(pots, &Pot{
			Amount:          amount,
			EligiblePlayers: eligible,
			PotOrder:        len(pots),
		})
	}
	return pots
}

// stakeLevels returns the distinct all-in totals in ascending order, always
// including the overall maximum contribution as the final level.
func stakeLevels(stakes []PlayerStake) []int64 {
	seen := make(map[int64]bool)
	levels := make([]int64, 0, len(stakes))
	max := int64(0)
	for _, stake := range stakes {
		if stake.Total > max {
			max = stake.Total
		}
		if stake.AllIn && stake.Total > 0 && !seen[stake.Total] {
			seen[stake.Total] = true
			levels = append(levels, stake.Total)
		}
	}
	if max > 0 && !seen[max] {
		levels = append(levels, max)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

func clamp(value, limit int64) int64 {
	if value < limit {
		return value
	}
	return limit
}
