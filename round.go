package betting

// RoundStatus is the betting round lifecycle: NotStarted -> InProgress ->
// Complete.
type RoundStatus string

const (
	RoundStatus_NotStarted RoundStatus = "not_started"
	RoundStatus_InProgress RoundStatus = "in_progress"
	RoundStatus_Complete   RoundStatus = "complete"
)

// BettingRoundState is the queryable state of one street of betting.
type BettingRoundState struct {
	StreetName         string      `json:"street_name"`
	CurrentBet         int64       `json:"current_bet"`
	MinBet             int64       `json:"min_bet"`
	LastRaiseAmount    int64       `json:"last_raise_amount"`
	RaiseCount         int         `json:"raise_count"`
	CurrentActorIndex  int         `json:"current_actor_index"`
	LastAggressorIndex int         `json:"last_aggressor_index"`
	PlayersActed       []bool      `json:"players_acted"`
	Status             RoundStatus `json:"status"`
}

// BettingRound runs a single street of betting over an ordered player list.
// It owns turn order and completion; chips move through the engine.
type BettingRound struct {
	State   BettingRoundState
	players []*PokerPlayer
}

func NewBettingRound(players []*PokerPlayer) *BettingRound {
	return &BettingRound{
		State: BettingRoundState{
			CurrentActorIndex:  UnsetValue,
			LastAggressorIndex: UnsetValue,
			PlayersActed:       make([]bool, len(players)),
			Status:             RoundStatus_NotStarted,
		},
		players: players,
	}
}

// Start opens the street. initialBet seeds CurrentBet with an already-posted
// forced bet (the big blind preflop); firstActorIndex is the opening seat's
// index in the player list.
func (br *BettingRound) Start(streetName string, initialBet int64, minBet int64, firstActorIndex int) {
	br.State.StreetName = streetName
	br.State.CurrentBet = initialBet
	br.State.MinBet = minBet
	br.State.LastRaiseAmount = initialBet
	br.State.RaiseCount = 0
	br.State.CurrentActorIndex = firstActorIndex
	br.State.LastAggressorIndex = UnsetValue
	br.State.PlayersActed = make([]bool, len(br.players))
	br.State.Status = RoundStatus_InProgress
}

func (br *BettingRound) CurrentActor() *PokerPlayer {
	if br.State.CurrentActorIndex == UnsetValue || br.State.CurrentActorIndex >= len(br.players) {
		return nil
	}
	return br.players[br.State.CurrentActorIndex]
}

func (br *BettingRound) MarkActed(playerIndex int) {
	if playerIndex >= 0 && playerIndex < len(br.State.PlayersActed) {
		br.State.PlayersActed[playerIndex] = true
	}
}

// ApplyRaise records a new aggression level. A full raise (at least the last
// raise amount, or the minimum bet when no raise happened yet) reopens the
// action for every other player; an all-in for less keeps the bet level but
// does not reopen.
func (br *BettingRound) ApplyRaise(raiserIndex int, newTotal int64) {
	raiseBy := newTotal - br.State.CurrentBet
	br.State.CurrentBet = newTotal

	fullRaise := br.State.LastRaiseAmount
	if fullRaise < br.State.MinBet {
		fullRaise = br.State.MinBet
	}
	if raiseBy >= fullRaise {
		br.State.LastRaiseAmount = raiseBy
		br.State.RaiseCount++
		br.State.LastAggressorIndex = raiserIndex
		br.reopenActionExcept(raiserIndex)
	}
}

func (br *BettingRound) reopenActionExcept(raiserIndex int) {
	for i := range br.State.PlayersActed {
		if i != raiserIndex {
			br.State.PlayersActed[i] = false
		}
	}
}

// AdvanceActor moves the turn to the next player who can still act, wrapping
// around the table. Returns false when nobody remains to act.
func (br *BettingRound) AdvanceActor() bool {
	if len(br.players) == 0 {
		return false
	}
	start := br.State.CurrentActorIndex
	for i := 1; i <= len(br.players); i++ {
		idx := (start + i) % len(br.players)
		if br.players[idx].CanAct() {
			br.State.CurrentActorIndex = idx
			return true
		}
	}
	return false
}

// PlayersInHand counts non-folded players.
func (br *BettingRound) PlayersInHand() int {
	count := 0
	for _, p := range br.players {
		if !p.HasFolded() {
			count++
		}
	}
	return count
}

// ActivePlayers counts players who can still act: non-folded, non-all-in.
func (br *BettingRound) ActivePlayers() int {
	count := 0
	for _, p := range br.players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

// IsComplete reports whether the street is finished: every active player has
// acted at least once and matched the current bet, or at most one player
// remains un-folded.
func (br *BettingRound) IsComplete() bool {
	if br.PlayersInHand() <= 1 {
		return true
	}
	if br.ActivePlayers() == 0 {
		return true
	}
	for i, p := range br.players {
		if !p.CanAct() {
			continue
		}
		if !br.State.PlayersActed[i] {
			return false
		}
		if p.CurrentBet() != br.State.CurrentBet {
			return false
		}
	}
	return true
}

func (br *BettingRound) Finish() {
	br.State.Status = RoundStatus_Complete
	br.State.CurrentActorIndex = UnsetValue
}
